package models

// All returns every model managed by AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&SettingEntry{},
		&AboutItem{},
		&BlogPost{},
		&PortfolioItem{},
		&Service{},
		&Job{},
		&ContactMessage{},
		&Page{},
	}
}
