package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/datatypes"
)

// StringList is an ordered list of strings persisted as a JSON array column.
// It is used for job requirements and content tags.
type StringList []string

// Value implements driver.Valuer. An empty list is stored as NULL.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}

	return datatypes.NewJSONSlice([]string(l)).Value()
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	var raw []byte

	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList source type %T", value)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}

	*l = out

	return nil
}

// GormDataType tells gorm to create a JSON column.
func (StringList) GormDataType() string {
	return "json"
}

// Join returns the entries separated by sep. Used by templates.
func (l StringList) Join(sep string) string {
	return strings.Join(l, sep)
}

// ParseStringList splits form input into entries, one per line.
// Blank lines are dropped and surrounding whitespace trimmed.
func ParseStringList(input string) StringList {
	var out StringList

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

// StringListConverter is a form decoder converter for StringList fields.
func StringListConverter(value string) reflect.Value {
	return reflect.ValueOf(ParseStringList(value))
}
