// Package siteconfig overlays the stored site settings on compiled-in defaults.
package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// Known setting keys.
const (
	KeySiteName       = "site_name"
	KeyLogoURL        = "logo_url"
	KeyContactEmail   = "contact_email"
	KeyContactPhone   = "contact_phone"
	KeyContactAddress = "contact_address"
	KeyNoJobsMessage  = "no_jobs_message"
)

// Keys lists every known key in display order.
var Keys = []string{ //nolint:gochecknoglobals
	KeySiteName,
	KeyLogoURL,
	KeyContactEmail,
	KeyContactPhone,
	KeyContactAddress,
	KeyNoJobsMessage,
}

// Settings is the effective site configuration.
type Settings struct {
	SiteName       string `json:"site_name"`
	LogoURL        string `json:"logo_url"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
	ContactAddress string `json:"contact_address"`
	NoJobsMessage  string `json:"no_jobs_message"`
}

// Defaults returns the settings used for keys that are not stored.
func Defaults() Settings {
	return Settings{
		SiteName:       "CortejTech",
		ContactEmail:   "info@cortejtech.com",
		ContactPhone:   "+91 9868-555-0123",
		ContactAddress: "123 Tech Park, Sector 42, Gurgaon, Haryana 122001, India",
		NoJobsMessage: "We don't have any open positions at the moment. " +
			"Please check back later or send your resume for future opportunities.",
	}
}

func (s *Settings) field(key string) *string {
	switch key {
	case KeySiteName:
		return &s.SiteName
	case KeyLogoURL:
		return &s.LogoURL
	case KeyContactEmail:
		return &s.ContactEmail
	case KeyContactPhone:
		return &s.ContactPhone
	case KeyContactAddress:
		return &s.ContactAddress
	case KeyNoJobsMessage:
		return &s.NoJobsMessage
	default:
		return nil
	}
}

// Get returns the value of key, or "" for an unknown key.
func (s Settings) Get(key string) string {
	if p := s.field(key); p != nil {
		return *p
	}

	return ""
}

// Map returns every known key with its value.
func (s Settings) Map() map[string]string {
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		out[k] = s.Get(k)
	}

	return out
}

// IsKnown reports whether key is a setting key.
func IsKnown(key string) bool {
	return slices.Contains(Keys, key)
}

// Unknown returns the keys of values that are not setting keys, sorted.
func Unknown(values map[string]string) []string {
	var out []string

	for k := range values {
		if !IsKnown(k) {
			out = append(out, k)
		}
	}

	slices.Sort(out)

	return out
}

// Store reads and writes raw key/value rows.
type Store interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
}

// Cache keeps the effective settings between loads.
type Cache interface {
	Get(ctx context.Context) (Settings, bool)
	Put(ctx context.Context, s Settings)
	Invalidate(ctx context.Context)
}

// Overlay merges stored settings over the defaults.
//
// A load only fills the cache when no save finished while it read the store,
// otherwise a slow load could put back settings a save just replaced.
type Overlay struct {
	store Store
	cache Cache

	mu  sync.Mutex
	gen uint64
}

// New returns an overlay. cache may be nil.
func New(store Store, cache Cache) *Overlay {
	return &Overlay{store: store, cache: cache}
}

// Load returns the defaults with every stored known key applied.
func (o *Overlay) Load(ctx context.Context) (Settings, error) {
	if o.cache != nil {
		if s, ok := o.cache.Get(ctx); ok {
			return s, nil
		}
	}

	o.mu.Lock()
	gen := o.gen
	o.mu.Unlock()

	stored, err := o.store.GetAll(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	s := Defaults()

	for k, v := range stored {
		if p := s.field(k); p != nil {
			*p = v
		}
	}

	o.mu.Lock()
	if o.cache != nil && o.gen == gen {
		o.cache.Put(ctx, s)
	}
	o.mu.Unlock()

	return s, nil
}

// Save upserts each known key present in values on its own.
// Keys that failed are named in the returned error; the others stay saved.
func (o *Overlay) Save(ctx context.Context, values map[string]string) error {
	defer o.invalidate(ctx)

	var errs []error

	for _, k := range Keys {
		v, ok := values[k]
		if !ok {
			continue
		}

		if err := o.store.Set(ctx, k, v); err != nil {
			log.Error().Err(err).Str("key", k).Msg("failed to save setting")
			errs = append(errs, fmt.Errorf("save %s: %w", k, err))
		}
	}

	return errors.Join(errs...)
}

// SaveBatch upserts every known key present in values in one statement.
func (o *Overlay) SaveBatch(ctx context.Context, values map[string]string) error {
	defer o.invalidate(ctx)

	known := make(map[string]string, len(values))

	for k, v := range values {
		if IsKnown(k) {
			known[k] = v
		}
	}

	if err := o.store.SetMany(ctx, known); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}

// invalidate runs after the writes of a save.
func (o *Overlay) invalidate(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.gen++

	if o.cache != nil {
		o.cache.Invalidate(ctx)
	}
}
