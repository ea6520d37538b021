package siteconfig_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortejtech/agency-admin/internal/db/dbtest"
	"github.com/cortejtech/agency-admin/internal/siteconfig"
)

var errWrite = errors.New("write refused")

// flakyStore fails writes of selected keys.
type flakyStore struct {
	siteconfig.Store

	failKeys map[string]bool
	batches  int
	singles  int
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	s.singles++

	if s.failKeys[key] {
		return errWrite
	}

	return s.Store.Set(ctx, key, value)
}

func (s *flakyStore) SetMany(ctx context.Context, values map[string]string) error {
	s.batches++

	for k := range values {
		if s.failKeys[k] {
			return errWrite
		}
	}

	return s.Store.SetMany(ctx, values)
}

type memCache struct {
	s           *siteconfig.Settings
	hits        int
	invalidated int
}

func (c *memCache) Get(context.Context) (siteconfig.Settings, bool) {
	if c.s == nil {
		return siteconfig.Settings{}, false
	}

	c.hits++

	return *c.s, true
}

func (c *memCache) Put(_ context.Context, s siteconfig.Settings) { c.s = &s }

func (c *memCache) Invalidate(context.Context) {
	c.s = nil
	c.invalidated++
}

func newStore(t *testing.T) *flakyStore {
	t.Helper()

	return &flakyStore{Store: siteconfig.DBStore{DB: dbtest.Open(t)}, failKeys: map[string]bool{}}
}

func TestOverlay_LoadDefaults(t *testing.T) {
	o := siteconfig.New(newStore(t), nil)

	s, err := o.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, siteconfig.Defaults(), s)
}

func TestOverlay_SaveOneKey(t *testing.T) {
	ctx := context.Background()
	o := siteconfig.New(newStore(t), nil)

	require.NoError(t, o.Save(ctx, map[string]string{siteconfig.KeySiteName: "X"}))

	s, err := o.Load(ctx)
	require.NoError(t, err)

	want := siteconfig.Defaults()
	want.SiteName = "X"
	assert.Equal(t, want, s)
}

func TestOverlay_SaveIgnoresUnknownKeys(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	o := siteconfig.New(st, nil)

	require.NoError(t, o.Save(ctx, map[string]string{"favourite_colour": "teal"}))
	assert.Zero(t, st.singles)

	stored, err := st.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)

	assert.Equal(t, []string{"a", "favourite_colour"}, siteconfig.Unknown(map[string]string{
		"favourite_colour":     "teal",
		"a":                    "b",
		siteconfig.KeyLogoURL:  "/x.png",
		siteconfig.KeySiteName: "y",
	}))
}

func TestOverlay_SavePartialFailure(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	st.failKeys[siteconfig.KeyContactPhone] = true

	o := siteconfig.New(st, nil)

	err := o.Save(ctx, map[string]string{
		siteconfig.KeyContactEmail: "hello@example.com",
		siteconfig.KeyContactPhone: "+1 555",
	})
	require.ErrorIs(t, err, errWrite)
	assert.Contains(t, err.Error(), siteconfig.KeyContactPhone)
	assert.NotContains(t, err.Error(), siteconfig.KeyContactEmail)
	assert.Equal(t, 2, st.singles)

	s, err := o.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello@example.com", s.ContactEmail, "no rollback of the successful key")
	assert.Equal(t, siteconfig.Defaults().ContactPhone, s.ContactPhone)
}

func TestOverlay_SaveBatch(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	o := siteconfig.New(st, nil)

	require.NoError(t, o.SaveBatch(ctx, map[string]string{
		siteconfig.KeySiteName: "Acme",
		siteconfig.KeyLogoURL:  "/logo.svg",
		"unknown":              "dropped",
	}))
	assert.Equal(t, 1, st.batches)

	s, err := o.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme", s.SiteName)
	assert.Equal(t, "/logo.svg", s.LogoURL)

	st.failKeys[siteconfig.KeySiteName] = true

	err = o.SaveBatch(ctx, map[string]string{
		siteconfig.KeySiteName:     "Broken",
		siteconfig.KeyContactEmail: "x@example.com",
	})
	require.ErrorIs(t, err, errWrite)

	s, err = o.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme", s.SiteName)
	assert.Equal(t, siteconfig.Defaults().ContactEmail, s.ContactEmail, "batch is all or nothing")
}

func TestOverlay_Cache(t *testing.T) {
	ctx := context.Background()
	cache := &memCache{}
	o := siteconfig.New(newStore(t), cache)

	_, err := o.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, cache.hits)

	_, err = o.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	require.NoError(t, o.Save(ctx, map[string]string{siteconfig.KeySiteName: "Cached"}))
	assert.Equal(t, 1, cache.invalidated)

	s, err := o.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cached", s.SiteName)
}

func TestDBStore_SetReplacesValue(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	st := siteconfig.DBStore{DB: db}

	require.NoError(t, st.Set(ctx, siteconfig.KeySiteName, "First"))
	require.NoError(t, st.Set(ctx, siteconfig.KeySiteName, "Second"))
	require.NoError(t, st.SetMany(ctx, map[string]string{siteconfig.KeyLogoURL: "/logo.png"}))

	stored, err := st.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		siteconfig.KeySiteName: "Second",
		siteconfig.KeyLogoURL:  "/logo.png",
	}, stored)
}

// hookStore runs afterRead once, between reading the rows and returning them.
type hookStore struct {
	siteconfig.Store

	afterRead func()
}

func (s *hookStore) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.Store.GetAll(ctx)

	if hook := s.afterRead; hook != nil {
		s.afterRead = nil
		hook()
	}

	return rows, err
}

func TestOverlay_SaveDuringLoadIsNotCachedOver(t *testing.T) {
	ctx := context.Background()
	cache := &memCache{}
	st := &hookStore{Store: newStore(t)}
	o := siteconfig.New(st, cache)

	st.afterRead = func() {
		require.NoError(t, o.Save(ctx, map[string]string{siteconfig.KeySiteName: "New"}))
	}

	s, err := o.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, siteconfig.Defaults().SiteName, s.SiteName, "rows were read before the save")
	assert.Nil(t, cache.s)

	s, err = o.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New", s.SiteName)
	assert.Zero(t, cache.hits)

	s, err = o.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New", s.SiteName)
	assert.Equal(t, 1, cache.hits)
}

func TestSettings_MapAndGet(t *testing.T) {
	s := siteconfig.Defaults()

	m := s.Map()
	assert.Len(t, m, len(siteconfig.Keys))
	assert.Equal(t, "CortejTech", m[siteconfig.KeySiteName])
	assert.Empty(t, s.Get("nope"))
	assert.True(t, siteconfig.IsKnown(siteconfig.KeyNoJobsMessage))
	assert.False(t, siteconfig.IsKnown("nope"))
}
