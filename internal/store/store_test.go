package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortejtech/agency-admin/internal/db/dbtest"
	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/store"
)

func ptr[V any](v V) *V { return &v }

func newServices(t *testing.T) *store.Table[models.Service] {
	t.Helper()

	tbl, err := store.New[models.Service](dbtest.Open(t))
	require.NoError(t, err)

	return tbl
}

func TestTable_Name(t *testing.T) {
	db := dbtest.Open(t)

	assert.Equal(t, "services", store.MustNew[models.Service](db).Name())
	assert.Equal(t, "about_us", store.MustNew[models.AboutItem](db).Name())
	assert.Equal(t, "settings", store.MustNew[models.SettingEntry](db).Name())
}

func TestTable_InsertAndSelect(t *testing.T) {
	ctx := context.Background()
	tbl := newServices(t)

	a := &models.Service{Title: "SEO", Description: "Search", Icon: "search"}
	b := &models.Service{Title: "Ads", Description: "Paid", Icon: "megaphone", IsFeatured: ptr(true)}

	require.NoError(t, tbl.Insert(ctx, a))
	require.NoError(t, tbl.Insert(ctx, b))
	assert.NotZero(t, a.ID)
	assert.Greater(t, b.ID, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	rows, err := tbl.Select(ctx, store.Query{Order: []store.Order{{Column: "id", Desc: true}}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ads", rows[0].Title)
	assert.Equal(t, "SEO", rows[1].Title)

	rows, err = tbl.Select(ctx, store.Query{Filters: []store.Filter{store.Eq("icon", "search")}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)

	rows, err = tbl.Select(ctx, store.Query{
		Columns: []string{"id", "title"},
		Filters: []store.Filter{store.Eq("description", a.Description)},
		Order:   []store.Order{{Column: "id"}},
		Limit:   1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SEO", rows[0].Title)
	assert.Empty(t, rows[0].Description)
}

func TestTable_InsertMany(t *testing.T) {
	ctx := context.Background()
	tbl := newServices(t)

	require.NoError(t, tbl.Insert(ctx))
	require.NoError(t, tbl.Insert(ctx,
		&models.Service{Title: "A", Description: "a", Icon: "a"},
		&models.Service{Title: "B", Description: "b", Icon: "b"},
	))

	n, err := tbl.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestTable_First(t *testing.T) {
	ctx := context.Background()
	tbl := newServices(t)

	_, err := tbl.First(ctx, store.Query{Filters: []store.Filter{store.ByID(42)}})
	require.ErrorIs(t, err, store.ErrNotFound)

	row := &models.Service{Title: "SEO", Description: "Search", Icon: "search"}
	require.NoError(t, tbl.Insert(ctx, row))

	got, err := tbl.First(ctx, store.Query{Filters: []store.Filter{store.ByID(row.ID)}})
	require.NoError(t, err)
	assert.Equal(t, "SEO", got.Title)
}

func TestTable_Update(t *testing.T) {
	ctx := context.Background()
	tbl := newServices(t)

	row := &models.Service{Title: "SEO", Description: "Search", Icon: "search", IsFeatured: ptr(true)}
	require.NoError(t, tbl.Insert(ctx, row))

	created := row.CreatedAt

	// full row replace: the nil pointer clears is_featured
	changed := models.Service{ID: 999, Title: "SEO+", Description: "More", Icon: "star"}

	n, err := tbl.Update(ctx, &changed, store.ByID(row.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := tbl.First(ctx, store.Query{Filters: []store.Filter{store.ByID(row.ID)}})
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, "SEO+", got.Title)
	assert.Equal(t, "star", got.Icon)
	assert.Nil(t, got.IsFeatured)
	assert.Equal(t, created.Unix(), got.CreatedAt.Unix())

	// unchanged values still count as found
	n, err = tbl.Update(ctx, got, store.ByID(row.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTable_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	tbl := newServices(t)

	_, err := tbl.Update(ctx, &models.Service{Title: "x", Description: "x", Icon: "x"}, store.ByID(7))
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = tbl.Update(ctx, &models.Service{})
	require.ErrorIs(t, err, store.ErrNoFilter)
}

func TestTable_Delete(t *testing.T) {
	ctx := context.Background()
	tbl := newServices(t)

	row := &models.Service{Title: "SEO", Description: "Search", Icon: "search"}
	require.NoError(t, tbl.Insert(ctx, row))

	n, err := tbl.Delete(ctx, store.ByID(row.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = tbl.Delete(ctx, store.ByID(row.ID))
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = tbl.Delete(ctx)
	require.ErrorIs(t, err, store.ErrNoFilter)
}

func TestTable_Upsert(t *testing.T) {
	ctx := context.Background()
	tbl := store.MustNew[models.SettingEntry](dbtest.Open(t))

	first := &models.SettingEntry{Key: "site_name", Value: "Acme"}
	require.NoError(t, tbl.Upsert(ctx, first, "key", "value"))
	assert.NotZero(t, first.ID)

	second := &models.SettingEntry{Key: "site_name", Value: "Acme Ltd"}
	require.NoError(t, tbl.Upsert(ctx, second, "key", "value"))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Acme Ltd", second.Value)

	n, err := tbl.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = tbl.Upsert(ctx, &models.SettingEntry{Key: "x"}, "nope", "value")
	require.ErrorIs(t, err, store.ErrUnknownColumn)
}
