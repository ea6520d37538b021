package daemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortejtech/agency-admin/internal/auth"
	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/db/dbtest"
)

func TestSeed_ConfiguredPassword(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	cfg := &config.Config{Admin: config.Admin{Username: "root", InitialPassword: "changeme"}}

	require.NoError(t, seed(ctx, cfg, db))

	provider := auth.NewLocalProvider(db)
	assert.True(t, provider.Login(ctx, "root", "changeme"))

	// a second run leaves the existing account alone
	cfg.Admin.InitialPassword = "other"
	require.NoError(t, seed(ctx, cfg, db))

	count, err := provider.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.False(t, provider.Login(ctx, "root", "other"))
}

func TestSeed_GeneratedPassword(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	require.NoError(t, seed(ctx, &config.Config{}, db))

	provider := auth.NewLocalProvider(db)

	count, err := provider.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.False(t, provider.Login(ctx, defaultAdmin, ""))
}

func TestStorage_SQLiteIsInMemory(t *testing.T) {
	cfg := &config.Config{DB: config.DB{GormEngine: config.EngineSQLite}}
	assert.Nil(t, storage(cfg, sessionTable))
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilConfig)
}
