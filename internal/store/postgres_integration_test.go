//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL environment variable to run them.

func getTestPostgres(t *testing.T) *PostgresKV {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	kv, err := ConnectPostgres(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(kv.Close)
	return kv
}

func TestIntegration_PostgresKV(t *testing.T) {
	kv := getTestPostgres(t)
	ctx := context.Background()
	prefix := SessionPrefix(uuid.NewString())
	scoped := Scoped(kv, prefix)
	t.Cleanup(func() { _ = kv.DeletePrefix(context.Background(), prefix) })

	_, err := scoped.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, scoped.Set(ctx, "user", "first"))
	require.NoError(t, scoped.Set(ctx, "user", "second"))

	value, err := scoped.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "second", value)

	require.NoError(t, scoped.Delete(ctx, "user"))
	_, err = scoped.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)
}
