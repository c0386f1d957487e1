package store_test

import (
	"path/filepath"
	"testing"

	"github.com/despectus/despectus/internal/store"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestAccounts(t *testing.T) {
	database, err := store.Open(t.Context(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	accounts := store.NewAccounts(database)

	_, errMissing := accounts.Get(t.Context(), "Faker#KR1", "asia", store.AccountCacheAge)
	require.ErrorIs(t, errMissing, store.ErrNotFound)

	require.NoError(t, accounts.Put(t.Context(), "Faker#KR1", "asia", "puuid-a"))

	puuid, errGet := accounts.Get(t.Context(), "faker#kr1", "asia", store.AccountCacheAge)
	require.NoError(t, errGet)
	require.Equal(t, "puuid-a", puuid)

	_, errCluster := accounts.Get(t.Context(), "Faker#KR1", "europe", store.AccountCacheAge)
	require.ErrorIs(t, errCluster, store.ErrNotFound)

	require.NoError(t, accounts.Put(t.Context(), "Faker#KR1", "asia", "puuid-b"))
	updated, errUpdated := accounts.Get(t.Context(), "Faker#KR1", "asia", 0)
	require.NoError(t, errUpdated)
	require.Equal(t, "puuid-b", updated)
}

func TestMigrateDown(t *testing.T) {
	database, err := store.Open(t.Context(), filepath.Join(t.TempDir(), "down.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, store.Migrate(database, store.Down))
	require.NoError(t, store.Migrate(database, store.Up))

	require.NoError(t, store.NewAccounts(database).Put(t.Context(), "x#y", "sea", "p"))
}

func TestOpenConnection(t *testing.T) {
	database, err := store.Open(t.Context(), filepath.Join(t.TempDir(), "conn.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.Equal(t, 1, database.Stats().MaxOpenConnections)

	var timeout int
	require.NoError(t, database.QueryRowContext(t.Context(), "PRAGMA busy_timeout").Scan(&timeout))
	require.Equal(t, 5000, timeout)
}
