package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestAccountsExpiry(t *testing.T) {
	database, err := Open(t.Context(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	now := time.Now()
	accounts := NewAccounts(database)
	accounts.now = func() time.Time { return now.Add(-25 * time.Hour) }
	require.NoError(t, accounts.Put(t.Context(), "Someone#EUW", "europe", "puuid"))

	accounts.now = func() time.Time { return now }

	_, errExpired := accounts.Get(t.Context(), "Someone#EUW", "europe", AccountCacheAge)
	require.ErrorIs(t, errExpired, ErrNotFound)

	puuid, errNoLimit := accounts.Get(t.Context(), "Someone#EUW", "europe", 0)
	require.NoError(t, errNoLimit)
	require.Equal(t, "puuid", puuid)
}
