package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// AccountCacheAge is how long a resolved riot id is trusted before being looked up again.
const AccountCacheAge = 24 * time.Hour

// Accounts caches riot id to PUUID lookups so a refresh can skip the account api call.
type Accounts struct {
	db  DBTX
	now func() time.Time
}

func NewAccounts(db DBTX) *Accounts {
	return &Accounts{db: db, now: time.Now}
}

// Get returns the cached PUUID for the riot id on cluster. ErrNotFound is returned for unknown
// or expired entries.
func (a *Accounts) Get(ctx context.Context, riotID string, cluster string, maxAge time.Duration) (string, error) {
	const query = `SELECT puuid, updated_on FROM account WHERE riot_id = ? AND cluster = ?`

	var (
		puuid     string
		updatedOn int64
	)

	if err := a.db.QueryRowContext(ctx, query, normaliseRiotID(riotID), cluster).Scan(&puuid, &updatedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}

		return "", errors.Join(err, ErrQuery)
	}

	if maxAge > 0 && a.now().Sub(time.Unix(updatedOn, 0)) > maxAge {
		return "", ErrNotFound
	}

	return puuid, nil
}

// Put stores or refreshes the PUUID for a riot id.
func (a *Accounts) Put(ctx context.Context, riotID string, cluster string, puuid string) error {
	const query = `
		INSERT INTO account (riot_id, cluster, puuid, updated_on) VALUES (?, ?, ?, ?)
		ON CONFLICT (riot_id, cluster) DO UPDATE SET puuid = excluded.puuid, updated_on = excluded.updated_on`

	if _, err := a.db.ExecContext(ctx, query, normaliseRiotID(riotID), cluster, puuid, a.now().Unix()); err != nil {
		return errors.Join(err, ErrQuery)
	}

	return nil
}

// Riot ids are case insensitive.
func normaliseRiotID(riotID string) string {
	return strings.ToLower(strings.TrimSpace(riotID))
}
