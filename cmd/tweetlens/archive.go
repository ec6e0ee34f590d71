package main

import (
	"context"
	"fmt"

	"github.com/cognicore/tweetlens/pkg/tweetlens/store"
	"github.com/cognicore/tweetlens/pkg/tweetlens/store/sqlstore"
)

// openArchive opens the tweet archive behind driver. SQLite archives run in
// WAL mode so a running import does not block readers.
func openArchive(ctx context.Context, driver, dsn string) (store.Store, error) {
	var (
		st  *sqlstore.Store
		err error
	)
	switch driver {
	case sqlstore.DriverSQLite:
		st, err = sqlstore.OpenSQLite(ctx, dsn)
	default:
		st, err = sqlstore.Open(ctx, driver, dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("open tweet archive: %w", err)
	}
	return st, nil
}
