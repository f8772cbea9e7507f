package storage

import (
	"context"
	"os"
	"testing"
)

// Set MINESWEEPER_TEST_PG_DSN to a disposable database to run these.
// The scores table is cleared before each subtest.
const pgDSNEnv = "MINESWEEPER_TEST_PG_DSN"

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv(pgDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", pgDSNEnv)
	}

	runStoreTests(t, func(t *testing.T) Store {
		t.Helper()
		ctx := context.Background()
		store, err := Connect(ctx, dsn)
		if err != nil {
			t.Fatalf("Connect() failed: %v", err)
		}
		if _, ok := store.(*Postgres); !ok {
			t.Fatalf("Connect() returned %T, expected *Postgres", store)
		}
		if err := store.ClearScores(ctx); err != nil {
			t.Fatalf("ClearScores() failed: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		return store
	})
}
