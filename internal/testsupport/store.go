package testsupport

import (
	"context"
	"testing"

	"shodan/internal/ark"
	"shodan/internal/config"
)

// MustOpenStore opens an ark.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *ark.Store {
	t.Helper()

	store, err := ark.Open(cfg)
	if err != nil {
		t.Fatalf("ark.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustInsert stores records and returns them as persisted.
func MustInsert(t testing.TB, store *ark.Store, records ...ark.Record) []ark.Record {
	t.Helper()

	stored, err := store.Insert(context.Background(), records...)
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return stored
}
