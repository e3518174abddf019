package kvstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/musicaulas/backend/core/session"
	"github.com/musicaulas/backend/storage/kvstore"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := kvstore.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	// absent key
	if _, err = store.Get(ctx, "musicaAulasUser"); err != session.ErrEntryNotFound {
		t.Fatalf("Get() error = %v; want ErrEntryNotFound", err)
	}

	// set and read back
	if err = store.Set(ctx, "musicaAulasUser", []byte(`{"id":"u1"}`)); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, err := store.Get(ctx, "musicaAulasUser")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `{"id":"u1"}` {
		t.Errorf("Get() = %q; want the stored value", got)
	}

	// overwrite
	if err = store.Set(ctx, "musicaAulasUser", []byte(`{"id":"u2"}`)); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if got, _ = store.Get(ctx, "musicaAulasUser"); string(got) != `{"id":"u2"}` {
		t.Errorf("Get() after overwrite = %q; want the new value", got)
	}

	// delete, then delete again as a no-op
	if err = store.Delete(ctx, "musicaAulasUser"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err = store.Get(ctx, "musicaAulasUser"); err != session.ErrEntryNotFound {
		t.Fatalf("Get() after delete error = %v; want ErrEntryNotFound", err)
	}
	if err = store.Delete(ctx, "musicaAulasUser"); err != nil {
		t.Fatalf("Delete() on an absent key failed: %v", err)
	}
}

func TestSQLiteStore_persistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := kvstore.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	if err = store.Set(ctx, "musicaAulasUser", []byte("persisted")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err = store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := kvstore.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed on reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "musicaAulasUser")
	if err != nil {
		t.Fatalf("Get() after reopen failed: %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("Get() after reopen = %q; want %q", got, "persisted")
	}
}
