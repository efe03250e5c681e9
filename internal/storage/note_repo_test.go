package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestVault(t *testing.T, repo *VaultRepo, name string) VaultRecord {
	t.Helper()
	vault, err := repo.GetOrCreateByName(context.Background(), name, "/tmp/"+name)
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}
	return vault
}

func TestNoteRepo_GetByVaultAndPath(t *testing.T) {
	db := newTestDB(t)
	vault := newTestVault(t, NewVaultRepo(db), "test")
	repo := NewNoteRepo(db)

	tests := []struct {
		name    string
		setup   func()
		relPath string
		wantErr error
		check   func(*NoteRecord) bool
	}{
		{
			name: "existing note",
			setup: func() {
				_ = repo.Upsert(context.Background(), &NoteRecord{
					ID:      "test-id",
					VaultID: vault.ID,
					RelPath: "projects/plan.org",
					Folder:  "projects",
					Title:   "Plan",
					Hash:    "abc123",
				})
			},
			relPath: "projects/plan.org",
			check: func(note *NoteRecord) bool {
				return note.ID == "test-id" && note.Title == "Plan" && note.Folder == "projects"
			},
		},
		{
			name:    "non-existent note",
			setup:   func() {},
			relPath: "missing.org",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _ = db.Exec("DELETE FROM notes")
			tt.setup()

			note, err := repo.GetByVaultAndPath(context.Background(), vault.ID, tt.relPath)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByVaultAndPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("GetByVaultAndPath() unexpected error: %v", err)
			}

			if tt.check != nil && !tt.check(note) {
				t.Errorf("GetByVaultAndPath() = %+v, validation failed", note)
			}
		})
	}
}

func TestNoteRepo_Upsert(t *testing.T) {
	db := newTestDB(t)
	vault := newTestVault(t, NewVaultRepo(db), "test")
	repo := NewNoteRepo(db)
	ctx := context.Background()

	first := &NoteRecord{VaultID: vault.ID, RelPath: "a.org", Title: "Original", Hash: "h1"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if len(first.ID) != 36 {
		t.Errorf("Upsert() generated ID %q, want a UUID", first.ID)
	}

	second := &NoteRecord{VaultID: vault.ID, RelPath: "a.org", Title: "Updated", Hash: "h2"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Upsert() ID = %q, want preserved %q", second.ID, first.ID)
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Updated" || got.Hash != "h2" {
		t.Errorf("GetByID() = %+v, want updated title and hash", got)
	}
	if got.UpdatedAt.IsZero() || time.Since(got.UpdatedAt) > time.Minute {
		t.Errorf("UpdatedAt = %v, want recent", got.UpdatedAt)
	}
}

func TestNoteRepo_Upsert_ConcurrentInsertsShareID(t *testing.T) {
	db := newTestDB(t)
	vault := newTestVault(t, NewVaultRepo(db), "test")
	repo := NewNoteRepo(db)
	ctx := context.Background()

	const writers = 8
	notes := make([]*NoteRecord, writers)
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := range notes {
		notes[i] = &NoteRecord{VaultID: vault.ID, RelPath: "race.org", Title: "Race", Hash: "h"}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Upsert(ctx, notes[i])
		}(i)
	}
	wg.Wait()

	stored, err := repo.GetByVaultAndPath(ctx, vault.ID, "race.org")
	if err != nil {
		t.Fatalf("GetByVaultAndPath() error = %v", err)
	}
	for i, n := range notes {
		if errs[i] != nil {
			t.Fatalf("Upsert() #%d error = %v", i, errs[i])
		}
		if n.ID != stored.ID {
			t.Errorf("Upsert() #%d ID = %q, want stored %q", i, n.ID, stored.ID)
		}
	}
}

func TestNoteRepo_ListCountDelete(t *testing.T) {
	db := newTestDB(t)
	vaults := NewVaultRepo(db)
	v1 := newTestVault(t, vaults, "v1")
	v2 := newTestVault(t, vaults, "v2")
	repo := NewNoteRepo(db)
	ctx := context.Background()

	notes := []*NoteRecord{
		{VaultID: v1.ID, RelPath: "b.org", Hash: "1"},
		{VaultID: v1.ID, RelPath: "a/c.org", Folder: "a", Hash: "2"},
		{VaultID: v2.ID, RelPath: "d.org", Hash: "3"},
	}
	for _, n := range notes {
		if err := repo.Upsert(ctx, n); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	listed, err := repo.ListByVault(ctx, v1.ID)
	if err != nil {
		t.Fatalf("ListByVault() error = %v", err)
	}
	if len(listed) != 2 || listed[0].RelPath != "a/c.org" || listed[1].RelPath != "b.org" {
		t.Errorf("ListByVault() = %+v, want a/c.org then b.org", listed)
	}

	if n, err := repo.Count(ctx); err != nil || n != 3 {
		t.Errorf("Count() = %d, %v, want 3", n, err)
	}

	if err := repo.Delete(ctx, notes[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, notes[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after Delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete() of missing note error = %v, want nil", err)
	}
	if n, _ := repo.Count(ctx); n != 2 {
		t.Errorf("Count() after Delete = %d, want 2", n)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("Count() after DeleteAll = %d, want 0", n)
	}
}
