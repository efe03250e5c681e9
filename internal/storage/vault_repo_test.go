package storage

import (
	"context"
	"testing"
	"time"
)

func TestVaultRepo_GetOrCreateByName(t *testing.T) {
	repo := NewVaultRepo(newTestDB(t))
	ctx := context.Background()

	created, err := repo.GetOrCreateByName(ctx, "notes", "/tmp/notes")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}
	if created.ID <= 0 || created.Name != "notes" || created.RootPath != "/tmp/notes" {
		t.Errorf("GetOrCreateByName() = %+v", created)
	}
	if created.CreatedAt.IsZero() || time.Since(created.CreatedAt) > time.Minute {
		t.Errorf("GetOrCreateByName() CreatedAt = %v, want recent", created.CreatedAt)
	}

	again, err := repo.GetOrCreateByName(ctx, "notes", "/tmp/notes")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("GetOrCreateByName() ID = %d, want %d", again.ID, created.ID)
	}

	other, err := repo.GetOrCreateByName(ctx, "work", "/tmp/work")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}
	if other.ID == created.ID {
		t.Error("GetOrCreateByName() should return a different vault for a different name")
	}
}

func TestVaultRepo_GetOrCreateByName_UpdatesMovedRoot(t *testing.T) {
	repo := NewVaultRepo(newTestDB(t))
	ctx := context.Background()

	first, err := repo.GetOrCreateByName(ctx, "notes", "/tmp/old")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}

	moved, err := repo.GetOrCreateByName(ctx, "notes", "/tmp/new")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}
	if moved.ID != first.ID {
		t.Errorf("GetOrCreateByName() ID = %d, want %d", moved.ID, first.ID)
	}
	if moved.RootPath != "/tmp/new" {
		t.Errorf("GetOrCreateByName() RootPath = %q, want /tmp/new", moved.RootPath)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 1 || all[0].RootPath != "/tmp/new" {
		t.Errorf("ListAll() = %+v, want one vault rooted at /tmp/new", all)
	}
}

func TestVaultRepo_ListAll(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{
			name:  "empty",
			names: nil,
			want:  nil,
		},
		{
			name:  "ordered by name",
			names: []string{"z-vault", "a-vault", "m-vault"},
			want:  []string{"a-vault", "m-vault", "z-vault"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewVaultRepo(newTestDB(t))
			ctx := context.Background()

			for _, name := range tt.names {
				if _, err := repo.GetOrCreateByName(ctx, name, "/tmp/"+name); err != nil {
					t.Fatalf("GetOrCreateByName() error = %v", err)
				}
			}

			vaults, err := repo.ListAll(ctx)
			if err != nil {
				t.Fatalf("ListAll() error = %v", err)
			}
			if len(vaults) != len(tt.want) {
				t.Fatalf("ListAll() returned %d vaults, want %d", len(vaults), len(tt.want))
			}
			for i, v := range vaults {
				if v.Name != tt.want[i] {
					t.Errorf("ListAll()[%d] = %q, want %q", i, v.Name, tt.want[i])
				}
			}
		})
	}
}
