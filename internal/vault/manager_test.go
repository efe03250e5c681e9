package vault

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"orgindex/internal/storage"
	"orgindex/internal/storage/mocks"
)

// newTestManager registers roots against a mock store that hands out IDs in order.
func newTestManager(t *testing.T, roots []Root, excludes []string) *Manager {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockVaultRepo := mocks.NewMockVaultStore(ctrl)
	for i, root := range roots {
		abs, _ := filepath.Abs(root.Path)
		mockVaultRepo.EXPECT().
			GetOrCreateByName(gomock.Any(), root.Name, abs).
			Return(storage.VaultRecord{ID: i + 1, Name: root.Name, RootPath: abs}, nil)
	}

	manager, err := NewManager(context.Background(), mockVaultRepo, roots, excludes)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return manager
}

func TestNewManager(t *testing.T) {
	manager := newTestManager(t, []Root{
		{Name: "personal", Path: "/tmp/personal"},
		{Name: "work", Path: "/tmp/work"},
	}, nil)

	vaults := manager.Vaults()
	if len(vaults) != 2 || vaults[0].Name != "personal" || vaults[1].Name != "work" {
		t.Errorf("Vaults() = %+v, want personal then work", vaults)
	}
}

func TestNewManager_Error(t *testing.T) {
	tests := []struct {
		name     string
		roots    []Root
		excludes []string
		setup    func(*mocks.MockVaultStore)
	}{
		{
			name:  "store failure",
			roots: []Root{{Name: "personal", Path: "/tmp/personal"}},
			setup: func(m *mocks.MockVaultStore) {
				m.EXPECT().
					GetOrCreateByName(gomock.Any(), "personal", "/tmp/personal").
					Return(storage.VaultRecord{}, storage.ErrNotFound)
			},
		},
		{
			name:  "duplicate name",
			roots: []Root{{Name: "a", Path: "/tmp/a"}, {Name: "a", Path: "/tmp/b"}},
			setup: func(m *mocks.MockVaultStore) {
				m.EXPECT().
					GetOrCreateByName(gomock.Any(), "a", "/tmp/a").
					Return(storage.VaultRecord{ID: 1, Name: "a", RootPath: "/tmp/a"}, nil)
			},
		},
		{
			name:     "bad exclude pattern",
			roots:    []Root{{Name: "a", Path: "/tmp/a"}},
			excludes: []string{"[unclosed"},
			setup:    func(*mocks.MockVaultStore) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockVaultRepo := mocks.NewMockVaultStore(ctrl)
			tt.setup(mockVaultRepo)

			manager, err := NewManager(context.Background(), mockVaultRepo, tt.roots, tt.excludes)
			if err == nil {
				t.Error("NewManager() expected error, got nil")
			}
			if manager != nil {
				t.Error("NewManager() should return nil on error")
			}
		})
	}
}

func TestManager_Lookups(t *testing.T) {
	manager := newTestManager(t, []Root{
		{Name: "personal", Path: "/tmp/personal"},
		{Name: "work", Path: "/tmp/work"},
	}, nil)

	tests := []struct {
		name  string
		check func() bool
	}{
		{
			name: "by name",
			check: func() bool {
				v, err := manager.VaultByName("work")
				return err == nil && v.ID == 2
			},
		},
		{
			name: "unknown name",
			check: func() bool {
				_, err := manager.VaultByName("missing")
				return err != nil
			},
		},
		{
			name: "by id",
			check: func() bool {
				v, err := manager.VaultByID(1)
				return err == nil && v.Name == "personal"
			},
		},
		{
			name: "unknown id",
			check: func() bool {
				_, err := manager.VaultByID(99)
				return err != nil
			},
		},
		{
			name: "abs path",
			check: func() bool {
				return manager.AbsPath(2, "projects/plan.org") == filepath.Join("/tmp/work", "projects", "plan.org")
			},
		},
		{
			name: "abs path unknown vault",
			check: func() bool {
				return manager.AbsPath(99, "plan.org") == ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check() {
				t.Error("lookup validation failed")
			}
		})
	}
}

func TestManager_Locate(t *testing.T) {
	manager := newTestManager(t, []Root{
		{Name: "personal", Path: "/tmp/personal"},
		{Name: "work", Path: "/tmp/work"},
	}, nil)

	tests := []struct {
		name      string
		absPath   string
		wantOK    bool
		wantVault string
		wantRel   string
	}{
		{
			name:      "nested file",
			absPath:   "/tmp/work/projects/plan.org",
			wantOK:    true,
			wantVault: "work",
			wantRel:   "projects/plan.org",
		},
		{
			name:    "outside every vault",
			absPath: "/tmp/other/plan.org",
			wantOK:  false,
		},
		{
			name:    "vault root itself",
			absPath: "/tmp/personal",
			wantOK:  false,
		},
		{
			name:    "sibling with shared prefix",
			absPath: "/tmp/personal-old/a.org",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault, rel, ok := manager.Locate(tt.absPath)
			if ok != tt.wantOK {
				t.Fatalf("Locate() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (vault.Name != tt.wantVault || rel != tt.wantRel) {
				t.Errorf("Locate() = %s, %q, want %s, %q", vault.Name, rel, tt.wantVault, tt.wantRel)
			}
		})
	}
}

func TestManager_Excluded(t *testing.T) {
	manager := newTestManager(t, []Root{{Name: "a", Path: "/tmp/a"}}, []string{"**/.git/**", "archive/**", "**/*.draft.org"})

	tests := []struct {
		relPath string
		want    bool
	}{
		{"notes.org", false},
		{".git/config", true},
		{"sub/.git/HEAD", true},
		{"archive/2019.org", true},
		{"projects/archive.org", false},
		{"ideas.draft.org", true},
		{"deep/ideas.draft.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.relPath, func(t *testing.T) {
			if got := manager.Excluded(tt.relPath); got != tt.want {
				t.Errorf("Excluded(%q) = %v, want %v", tt.relPath, got, tt.want)
			}
		})
	}
}
