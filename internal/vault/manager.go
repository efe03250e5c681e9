package vault

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"orgindex/internal/storage"
)

// Root is a configured vault: a name and the directory holding its .org files.
type Root struct {
	Name string
	Path string
}

// Manager manages vault configuration and provides vault lookup and path resolution.
type Manager struct {
	vaultRepo storage.VaultStore
	vaults    []storage.VaultRecord // In configuration order
	byName    map[string]storage.VaultRecord
	excludes  []string
}

// NewManager creates a new vault manager and registers every root in the store.
// Exclude patterns are doublestar globs matched against slash-separated
// paths relative to a vault root.
func NewManager(ctx context.Context, vaultRepo storage.VaultStore, roots []Root, excludes []string) (*Manager, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	m := &Manager{
		vaultRepo: vaultRepo,
		byName:    make(map[string]storage.VaultRecord),
		excludes:  excludes,
	}

	for _, root := range roots {
		if _, dup := m.byName[root.Name]; dup {
			return nil, fmt.Errorf("duplicate vault name: %s", root.Name)
		}
		absRoot, err := filepath.Abs(root.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve vault %s root: %w", root.Name, err)
		}
		vault, err := vaultRepo.GetOrCreateByName(ctx, root.Name, absRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to create vault %s: %w", root.Name, err)
		}
		m.vaults = append(m.vaults, vault)
		m.byName[root.Name] = vault
	}

	return m, nil
}

// Vaults returns the managed vaults in configuration order.
func (m *Manager) Vaults() []storage.VaultRecord {
	out := make([]storage.VaultRecord, len(m.vaults))
	copy(out, m.vaults)
	return out
}

// VaultByName returns the vault record for the given vault name.
func (m *Manager) VaultByName(name string) (storage.VaultRecord, error) {
	vault, ok := m.byName[name]
	if !ok {
		return storage.VaultRecord{}, fmt.Errorf("vault not found: %s", name)
	}
	return vault, nil
}

// VaultByID returns the vault record for the given vault ID.
func (m *Manager) VaultByID(id int) (storage.VaultRecord, error) {
	for _, vault := range m.vaults {
		if vault.ID == id {
			return vault, nil
		}
	}
	return storage.VaultRecord{}, fmt.Errorf("vault not found: %d", id)
}

// AbsPath returns the absolute path for a file given its vault ID and relative path.
// It returns "" for an unknown vault.
func (m *Manager) AbsPath(vaultID int, relPath string) string {
	vault, err := m.VaultByID(vaultID)
	if err != nil {
		return ""
	}
	return filepath.Join(vault.RootPath, filepath.FromSlash(relPath))
}

// Locate maps an absolute file path back to its vault and slash-separated
// relative path. ok is false when the path is outside every vault.
func (m *Manager) Locate(absPath string) (vault storage.VaultRecord, relPath string, ok bool) {
	for _, v := range m.vaults {
		rel, err := filepath.Rel(v.RootPath, absPath)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return v, filepath.ToSlash(rel), true
	}
	return storage.VaultRecord{}, "", false
}

// Excluded reports whether a slash-separated relative path matches an exclude pattern.
func (m *Manager) Excluded(relPath string) bool {
	for _, pattern := range m.excludes {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}
