package vault

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
)

// Ext is the extension of the files picked up by ScanAll.
const Ext = ".org"

// ScannedFile represents an org file found during vault scanning.
type ScannedFile struct {
	VaultID int    // Vault ID from database
	RelPath string // Relative path from vault root (e.g., "projects/plan.org")
	Folder  string // Folder path (path components except filename, e.g., "projects")
	AbsPath string // Absolute file path
}

// FolderOf returns the folder part of a slash-separated relative path, "" at the root.
func FolderOf(relPath string) string {
	folder := path.Dir(relPath)
	if folder == "." {
		return ""
	}
	return folder
}

// ScanAll scans all vaults and returns every .org file not excluded.
func (m *Manager) ScanAll(ctx context.Context) ([]ScannedFile, error) {
	var scannedFiles []ScannedFile

	for _, vault := range m.vaults {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		err := filepath.WalkDir(vault.RootPath, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("failed to access path %s: %w", p, err)
			}

			relPath, err := filepath.Rel(vault.RootPath, p)
			if err != nil {
				return fmt.Errorf("failed to compute relative path for %s: %w", p, err)
			}
			relPath = filepath.ToSlash(relPath)

			if d.IsDir() {
				if relPath != "." && m.SkipDir(relPath) {
					return filepath.SkipDir
				}
				return nil
			}

			if filepath.Ext(p) != Ext || m.Excluded(relPath) {
				return nil
			}

			scannedFiles = append(scannedFiles, ScannedFile{
				VaultID: vault.ID,
				RelPath: relPath,
				Folder:  FolderOf(relPath),
				AbsPath: p,
			})
			return nil
		})

		if err != nil {
			return scannedFiles, fmt.Errorf("failed to scan vault %s: %w", vault.Name, err)
		}
	}

	return scannedFiles, nil
}

// SkipDir reports whether a directory, given by its slash-separated relative
// path, is excluded as a whole.
func (m *Manager) SkipDir(relPath string) bool {
	return m.Excluded(relPath) || m.Excluded(relPath+"/")
}
