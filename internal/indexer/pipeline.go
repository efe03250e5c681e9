package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path"
	"sync"

	"orgindex/internal/contextutil"
	"orgindex/internal/org"
	"orgindex/internal/storage"
	"orgindex/internal/vault"
)

// Pipeline orchestrates the indexing of org files into SQLite.
// Its write operations are serialized: a full run, a watcher update and a
// clear never interleave.
type Pipeline struct {
	mu sync.Mutex

	vaultManager *vault.Manager
	noteRepo     storage.NoteStore
	headlineRepo storage.HeadlineStore
	extractor    *OutlineExtractor
	indexVersion string
}

// NewPipeline creates a new indexing pipeline parsing with the given vocabulary.
func NewPipeline(
	vaultManager *vault.Manager,
	noteRepo storage.NoteStore,
	headlineRepo storage.HeadlineStore,
	cfg org.ParseConfig,
) *Pipeline {
	return &Pipeline{
		vaultManager: vaultManager,
		noteRepo:     noteRepo,
		headlineRepo: headlineRepo,
		extractor:    NewOutlineExtractor(cfg),
		indexVersion: IndexVersion(cfg),
	}
}

// Vaults returns the vault manager the pipeline indexes.
func (p *Pipeline) Vaults() *vault.Manager {
	return p.vaultManager
}

// contentHash fingerprints a file together with the index version, so a
// vocabulary change re-indexes unchanged files.
func (p *Pipeline) contentHash(content []byte) string {
	h := sha256.New()
	h.Write([]byte(p.indexVersion))
	h.Write([]byte{0})
	h.Write(content)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// IndexNote indexes a single org file.
// It skips files whose content hash is unchanged, otherwise it extracts the
// outline, upserts the note and replaces its headlines.
func (p *Pipeline) IndexNote(ctx context.Context, vaultID int, relPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexNote(ctx, vaultID, relPath)
}

func (p *Pipeline) indexNote(ctx context.Context, vaultID int, relPath string) error {
	logger := contextutil.LoggerFromContext(ctx)

	absPath := p.vaultManager.AbsPath(vaultID, relPath)
	if absPath == "" {
		return fmt.Errorf("failed to resolve absolute path for vault %d, relPath %s", vaultID, relPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", absPath, err)
	}

	hashHex := p.contentHash(content)

	existingNote, err := p.noteRepo.GetByVaultAndPath(ctx, vaultID, relPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check existing note: %w", err)
	}

	if existingNote != nil && existingNote.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "rel_path", relPath, "hash", hashHex)
		return nil
	}

	title, headlines, err := p.extractor.Extract(content, path.Base(relPath))
	if err != nil {
		return fmt.Errorf("failed to extract outline: %w", err)
	}

	noteRecord := &storage.NoteRecord{
		VaultID: vaultID,
		RelPath: relPath,
		Folder:  vault.FolderOf(relPath),
		Title:   title,
		Hash:    hashHex,
	}
	if existingNote != nil {
		noteRecord.ID = existingNote.ID
	}
	if err := p.noteRepo.Upsert(ctx, noteRecord); err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	records := make([]*storage.HeadlineRecord, len(headlines))
	for i, h := range headlines {
		records[i] = &storage.HeadlineRecord{
			NoteID:        noteRecord.ID,
			HeadlineIndex: h.Index,
			Line:          h.Line,
			Path:          h.Path,
			Title:         h.Title,
		}
	}
	if err := p.headlineRepo.ReplaceForNote(ctx, noteRecord.ID, records); err != nil {
		return fmt.Errorf("failed to store headlines: %w", err)
	}

	logger.InfoContext(ctx, "indexed note", "rel_path", relPath, "headlines", len(headlines), "title", title)
	return nil
}

// RemoveNote drops a note and its headlines. A note that was never indexed
// is not an error.
func (p *Pipeline) RemoveNote(ctx context.Context, vaultID int, relPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removeNote(ctx, vaultID, relPath)
}

func (p *Pipeline) removeNote(ctx context.Context, vaultID int, relPath string) error {
	note, err := p.noteRepo.GetByVaultAndPath(ctx, vaultID, relPath)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up note: %w", err)
	}

	if err := p.headlineRepo.DeleteByNote(ctx, note.ID); err != nil {
		return fmt.Errorf("failed to delete headlines: %w", err)
	}
	if err := p.noteRepo.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "removed note", "rel_path", relPath)
	return nil
}

// IndexAll scans all vaults and indexes every org file.
// Errors for individual files are logged but don't stop the indexing process.
// Notes whose file disappeared since the last run are removed.
func (p *Pipeline) IndexAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger := contextutil.LoggerFromContext(ctx)

	scannedFiles, err := p.vaultManager.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan vaults: %w", err)
	}

	logger.InfoContext(ctx, "starting indexing", "total_files", len(scannedFiles))

	seen := make(map[int]map[string]bool)
	var successCount, errorCount int

	for _, file := range scannedFiles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if seen[file.VaultID] == nil {
			seen[file.VaultID] = make(map[string]bool)
		}
		seen[file.VaultID][file.RelPath] = true

		if err := p.indexNote(ctx, file.VaultID, file.RelPath); err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to index file", "rel_path", file.RelPath, "error", err)
			continue
		}

		successCount++
	}

	removed, err := p.pruneMissing(ctx, seen)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "indexing completed",
		"total_files", len(scannedFiles), "success", successCount, "errors", errorCount, "removed", removed)

	if errorCount > 0 {
		return fmt.Errorf("indexing completed with %d errors", errorCount)
	}

	return nil
}

// pruneMissing removes stored notes that the last scan did not find.
func (p *Pipeline) pruneMissing(ctx context.Context, seen map[int]map[string]bool) (int, error) {
	removed := 0
	for _, v := range p.vaultManager.Vaults() {
		notes, err := p.noteRepo.ListByVault(ctx, v.ID)
		if err != nil {
			return removed, fmt.Errorf("failed to list notes of vault %s: %w", v.Name, err)
		}
		for _, note := range notes {
			if seen[v.ID][note.RelPath] {
				continue
			}
			if err := p.removeNote(ctx, v.ID, note.RelPath); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// ClearAll removes every indexed note and headline.
func (p *Pipeline) ClearAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.noteRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "cleared all indexed notes")
	return nil
}
