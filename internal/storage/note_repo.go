package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks orgindex/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// GetByVaultAndPath gets a note by vault ID and relative path.
	// Returns nil and ErrNotFound if not found.
	GetByVaultAndPath(ctx context.Context, vaultID int, relPath string) (*NoteRecord, error)
	// GetByID gets a note by its UUID. Returns ErrNotFound if missing.
	GetByID(ctx context.Context, id string) (*NoteRecord, error)
	// Upsert inserts a new note or updates an existing one.
	Upsert(ctx context.Context, note *NoteRecord) error
	// Delete removes a note and, through cascading, its headlines.
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every note.
	DeleteAll(ctx context.Context) error
	// ListByVault returns the notes of a vault ordered by relative path.
	ListByVault(ctx context.Context, vaultID int) ([]*NoteRecord, error)
	// Count returns the number of notes.
	Count(ctx context.Context) (int, error)
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

const noteColumns = "id, vault_id, rel_path, folder, title, updated_at, hash"

func scanNote(row interface{ Scan(...any) error }) (*NoteRecord, error) {
	var note NoteRecord
	var title sql.NullString
	var updatedAtStr string

	if err := row.Scan(&note.ID, &note.VaultID, &note.RelPath, &note.Folder, &title, &updatedAtStr, &note.Hash); err != nil {
		return nil, err
	}
	note.Title = title.String

	var err error
	note.UpdatedAt, err = parseDBTime(updatedAtStr)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetByVaultAndPath gets a note by vault ID and relative path.
// Returns nil and ErrNotFound if not found.
func (r *NoteRepo) GetByVaultAndPath(ctx context.Context, vaultID int, relPath string) (*NoteRecord, error) {
	note, err := scanNote(r.db.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE vault_id = ? AND rel_path = ?",
		vaultID, relPath,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// GetByID gets a note by its UUID.
func (r *NoteRepo) GetByID(ctx context.Context, id string) (*NoteRecord, error) {
	note, err := scanNote(r.db.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// Upsert inserts a new note or updates an existing one.
// If the note doesn't exist (by vault_id and rel_path), generates a new UUID.
// If it exists, updates title, updated_at, and hash while preserving the ID.
func (r *NoteRepo) Upsert(ctx context.Context, note *NoteRecord) error {
	existing, err := r.GetByVaultAndPath(ctx, note.VaultID, note.RelPath)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check existing note: %w", err)
	}

	// Generate UUID for new notes only
	if existing == nil && note.ID == "" {
		note.ID = uuid.New().String()
	} else if existing != nil {
		// Preserve existing ID
		note.ID = existing.ID
	}

	// A concurrent insert of the same path may win the race; RETURNING
	// reports the id actually stored.
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO notes (id, vault_id, rel_path, folder, title, updated_at, hash)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, ?)
		 ON CONFLICT (vault_id, rel_path) DO UPDATE SET
		 title = excluded.title, folder = excluded.folder, updated_at = CURRENT_TIMESTAMP, hash = excluded.hash
		 RETURNING id`,
		note.ID, note.VaultID, note.RelPath, note.Folder, note.Title, note.Hash,
	).Scan(&note.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	return nil
}

// Delete removes a note by ID. Deleting a missing note is not an error.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// DeleteAll removes every note. Headlines go with them.
func (r *NoteRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM notes"); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	return nil
}

// ListByVault returns the notes of a vault ordered by relative path.
func (r *NoteRepo) ListByVault(ctx context.Context, vaultID int) ([]*NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE vault_id = ? ORDER BY rel_path",
		vaultID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var notes []*NoteRecord
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notes, nil
}

// Count returns the number of notes.
func (r *NoteRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}
