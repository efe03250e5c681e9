package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_headline_store.go -package=mocks orgindex/internal/storage HeadlineStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"orgindex/internal/org"
)

// HeadlineStore defines the interface for headline storage operations.
type HeadlineStore interface {
	// ReplaceForNote deletes the note's headlines and inserts the given ones
	// in a single transaction. IDs are assigned on insert.
	ReplaceForNote(ctx context.Context, noteID string, headlines []*HeadlineRecord) error
	// ListByNote returns a note's headlines ordered by headline_index.
	ListByNote(ctx context.Context, noteID string) ([]*HeadlineRecord, error)
	// Search returns headlines matching the filter with their note context.
	Search(ctx context.Context, filter HeadlineFilter) ([]*HeadlineMatch, error)
	// DeleteByNote deletes all headlines for a given note ID.
	DeleteByNote(ctx context.Context, noteID string) error
	// Count returns the number of headlines.
	Count(ctx context.Context) (int, error)
	// CountByKeyword returns headline counts per non-empty keyword.
	CountByKeyword(ctx context.Context) (map[string]int, error)
	// CountByTag returns the most used tags, at most limit entries.
	CountByTag(ctx context.Context, limit int) ([]TagCount, error)
	// CountWithTag returns the number of headlines carrying tag.
	CountWithTag(ctx context.Context, tag string) (int, error)
}

// HeadlineRepo provides methods for headline operations.
// It implements the HeadlineStore interface.
type HeadlineRepo struct {
	db *sql.DB
}

// NewHeadlineRepo creates a new HeadlineRepo.
func NewHeadlineRepo(db *sql.DB) *HeadlineRepo {
	return &HeadlineRepo{db: db}
}

const headlineColumns = "h.id, h.note_id, h.headline_index, h.line, h.level, h.keyword, h.priority, h.raw, h.path, h.tags, h.planning, h.properties"

// ReplaceForNote deletes the note's headlines and inserts the given ones.
func (r *HeadlineRepo) ReplaceForNote(ctx context.Context, noteID string, headlines []*HeadlineRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = deleteHeadlines(ctx, tx, noteID); err != nil {
		return err
	}

	for _, h := range headlines {
		h.NoteID = noteID
		tags, planning, properties, encErr := encodeTitle(h.Title)
		if encErr != nil {
			err = encErr
			return err
		}

		var res sql.Result
		res, err = tx.ExecContext(ctx,
			`INSERT INTO headlines (note_id, headline_index, line, level, keyword, priority, raw, path, tags, planning, properties)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID, h.HeadlineIndex, h.Line, h.Title.Level, h.Title.Keyword, h.Title.PriorityString(),
			h.Title.Raw, h.Path, tags, planning, properties,
		)
		if err != nil {
			return fmt.Errorf("failed to insert headline: %w", err)
		}
		if h.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read headline id: %w", err)
		}

		for _, tag := range h.Title.Tags {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO headline_tags (headline_id, tag) VALUES (?, ?)",
				h.ID, tag,
			); err != nil {
				return fmt.Errorf("failed to insert headline tag: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit headlines: %w", err)
	}
	return nil
}

// DeleteByNote deletes all headlines for a given note ID.
func (r *HeadlineRepo) DeleteByNote(ctx context.Context, noteID string) error {
	return deleteHeadlines(ctx, r.db, noteID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func deleteHeadlines(ctx context.Context, db execer, noteID string) error {
	if _, err := db.ExecContext(ctx,
		"DELETE FROM headline_tags WHERE headline_id IN (SELECT id FROM headlines WHERE note_id = ?)",
		noteID,
	); err != nil {
		return fmt.Errorf("failed to delete headline tags: %w", err)
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM headlines WHERE note_id = ?", noteID); err != nil {
		return fmt.Errorf("failed to delete headlines by note: %w", err)
	}
	return nil
}

// ListByNote returns a note's headlines ordered by headline_index.
// Returns an empty slice if the note has no headlines (not an error).
func (r *HeadlineRepo) ListByNote(ctx context.Context, noteID string) ([]*HeadlineRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+headlineColumns+" FROM headlines h WHERE h.note_id = ? ORDER BY h.headline_index",
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query headlines: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	headlines := []*HeadlineRecord{}
	for rows.Next() {
		var h HeadlineRecord
		if err := scanHeadline(rows, &h); err != nil {
			return nil, err
		}
		headlines = append(headlines, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return headlines, nil
}

// Search returns headlines matching the filter, ordered by vault, path and position.
func (r *HeadlineRepo) Search(ctx context.Context, filter HeadlineFilter) ([]*HeadlineMatch, error) {
	var (
		where []string
		args  []any
	)
	if filter.VaultName != "" {
		where = append(where, "v.name = ?")
		args = append(args, filter.VaultName)
	}
	if filter.Keyword != "" {
		where = append(where, "h.keyword = ?")
		args = append(args, filter.Keyword)
	}
	if filter.Priority != "" {
		where = append(where, "h.priority = ?")
		args = append(args, filter.Priority)
	}
	if filter.Level > 0 {
		where = append(where, "h.level = ?")
		args = append(args, filter.Level)
	}
	if filter.Query != "" {
		where = append(where, "h.raw LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(filter.Query)+"%")
	}
	if filter.Tag != "" {
		where = append(where, "EXISTS (SELECT 1 FROM headline_tags t WHERE t.headline_id = h.id AND t.tag = ?)")
		args = append(args, filter.Tag)
	}
	if !filter.IncludeArchived {
		where = append(where, "NOT EXISTS (SELECT 1 FROM headline_tags t WHERE t.headline_id = h.id AND t.tag = 'ARCHIVE')")
	}

	query := "SELECT " + headlineColumns + ", v.name, n.rel_path, n.title" +
		" FROM headlines h JOIN notes n ON n.id = h.note_id JOIN vaults v ON v.id = n.vault_id"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY v.name, n.rel_path, h.headline_index"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search headlines: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	matches := []*HeadlineMatch{}
	for rows.Next() {
		var m HeadlineMatch
		var noteTitle sql.NullString
		if err := scanHeadline(rows, &m.HeadlineRecord, &m.VaultName, &m.RelPath, &noteTitle); err != nil {
			return nil, err
		}
		m.NoteTitle = noteTitle.String
		matches = append(matches, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return matches, nil
}

// Count returns the number of headlines.
func (r *HeadlineRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM headlines").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count headlines: %w", err)
	}
	return n, nil
}

// CountByKeyword returns headline counts per non-empty keyword.
func (r *HeadlineRepo) CountByKeyword(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT keyword, COUNT(*) FROM headlines WHERE keyword != '' GROUP BY keyword",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count keywords: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var keyword string
		var n int
		if err := rows.Scan(&keyword, &n); err != nil {
			return nil, fmt.Errorf("failed to scan keyword count: %w", err)
		}
		counts[keyword] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

// CountByTag returns the most used tags, most frequent first, ties by name.
func (r *HeadlineRepo) CountByTag(ctx context.Context, limit int) ([]TagCount, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT tag, COUNT(*) AS n FROM headline_tags GROUP BY tag ORDER BY n DESC, tag LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := []TagCount{}
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tag count: %w", err)
		}
		counts = append(counts, tc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

// CountWithTag returns the number of headlines carrying tag, counted once each.
func (r *HeadlineRepo) CountWithTag(ctx context.Context, tag string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT headline_id) FROM headline_tags WHERE tag = ?",
		tag,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tag %s: %w", tag, err)
	}
	return n, nil
}

func scanHeadline(row interface{ Scan(...any) error }, h *HeadlineRecord, extra ...any) error {
	var priority, tags, planning, properties string
	dest := []any{
		&h.ID, &h.NoteID, &h.HeadlineIndex, &h.Line, &h.Title.Level, &h.Title.Keyword,
		&priority, &h.Title.Raw, &h.Path, &tags, &planning, &properties,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return fmt.Errorf("failed to scan headline: %w", err)
	}
	if priority != "" {
		h.Title.Priority = rune(priority[0])
	}
	return decodeTitle(&h.Title, tags, planning, properties)
}

func encodeTitle(t org.Title) (tags, planning, properties string, err error) {
	tagData, err := json.Marshal(t.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode tags: %w", err)
	}
	if t.Tags == nil {
		tagData = []byte("[]")
	}
	if t.Planning != nil {
		data, err := json.Marshal(t.Planning)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to encode planning: %w", err)
		}
		planning = string(data)
	}
	props := t.Properties
	if props == nil {
		props = map[string]string{}
	}
	propData, err := json.Marshal(props)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode properties: %w", err)
	}
	return string(tagData), planning, string(propData), nil
}

func decodeTitle(t *org.Title, tags, planning, properties string) error {
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return fmt.Errorf("failed to decode tags: %w", err)
	}
	if len(t.Tags) == 0 {
		t.Tags = nil
	}
	if planning != "" {
		t.Planning = &org.Planning{}
		if err := json.Unmarshal([]byte(planning), t.Planning); err != nil {
			return fmt.Errorf("failed to decode planning: %w", err)
		}
	}
	t.Properties = make(map[string]string)
	if err := json.Unmarshal([]byte(properties), &t.Properties); err != nil {
		return fmt.Errorf("failed to decode properties: %w", err)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
