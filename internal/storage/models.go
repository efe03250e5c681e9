package storage

import (
	"time"

	"orgindex/internal/org"
)

// VaultRecord represents a vault (a directory tree of .org files) in the database.
type VaultRecord struct {
	ID        int
	Name      string
	RootPath  string
	CreatedAt time.Time
}

// NoteRecord represents an org file in the database.
type NoteRecord struct {
	ID        string    // UUID
	VaultID   int       // Foreign key to vaults.id
	RelPath   string    // Relative path from vault root
	Folder    string    // Folder path (path components except filename)
	Title     string    // #+TITLE or first top-level headline
	UpdatedAt time.Time
	Hash      string // SHA256 hex string of file content
}

// HeadlineRecord is one parsed headline of a note.
type HeadlineRecord struct {
	ID            int64
	NoteID        string
	HeadlineIndex int    // Position within the note (starts at 0)
	Line          int    // 1-based line number of the headline
	Path          string // Format: "* Parent > ** Child"
	Title         org.Title
}

// HeadlineMatch is a headline returned by Search, with its note context.
type HeadlineMatch struct {
	HeadlineRecord
	VaultName string
	RelPath   string
	NoteTitle string
}

// HeadlineFilter narrows Search results. Zero fields are ignored.
type HeadlineFilter struct {
	VaultName       string
	Keyword         string
	Tag             string
	Priority        string
	Level           int
	Query           string // Substring match on the raw title
	IncludeArchived bool
	Limit           int
}

// TagCount is the number of headlines carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
