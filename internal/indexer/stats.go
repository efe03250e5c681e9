package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"orgindex/internal/org"
	"orgindex/internal/storage"
)

const (
	// ParserVersion identifies the headline parser implementation.
	// Update this when parsing results change for existing input.
	ParserVersion = "v1.0"
	// topTagLimit is the number of tags reported by Stats.
	topTagLimit = 20
)

// IndexStats describes the current content of the index.
type IndexStats struct {
	// Notes is the number of indexed files.
	Notes int `json:"notes"`
	// Headlines is the number of indexed headlines.
	Headlines int `json:"headlines"`
	// Keywords counts headlines per todo/done keyword.
	Keywords map[string]int `json:"keywords"`
	// TopTags lists the most used tags, most frequent first.
	TopTags []storage.TagCount `json:"top_tags"`
	// Archived is the number of headlines tagged ARCHIVE.
	Archived int `json:"archived"`
	// ParserVersion is the version of the parser used.
	ParserVersion string `json:"parser_version"`
	// IndexVersion is a hash identifying the index build (parser + vocabulary).
	IndexVersion string `json:"index_version"`
}

// IndexVersion hashes the parser version and the keyword vocabulary.
func IndexVersion(cfg org.ParseConfig) string {
	input := fmt.Sprintf("%s|todo=%s|done=%s",
		ParserVersion, strings.Join(cfg.TodoKeywords, ","), strings.Join(cfg.DoneKeywords, ","))
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16] // 16 hex chars = 64 bits
}

// Stats computes index statistics from the stores.
func (p *Pipeline) Stats(ctx context.Context) (*IndexStats, error) {
	stats := &IndexStats{
		ParserVersion: ParserVersion,
		IndexVersion:  p.indexVersion,
	}

	var err error
	if stats.Notes, err = p.noteRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}
	if stats.Headlines, err = p.headlineRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count headlines: %w", err)
	}
	if stats.Keywords, err = p.headlineRepo.CountByKeyword(ctx); err != nil {
		return nil, fmt.Errorf("failed to count keywords: %w", err)
	}
	if stats.TopTags, err = p.headlineRepo.CountByTag(ctx, topTagLimit); err != nil {
		return nil, fmt.Errorf("failed to count tags: %w", err)
	}
	if stats.Archived, err = p.headlineRepo.CountWithTag(ctx, "ARCHIVE"); err != nil {
		return nil, fmt.Errorf("failed to count archived headlines: %w", err)
	}

	return stats, nil
}
