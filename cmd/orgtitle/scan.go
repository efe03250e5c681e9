package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"orgindex/internal/indexer"
	"orgindex/internal/org"
)

// scanItem is one headline found by the scan command.
type scanItem struct {
	File  string    `json:"file" yaml:"file"`
	Line  int       `json:"line" yaml:"line"`
	Path  string    `json:"path" yaml:"path"`
	Title org.Title `json:"title" yaml:"title"`
}

type scanOptions struct {
	format   string
	tag      string
	archived bool
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	scanOpts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan <glob>...",
		Short: "List the headlines of matching org files",
		Long: `Expand each glob (** matches any number of directories) and print every
headline of the matching files. Headlines tagged ARCHIVE are skipped unless
--archived is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch scanOpts.format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unsupported format %q (want text, json or yaml)", scanOpts.format)
			}

			files, err := expandGlobs(args)
			if err != nil {
				return err
			}
			slog.Debug("expanded globs", "patterns", args, "files", len(files))

			items, err := scanFiles(files, indexer.NewOutlineExtractor(opts.parseConfig()), scanOpts)
			if err != nil {
				return err
			}

			if scanOpts.format == "text" {
				return writeText(cmd.OutOrStdout(), items)
			}
			return encode(cmd.OutOrStdout(), scanOpts.format, items)
		},
	}

	cmd.Flags().StringVarP(&scanOpts.format, "format", "f", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&scanOpts.tag, "tag", "", "Only print headlines carrying this tag")
	cmd.Flags().BoolVar(&scanOpts.archived, "archived", false, "Include headlines tagged ARCHIVE")
	return cmd
}

// expandGlobs resolves the patterns to a sorted, de-duplicated list of files.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid glob %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func scanFiles(files []string, extractor *indexer.OutlineExtractor, opts *scanOptions) ([]scanItem, error) {
	items := []scanItem{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		_, headlines, err := extractor.Extract(content, filepath.Base(file))
		if err != nil {
			return nil, fmt.Errorf("failed to extract headlines from %s: %w", file, err)
		}

		for _, hl := range headlines {
			if !opts.archived && hl.Title.IsArchived() {
				continue
			}
			if opts.tag != "" && !slices.Contains(hl.Title.Tags, opts.tag) {
				continue
			}
			items = append(items, scanItem{
				File:  filepath.ToSlash(file),
				Line:  hl.Line,
				Path:  hl.Path,
				Title: hl.Title,
			})
		}
	}
	return items, nil
}

func writeText(w io.Writer, items []scanItem) error {
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%s:%d: %s\n", item.File, item.Line, formatHeadline(item.Title)); err != nil {
			return err
		}
	}
	return nil
}

// formatHeadline renders the first line of a headline in org syntax.
func formatHeadline(t org.Title) string {
	parts := []string{strings.Repeat("*", t.Level)}
	if t.Keyword != "" {
		parts = append(parts, t.Keyword)
	}
	if p := t.PriorityString(); p != "" {
		parts = append(parts, "[#"+p+"]")
	}
	if t.Raw != "" {
		parts = append(parts, t.Raw)
	}
	if len(t.Tags) > 0 {
		parts = append(parts, ":"+strings.Join(t.Tags, ":")+":")
	}
	return strings.Join(parts, " ")
}
