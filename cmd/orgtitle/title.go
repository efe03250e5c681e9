package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"orgindex/internal/org"
)

// titleOutput is the printed result of the title command.
type titleOutput struct {
	Title org.Title `json:"title" yaml:"title"`
	Rest  string    `json:"rest,omitempty" yaml:"rest,omitempty"`
}

func newTitleCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "title [text]",
		Short: "Parse one headline",
		Long: `Parse the headline at the start of text, given as an argument or on stdin.
Prints the parsed title and any text left after it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (want json or yaml)", format)
			}

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			cfg := opts.parseConfig()
			rest, title, _, err := org.ParseTitle(text, cfg)
			if err != nil {
				return fmt.Errorf("failed to parse headline: %w", err)
			}
			slog.Debug("parsed headline", "level", title.Level, "keyword", title.Keyword, "tags", title.Tags)

			return encode(cmd.OutOrStdout(), format, titleOutput{Title: title.Detach(), Rest: rest})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}
