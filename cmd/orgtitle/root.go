package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"orgindex/internal/org"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose bool
	todo    []string
	done    []string
}

// newRootCmd builds the command tree. A fresh tree per call keeps flag state
// out of package globals.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "orgtitle",
		Short: "Parse org-mode headlines",
		Long: `orgtitle parses org-mode headlines into their level, todo keyword,
priority, title text, tags, planning line and properties drawer.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}

			handlerOpts := &slog.HandlerOptions{
				Level: level,
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), handlerOpts))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringSliceVar(&opts.todo, "todo", []string{"TODO"}, "Todo keywords (comma separated, empty disables)")
	cmd.PersistentFlags().StringSliceVar(&opts.done, "done", []string{"DONE"}, "Done keywords (comma separated, empty disables)")

	cmd.AddCommand(newTitleCmd(opts))
	cmd.AddCommand(newScanCmd(opts))
	return cmd
}

// parseConfig returns the keyword vocabulary selected by the flags.
func (o *rootOptions) parseConfig() org.ParseConfig {
	return org.ParseConfig{
		TodoKeywords: nonEmpty(o.todo),
		DoneKeywords: nonEmpty(o.done),
	}
}

func nonEmpty(words []string) []string {
	out := []string{}
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// encode writes v as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// readInput returns the single argument, or all of stdin when there is none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no headline given: pass it as an argument or on stdin")
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
