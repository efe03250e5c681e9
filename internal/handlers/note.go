package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"orgindex/internal/contextutil"
	"orgindex/internal/indexer"
	"orgindex/internal/vault"
)

// NoteHandler serves the headline outline of an org file as an HTML page.
type NoteHandler struct {
	vaults    *vault.Manager
	extractor *indexer.OutlineExtractor
	parser    goldmark.Markdown
	template  *template.Template
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title   string
	Vault   string
	RelPath string
	Count   int
	Content template.HTML
}

// NewNoteHandler creates a new handler for serving note outlines.
func NewNoteHandler(vaults *vault.Manager, extractor *indexer.OutlineExtractor) *NoteHandler {
	tmpl := template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} &middot; {{.Vault}}</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 860px; margin: 0 auto; padding: 1.5rem; line-height: 1.6; color: #1f2933; }
    header { border-bottom: 1px solid #d9e2ec; margin-bottom: 1.5rem; }
    .meta { color: #627d98; font-size: 0.9rem; }
    nav ul { padding-left: 1.25rem; }
    strong { color: #b44d12; }
    code { font-family: ui-monospace, monospace; background: #f0f4f8; padding: 0 4px; border-radius: 4px; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.Vault}} / {{.RelPath}} &middot; {{.Count}} headlines</p>
  </header>
  <nav>{{.Content}}</nav>
</body>
</html>`))

	return &NoteHandler{
		vaults:    vaults,
		extractor: extractor,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.TaskList,
				extension.Strikethrough,
				extension.Linkify,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the outline of the requested org file as HTML.
func (h *NoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	rawVault := strings.TrimSpace(chi.URLParam(r, "vault"))
	vaultName, err := url.PathUnescape(rawVault)
	if err != nil {
		http.Error(w, "invalid vault name", http.StatusBadRequest)
		return
	}
	if vaultName == "" {
		http.Error(w, "vault is required", http.StatusBadRequest)
		return
	}

	rawRelPath := chi.URLParam(r, "*")
	decodedRelPath, err := url.PathUnescape(rawRelPath)
	if err != nil {
		http.Error(w, "invalid path encoding", http.StatusBadRequest)
		return
	}

	relPath, err := cleanRelPath(decodedRelPath)
	if err != nil {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	if path.Ext(relPath) != vault.Ext {
		http.Error(w, "not an org file", http.StatusNotFound)
		return
	}

	vaultRecord, err := h.vaults.VaultByName(vaultName)
	if err != nil {
		logger.WarnContext(ctx, "unknown vault requested", "vault", vaultName, "error", err)
		http.Error(w, "vault not found", http.StatusNotFound)
		return
	}

	absPath, err := buildAbsPath(vaultRecord.RootPath, relPath)
	if err != nil {
		logger.WarnContext(ctx, "invalid note path", "vault", vaultName, "rel_path", relPath, "error", err)
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "failed to read note", "path", absPath, "error", err)
		http.Error(w, "failed to read note", http.StatusInternalServerError)
		return
	}

	title, headlines, err := h.extractor.Extract(data, path.Base(relPath))
	if err != nil {
		logger.ErrorContext(ctx, "failed to extract outline", "path", absPath, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}

	htmlContent, err := h.renderMarkdown([]byte(outlineMarkdown(headlines)))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "path", absPath, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}

	pageData := notePageData{
		Title:   title,
		Vault:   vaultRecord.Name,
		RelPath: relPath,
		Count:   len(headlines),
		Content: template.HTML(htmlContent),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "path", absPath, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}
}

func (h *NoteHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", "&lt;", "#", `\#`,
)

// outlineMarkdown renders headlines as a nested Markdown list. Nesting
// follows the open ancestors, so skipped levels do not produce code blocks.
func outlineMarkdown(headlines []indexer.Headline) string {
	if len(headlines) == 0 {
		return "_No headlines._\n"
	}

	var b strings.Builder
	var open []int
	for _, hl := range headlines {
		for len(open) > 0 && open[len(open)-1] >= hl.Title.Level {
			open = open[:len(open)-1]
		}
		b.WriteString(strings.Repeat("  ", len(open)))
		open = append(open, hl.Title.Level)
		b.WriteString("- ")
		if t := hl.Title; t.Keyword != "" {
			b.WriteString("**" + markdownEscaper.Replace(t.Keyword) + "** ")
		}
		if p := hl.Title.PriorityString(); p != "" {
			b.WriteString("`[#" + p + "]` ")
		}
		b.WriteString(escapeLeadingMarker(markdownEscaper.Replace(hl.Title.Raw)))
		for _, tag := range hl.Title.Tags {
			b.WriteString(" `" + strings.ReplaceAll(tag, "`", "") + "`")
		}
		if pl := hl.Title.Planning; pl != nil && pl.Deadline != nil {
			b.WriteString(" _(deadline " + pl.Deadline.Date.Format("2006-01-02") + ")_")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// orderedMarker matches an ordered list marker such as "1." or "12)".
var orderedMarker = regexp.MustCompile(`^[0-9]{1,9}[.)]`)

// escapeLeadingMarker keeps text that starts like a list item or a block
// quote from opening a nested block inside the outline item.
func escapeLeadingMarker(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '-', '+', '>':
		return `\` + s
	}
	if loc := orderedMarker.FindStringIndex(s); loc != nil {
		return s[:loc[1]-1] + `\` + s[loc[1]-1:]
	}
	return s
}

func cleanRelPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("empty path")
	}

	cleaned := path.Clean("/" + trimmed)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", errors.New("invalid path")
	}

	for _, segment := range strings.Split(cleaned, "/") {
		if segment == ".." {
			return "", errors.New("path traversal detected")
		}
	}

	return cleaned, nil
}

func buildAbsPath(root, rel string) (string, error) {
	root = filepath.Clean(root)
	relFS := filepath.FromSlash(rel)
	abs := filepath.Join(root, relFS)

	if !strings.HasPrefix(abs, root+string(os.PathSeparator)) && abs != root {
		return "", errors.New("path escapes vault root")
	}
	return abs, nil
}
