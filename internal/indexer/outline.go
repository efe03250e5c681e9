package indexer

import (
	"path/filepath"
	"strings"
	"unicode"

	"orgindex/internal/org"
)

// Headline is one headline of a note as found by OutlineExtractor.
type Headline struct {
	Index int       // Position within the note (starts at 0)
	Line  int       // 1-based line of the headline
	Path  string    // Format: "* Parent > ** Child"
	Title org.Title // Detached from the source buffer
}

// OutlineExtractor finds every headline of an org document.
type OutlineExtractor struct {
	cfg org.ParseConfig
}

// NewOutlineExtractor creates an extractor recognizing the given keyword vocabulary.
func NewOutlineExtractor(cfg org.ParseConfig) *OutlineExtractor {
	return &OutlineExtractor{cfg: cfg}
}

// Config returns the vocabulary the extractor parses with.
func (e *OutlineExtractor) Config() org.ParseConfig {
	return e.cfg
}

type headingInfo struct {
	level int
	text  string
}

// Extract returns the document title and its headlines in document order.
// The title is the #+TITLE keyword, else the first level-1 headline, else
// derived from filename.
func (e *OutlineExtractor) Extract(content []byte, filename string) (title string, headlines []Headline, err error) {
	doc := string(content)
	headlines = []Headline{}

	var keywordTitle, firstTopLevel string
	var stack []headingInfo

	lineNo := 1
	for pos := 0; pos < len(doc); {
		end := strings.IndexByte(doc[pos:], '\n')
		next := len(doc)
		if end >= 0 {
			next = pos + end + 1
		}
		l := doc[pos:next]

		if !isHeadlineStart(l) {
			if keywordTitle == "" {
				keywordTitle = titleKeyword(l)
			}
			lineNo++
			pos = next
			continue
		}

		// A headline owns the text up to the next headline line, so an
		// unterminated drawer cannot swallow the headlines after it.
		section := doc[pos:nextHeadline(doc, next)]
		rest, t, _, err := org.ParseTitle(section, e.cfg)
		if err != nil {
			return "", nil, err
		}
		t = t.Detach()

		for len(stack) > 0 && stack[len(stack)-1].level >= t.Level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, headingInfo{level: t.Level, text: strings.Repeat("*", t.Level) + " " + t.Raw})

		if t.Level == 1 && firstTopLevel == "" {
			firstTopLevel = t.Raw
		}

		headlines = append(headlines, Headline{
			Index: len(headlines),
			Line:  lineNo,
			Path:  buildHeadingPath(stack),
			Title: t,
		})

		// Resume at the start of the line holding rest, never inside the
		// headline line itself.
		resume := pos + len(section) - len(rest)
		if resume < len(doc) {
			resume = strings.LastIndexByte(doc[:resume], '\n') + 1
		}
		if resume < next {
			resume = next
		}
		lineNo += strings.Count(doc[pos:resume], "\n")
		pos = resume
	}

	switch {
	case keywordTitle != "":
		title = keywordTitle
	case firstTopLevel != "":
		title = firstTopLevel
	default:
		title = extractTitleFromFilename(filename)
	}

	return title, headlines, nil
}

// nextHeadline returns the offset of the first headline line at or after
// from, or len(doc) when there is none. from must be a line start.
func nextHeadline(doc string, from int) int {
	for pos := from; pos < len(doc); {
		end := strings.IndexByte(doc[pos:], '\n')
		if end < 0 {
			if isHeadlineStart(doc[pos:]) {
				return pos
			}
			break
		}
		if isHeadlineStart(doc[pos : pos+end+1]) {
			return pos
		}
		pos += end + 1
	}
	return len(doc)
}

// isHeadlineStart reports whether a line opens a headline: a run of stars
// followed by a space, a tab or the end of the line.
func isHeadlineStart(l string) bool {
	stars := len(l) - len(strings.TrimLeft(l, "*"))
	if stars == 0 {
		return false
	}
	if stars == len(l) {
		return true
	}
	switch l[stars] {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// titleKeyword returns the value of a "#+TITLE:" line, "" otherwise.
func titleKeyword(l string) string {
	l = strings.TrimSpace(l)
	const prefix = "#+title:"
	if len(l) < len(prefix) || !strings.EqualFold(l[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(l[len(prefix):])
}

func buildHeadingPath(stack []headingInfo) string {
	parts := make([]string, len(stack))
	for i, h := range stack {
		parts[i] = h.text
	}
	return strings.Join(parts, " > ")
}

// extractTitleFromFilename extracts title from filename by removing extension and capitalizing words.
func extractTitleFromFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
