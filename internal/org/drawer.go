package org

import "strings"

// Drawer is a named block delimited by ":NAME:" and ":END:" lines.
type Drawer struct {
	Name string
	// PostBlank is the number of blank lines consumed after ":END:".
	PostBlank int
}

// ParseDrawer parses a drawer at the start of input. The opening line may be
// indented by spaces or tabs. It returns the text after the drawer and its
// trailing blank lines, the drawer, and the body between the delimiters.
func ParseDrawer(input string) (rest string, d Drawer, body string, err error) {
	next, first := line(input)

	name, ok := drawerName(strings.TrimLeft(first, " \t"))
	if !ok {
		return input, Drawer{}, "", ErrNoDrawer
	}

	for cur := next; cur != ""; {
		after, l := line(cur)
		if strings.EqualFold(strings.TrimSpace(l), ":END:") {
			rest, blank := countBlankLines(after)
			return rest, Drawer{Name: name, PostBlank: blank}, next[:len(next)-len(cur)], nil
		}
		cur = after
	}
	return input, Drawer{}, "", ErrNoDrawer
}

// drawerName matches ":NAME:" followed only by trailing blanks.
func drawerName(l string) (string, bool) {
	if !strings.HasPrefix(l, ":") {
		return "", false
	}
	end := strings.IndexByte(l[1:], ':')
	if end <= 0 {
		return "", false
	}
	name := l[1 : 1+end]
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-' || c == '_') {
			return "", false
		}
	}
	if strings.TrimRight(l[2+end:], " \t") != "" {
		return "", false
	}
	return name, true
}
