package org

import "strings"

// headline is the result of parsing the first physical line of a headline.
type headline struct {
	level    int
	keyword  string
	priority rune
	raw      string
	tags     []string
}

// parseHeadline parses the marker run, optional keyword, optional priority
// cookie, title text and trailing tag block of a single line. Apart from an
// empty marker run it never fails: anything it cannot recognize stays in the
// title text.
func parseHeadline(input string, cfg ParseConfig) (string, headline, error) {
	var h headline

	h.level = len(input) - len(strings.TrimLeft(input, "*"))
	if h.level == 0 {
		return input, h, ErrNotHeadline
	}
	input = input[h.level:]

	if after, ok := space1(input); ok {
		if rest, word := takeOneWord(after); IsKeyword(word, cfg.TodoKeywords, cfg.DoneKeywords) {
			h.keyword = word
			input = rest
		}
	}

	// The cookie is tried whether or not a keyword was found.
	if after, ok := space1(input); ok {
		if rest, word := takeOneWord(after); isPriorityCookie(word) {
			h.priority = rune(word[2])
			input = rest
		}
	}

	rest, tail := line(input)
	h.raw, h.tags = splitTags(strings.TrimSpace(tail))

	return rest, h, nil
}

// isPriorityCookie matches exactly "[#X]" with X an ASCII uppercase letter.
func isPriorityCookie(word string) bool {
	return len(word) == 4 &&
		strings.HasPrefix(word, "[#") &&
		word[2] >= 'A' && word[2] <= 'Z' &&
		word[3] == ']'
}

// splitTags separates a trailing ":a:b:" block from the title text. The block
// must follow the last space of tail and be wrapped in colons.
func splitTags(tail string) (string, []string) {
	i := strings.LastIndexByte(tail, ' ')
	if i < 0 {
		return tail, nil
	}

	block := tail[i+1:]
	if len(block) <= 2 || block[0] != ':' || block[len(block)-1] != ':' {
		return tail, nil
	}

	var tags []string
	for _, tag := range strings.Split(block, ":") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return strings.TrimSpace(tail[:i]), tags
}
