package org

import "strings"

// line splits off the first physical line. The newline is consumed and a
// trailing carriage return is dropped from the returned line.
func line(input string) (rest, l string) {
	i := strings.IndexByte(input, '\n')
	if i < 0 {
		return "", input
	}
	return input[i+1:], strings.TrimSuffix(input[:i], "\r")
}

// skipEmptyLines drops leading lines that contain only whitespace.
func skipEmptyLines(input string) string {
	rest, _ := countBlankLines(input)
	return rest
}

func countBlankLines(input string) (rest string, n int) {
	for input != "" {
		next, l := line(input)
		if strings.TrimSpace(l) != "" {
			break
		}
		input = next
		n++
	}
	return input, n
}

// space1 consumes one or more spaces or tabs.
func space1(input string) (string, bool) {
	trimmed := strings.TrimLeft(input, " \t")
	return trimmed, len(trimmed) < len(input)
}

// takeOneWord returns the leading run of non-whitespace bytes.
func takeOneWord(input string) (rest, word string) {
	i := strings.IndexFunc(input, isASCIISpace)
	if i < 0 {
		return "", input
	}
	return input[i:], input[:i]
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
