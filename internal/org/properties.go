package org

import (
	"strings"
	"unicode"
)

// parsePropertiesDrawer parses a PROPERTIES drawer, allowing leading blank
// lines and indentation. Any other drawer yields ErrTagMismatch.
func parsePropertiesDrawer(input string) (string, map[string]string, error) {
	rest, drawer, body, err := ParseDrawer(strings.TrimLeftFunc(input, unicode.IsSpace))
	if err != nil {
		return input, nil, err
	}
	if drawer.Name != "PROPERTIES" {
		return input, nil, ErrTagMismatch
	}

	props := make(map[string]string)
	for {
		next, name, value, ok := parseNodeProperty(body)
		if !ok {
			break
		}
		props[name] = value
		body = next
	}
	return rest, props, nil
}

// parseNodeProperty parses one ":NAME: value" line. A trailing '+' on the
// name is dropped.
func parseNodeProperty(input string) (rest, name, value string, ok bool) {
	s := strings.TrimLeftFunc(skipEmptyLines(input), unicode.IsSpace)
	if !strings.HasPrefix(s, ":") {
		return input, "", "", false
	}

	end := strings.IndexByte(s[1:], ':')
	if end < 0 {
		return input, "", "", false
	}
	name = s[1 : 1+end]
	if strings.ContainsAny(name, "\r\n") {
		return input, "", "", false
	}

	rest, value = line(s[2+end:])
	return rest, strings.TrimRight(name, "+"), strings.TrimSpace(value), true
}
