package org

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Title is a parsed headline together with the planning line and properties
// drawer that follow it.
//
// String fields returned by ParseTitle share memory with the parsed input.
// Call Detach before keeping a Title around longer than the input buffer.
type Title struct {
	// Level is the number of leading stars; always positive.
	Level int
	// Keyword is the todo/done state, empty when absent.
	Keyword string
	// Priority is the cookie letter ('A'..'Z'), zero when absent.
	Priority rune
	// Tags are listed left to right as written, duplicates included.
	Tags []string
	// Raw is the title text without keyword, priority cookie and tags.
	Raw string
	// Planning is nil when no planning line follows the headline.
	Planning *Planning
	// Properties holds the PROPERTIES drawer entries. Never nil after ParseTitle.
	Properties map[string]string
}

// ParseTitle parses a headline starting at its marker run, followed by an
// optional planning line and an optional properties drawer. It returns the
// unconsumed input, the title, and the raw title substring of input.
//
// The only error is ErrNotHeadline, for input that does not start with '*'.
func ParseTitle(input string, cfg ParseConfig) (rest string, t Title, raw string, err error) {
	rest, h, err := parseHeadline(input, cfg)
	if err != nil {
		return input, Title{}, "", err
	}

	t = Title{
		Level:    h.level,
		Keyword:  h.keyword,
		Priority: h.priority,
		Tags:     h.tags,
		Raw:      h.raw,
	}

	rest, t.Planning = optional(rest, ParsePlanning)
	rest, t.Properties = optional(rest, parsePropertiesDrawer)
	if t.Properties == nil {
		t.Properties = make(map[string]string)
	}

	return rest, t, h.raw, nil
}

// optional runs parse on input. On failure it returns input untouched and the
// zero value of T.
func optional[T any](input string, parse func(string) (string, T, error)) (string, T) {
	rest, v, err := parse(input)
	if err != nil {
		var zero T
		return input, zero
	}
	return rest, v
}

// Detach returns a deep copy of t that shares no memory with the parsed input.
func (t Title) Detach() Title {
	d := Title{
		Level:    t.Level,
		Keyword:  strings.Clone(t.Keyword),
		Priority: t.Priority,
		Raw:      strings.Clone(t.Raw),
		Planning: t.Planning.Detach(),
	}
	if t.Tags != nil {
		d.Tags = make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			d.Tags[i] = strings.Clone(tag)
		}
	}
	if t.Properties != nil {
		d.Properties = make(map[string]string, len(t.Properties))
		for k, v := range t.Properties {
			d.Properties[strings.Clone(k)] = strings.Clone(v)
		}
	}
	return d
}

// IsArchived reports whether the headline carries the ARCHIVE tag.
func (t Title) IsArchived() bool {
	return contains(t.Tags, "ARCHIVE")
}

// IsTodo reports whether the keyword belongs to the todo vocabulary of cfg.
func (t Title) IsTodo(cfg ParseConfig) bool {
	return t.Keyword != "" && contains(cfg.TodoKeywords, t.Keyword)
}

// IsDone reports whether the keyword belongs to the done vocabulary of cfg.
func (t Title) IsDone(cfg ParseConfig) bool {
	return t.Keyword != "" && contains(cfg.DoneKeywords, t.Keyword)
}

// PriorityString returns the priority letter, or "" when absent.
func (t Title) PriorityString() string {
	if t.Priority == 0 {
		return ""
	}
	return string(t.Priority)
}

// titleView is the wire form of Title, with the priority as a letter.
type titleView struct {
	Level      int               `json:"level" yaml:"level"`
	Keyword    string            `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Priority   string            `json:"priority,omitempty" yaml:"priority,omitempty"`
	Tags       []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Raw        string            `json:"raw" yaml:"raw"`
	Planning   *Planning         `json:"planning,omitempty" yaml:"planning,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

func (t Title) view() titleView {
	return titleView{
		Level:      t.Level,
		Keyword:    t.Keyword,
		Priority:   t.PriorityString(),
		Tags:       t.Tags,
		Raw:        t.Raw,
		Planning:   t.Planning,
		Properties: t.Properties,
	}
}

// MarshalJSON encodes the priority as a one-letter string.
func (t Title) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.view())
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (t *Title) UnmarshalJSON(data []byte) error {
	var v titleView
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var priority rune
	switch len(v.Priority) {
	case 0:
	case 1:
		priority = rune(v.Priority[0])
	default:
		return fmt.Errorf("invalid priority %q", v.Priority)
	}
	*t = Title{
		Level:      v.Level,
		Keyword:    v.Keyword,
		Priority:   priority,
		Tags:       v.Tags,
		Raw:        v.Raw,
		Planning:   v.Planning,
		Properties: v.Properties,
	}
	if t.Properties == nil {
		t.Properties = make(map[string]string)
	}
	return nil
}

// MarshalYAML encodes the priority as a one-letter string.
func (t Title) MarshalYAML() (interface{}, error) {
	return t.view(), nil
}
