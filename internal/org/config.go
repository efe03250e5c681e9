package org

// ParseConfig holds the keyword vocabulary used to recognize headline states.
// It is read-only during parsing and can be shared between goroutines.
type ParseConfig struct {
	TodoKeywords []string
	DoneKeywords []string
}

// DefaultParseConfig returns the stock vocabulary: TODO and DONE.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{
		TodoKeywords: []string{"TODO"},
		DoneKeywords: []string{"DONE"},
	}
}

// IsKeyword reports whether word is an exact, case-sensitive member of either
// vocabulary. Empty vocabularies never match.
func IsKeyword(word string, todo, done []string) bool {
	return contains(todo, word) || contains(done, word)
}

func contains(list []string, word string) bool {
	for _, s := range list {
		if s == word {
			return true
		}
	}
	return false
}
