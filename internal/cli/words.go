package cli

import (
	"errors"
	"strings"
)

var (
	errUnterminatedQuote = errors.New("unterminated quote")
	errTrailingBackslash = errors.New("line ends with a backslash")
)

// splitWords splits a shell line into words the way a POSIX shell would for
// the simple cases: blanks separate words, single quotes keep everything
// literal, and a backslash outside quotes escapes the next character.
// Inside double quotes a backslash only escapes " and \; before any other
// character it is kept. "" yields an empty word.
func splitWords(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			if quote == '"' && r != '"' && r != '\\' {
				current.WriteRune('\\')
			}

			current.WriteRune(r)

			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				current.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inWord = true
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, current.String())
				current.Reset()

				inWord = false
			}
		default:
			current.WriteRune(r)

			inWord = true
		}
	}

	if quote != 0 {
		return nil, errUnterminatedQuote
	}

	if escaped {
		return nil, errTrailingBackslash
	}

	if inWord {
		words = append(words, current.String())
	}

	return words, nil
}
