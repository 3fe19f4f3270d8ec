package ticket

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length limits enforced by the title and description constructors.
const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 3000
)

// ParseStatus matches text against the status names. Matching ignores case,
// spaces, '-' and '_', so "in-progress", "In Progress" and "InProgress" are
// all StatusInProgress.
func ParseStatus(text string) (Status, error) {
	key := normalizeStatus(text)

	for _, s := range Statuses {
		if key == normalizeStatus(s.String()) {
			return s, nil
		}
	}

	return 0, newParsingError("status", text,
		"invalid status %q (valid: %s)", text, validStatusNames())
}

// ParseTitle builds a Title. The text is kept as given; it must be non-empty
// and at most MaxTitleLength characters.
func ParseTitle(text string) (Title, error) {
	if text == "" {
		return Title{}, newParsingError("title", text, "title cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > MaxTitleLength {
		return Title{}, newParsingError("title", text,
			"title cannot be longer than %d characters (got %d)", MaxTitleLength, n)
	}

	return Title{value: text}, nil
}

// ParseDescription builds a Description. The text is kept as given; it must
// be non-empty and at most MaxDescriptionLength characters.
func ParseDescription(text string) (Description, error) {
	if text == "" {
		return Description{}, newParsingError("description", text, "description cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > MaxDescriptionLength {
		return Description{}, newParsingError("description", text,
			"description cannot be longer than %d characters (got %d)", MaxDescriptionLength, n)
	}

	return Description{value: text}, nil
}

func normalizeStatus(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}

		return r
	}, strings.ToLower(text))
}

func validStatusNames() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = s.String()
	}

	return strings.Join(names, "|")
}

// ParseID checks that text can name a ticket. It does not check that the
// ticket exists.
func ParseID(text string) (ID, error) {
	if text == "" {
		return "", newParsingError("id", text, "ticket id cannot be empty")
	}

	if strings.ContainsFunc(text, unicode.IsSpace) {
		return "", newParsingError("id", text, "invalid ticket id %q", text)
	}

	return ID(text), nil
}
