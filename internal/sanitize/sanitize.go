package sanitize

import (
	"errors"
	"strings"
	"unicode"
)

// DefaultMaxLength is the default title length limit in runes.
const DefaultMaxLength = 200

// ErrEmptyInput is returned when the input is empty after cleaning.
// Callers must reject the submission before any credential or network work.
var ErrEmptyInput = errors.New("input is empty after sanitization")

// Clean normalizes a raw todo title for submission to a remote API.
//
// It trims surrounding whitespace, replaces each run of tabs and
// newlines with a single space, drops all other control characters,
// and truncates the result to maxLength runes. Literal spaces pass
// through untouched: control-free input under the limit comes back
// unchanged apart from the trim at the ends.
//
// A maxLength of zero or below falls back to DefaultMaxLength. Input
// that is empty after cleaning yields ErrEmptyInput.
func Clean(raw string, maxLength int) (string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	var b strings.Builder
	b.Grow(len(raw))

	inControlRun := false
	for _, r := range raw {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			// One space per run of whitespace-like controls
			if !inControlRun {
				b.WriteRune(' ')
				inControlRun = true
			}
		case unicode.IsControl(r):
			// Other C0/C1 controls are dropped entirely
		default:
			b.WriteRune(r)
			inControlRun = false
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return "", ErrEmptyInput
	}

	// Truncate on rune boundaries so multibyte input never splits.
	// No trimming afterwards: over-limit input yields exactly
	// maxLength runes.
	runes := []rune(cleaned)
	if len(runes) > maxLength {
		cleaned = string(runes[:maxLength])
	}

	return cleaned, nil
}
