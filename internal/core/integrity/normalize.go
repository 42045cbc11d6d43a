// Package integrity contains the pure business logic for keeping the case ledger consistent.
// This is part of the Functional Core - no I/O, only pure functions.
package integrity

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// fullWidthSlash is the CJK full-width solidus, common when dockets are pasted from court PDFs.
const fullWidthSlash = '\uFF0F'

// NormalizeDocket maps a hand-entered docket number to the key used for duplicate detection.
// The key is never displayed. An empty key means the case is unkeyed and is never grouped.
//
// Steps, in order:
//  1. Unicode NFC
//  2. non-breaking and other Unicode spaces become ' ', full-width slash becomes '/'
//  3. whitespace runs collapse to a single space
//  4. leading/trailing whitespace is trimmed
//  5. spaces around '/' are removed
func NormalizeDocket(raw string) string {
	if raw == "" {
		return ""
	}

	s := norm.NFC.String(raw)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == fullWidthSlash:
			return '/'
		case unicode.IsSpace(r), unicode.Is(unicode.Zs, r):
			return ' '
		}
		return r
	}, s)

	// Fields splits on runs and drops the ends, covering steps 3 and 4
	s = strings.Join(strings.Fields(s), " ")

	// Runs are already single spaces here
	s = strings.ReplaceAll(s, " /", "/")
	s = strings.ReplaceAll(s, "/ ", "/")

	return s
}
