/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package extract locates marker-call object literals in source text.
//
// The scanner recognizes exactly one fixed call identifier followed by
// a parenthesized object literal, and returns the brace-balanced
// literal text of the first such call in a file. It is a small tagged
// scanner rather than a regular expression so that quoting and escape
// edge cases stay auditable.
package extract

import "strings"

// DefaultMarker is the call identifier recognized when an Extractor
// does not override it.
const DefaultMarker = "generateRuntimeClass"

// Extractor scans source text for invocations of a marker identifier.
// The zero value recognizes DefaultMarker.
type Extractor struct {
	// Marker is the recognized call identifier. Empty means DefaultMarker.
	Marker string
}

// Extract returns the raw object-literal argument of the first marker
// call in src, braces included, and true. When src contains no such
// call it returns "", false. Only the first call is extracted; files
// are specified to contain at most one, and on multiples the first
// wins.
func Extract(src string) (string, bool) {
	return Extractor{}.Extract(src)
}

// Extract implements the scan for e's marker identifier.
func (e Extractor) Extract(src string) (string, bool) {
	marker := e.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	from := 0
	for {
		i := strings.Index(src[from:], marker)
		if i < 0 {
			return "", false
		}
		at := from + i
		from = at + 1

		// The marker must stand alone as an identifier: a longer name
		// containing it (e.g. a prefixed or suffixed variant) is not a
		// marker call.
		if at > 0 && isIdentByte(src[at-1]) {
			continue
		}
		after := at + len(marker)
		if after < len(src) && isIdentByte(src[after]) {
			continue
		}

		lit, ok := literalAt(src, after)
		if ok {
			return lit, true
		}
	}
}

// literalAt expects "(" then an object literal starting at pos
// (whitespace allowed around both) and returns the balanced literal.
func literalAt(src string, pos int) (string, bool) {
	pos = skipSpace(src, pos)
	if pos >= len(src) || src[pos] != '(' {
		return "", false
	}
	pos = skipSpace(src, pos+1)
	if pos >= len(src) || src[pos] != '{' {
		return "", false
	}
	return scanBalanced(src, pos)
}

// Scanner states while matching braces. String states exist so that
// braces and parens inside quoted values never affect nesting depth.
const (
	stateCode = iota
	stateSingle
	stateDouble
	stateTemplate
)

// scanBalanced returns the substring from the opening brace at start
// through its matching close brace.
func scanBalanced(src string, start int) (string, bool) {
	depth := 0
	state := stateCode

	for i := start; i < len(src); i++ {
		c := src[i]

		switch state {
		case stateCode:
			switch c {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return src[start : i+1], true
				}
			case '\'':
				state = stateSingle
			case '"':
				state = stateDouble
			case '`':
				state = stateTemplate
			}
		case stateSingle:
			switch c {
			case '\\':
				i++
			case '\'':
				state = stateCode
			}
		case stateDouble:
			switch c {
			case '\\':
				i++
			case '"':
				state = stateCode
			}
		case stateTemplate:
			switch c {
			case '\\':
				i++
			case '`':
				state = stateCode
			}
		}
	}

	// Ran off the end of the file with an unterminated literal.
	return "", false
}

func skipSpace(src string, pos int) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// isIdentByte reports whether b can appear in a source identifier.
func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
