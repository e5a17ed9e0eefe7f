/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package literal parses loosely-formatted object-literal text into
// style mappings.
//
// Source literals are written in a scripting-language object syntax:
// keys may be bare identifiers, strings may be single-quoted, and a
// trailing comma before the closing brace is allowed. Normalization
// rewrites those forms into strict JSON, then an order-preserving
// decode produces the mapping.
package literal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/jsonc"

	"bennypowers.dev/madregot/style"
)

// ParseError reports an object literal that could not be coerced into
// a flat string-to-string mapping.
type ParseError struct {
	// Key is the mapping key at which parsing failed, when known.
	Key string
	// Message describes what's wrong.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("malformed literal")
	if e.Key != "" {
		sb.WriteString(" at key ")
		sb.WriteString(fmt.Sprintf("%q", e.Key))
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Parse converts raw object-literal text into a Mapping. It fails with
// *ParseError when the text is not a flat object of string values:
// nested objects, arrays, numbers, booleans, duplicate keys, and
// unbalanced quoting are all rejected.
func Parse(raw string) (style.Mapping, error) {
	normalized, err := normalize(raw)
	if err != nil {
		return style.Mapping{}, err
	}

	// jsonc strips comments and trailing commas, leaving strict JSON.
	clean := jsonc.ToJSON([]byte(normalized))

	return decodeOrdered(clean)
}

// decodeOrdered walks the JSON token stream so that key order survives,
// which a plain map unmarshal would destroy.
func decodeOrdered(data []byte) (style.Mapping, error) {
	var m style.Mapping

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return style.Mapping{}, &ParseError{Message: err.Error()}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return style.Mapping{}, &ParseError{Message: "literal is not an object"}
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return style.Mapping{}, &ParseError{Message: err.Error()}
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return style.Mapping{}, &ParseError{Key: key, Message: err.Error()}
		}
		switch v := valTok.(type) {
		case string:
			if m.Has(key) {
				return style.Mapping{}, &ParseError{Key: key, Message: "duplicate key"}
			}
			m.Set(key, v)
		case json.Delim:
			return style.Mapping{}, &ParseError{Key: key, Message: "nested values are not supported"}
		default:
			return style.Mapping{}, &ParseError{Key: key, Message: fmt.Sprintf("value must be a string, got %v", v)}
		}
	}

	if _, err := dec.Token(); err != nil {
		return style.Mapping{}, &ParseError{Message: err.Error()}
	}
	if _, err := dec.Token(); err != io.EOF {
		return style.Mapping{}, &ParseError{Message: "trailing content after literal"}
	}

	return m, nil
}

// normalize rewrites loose literal syntax into JSON: bare identifier
// keys are quoted and single-quoted strings become double-quoted.
// Trailing commas and comments are left for jsonc to strip.
func normalize(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw) + 16)

	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == '\'':
			end, err := convertSingleQuoted(&b, raw, i)
			if err != nil {
				return "", err
			}
			i = end
		case c == '"':
			end, err := copyDoubleQuoted(&b, raw, i)
			if err != nil {
				return "", err
			}
			i = end
		case isIdentStart(c):
			end := i
			for end < len(raw) && isIdentByte(raw[end]) {
				end++
			}
			word := raw[i:end]
			if followedByColon(raw, end) {
				b.WriteByte('"')
				b.WriteString(word)
				b.WriteByte('"')
			} else {
				// A bare word in value position is left as-is; the
				// structural decode rejects it with a clear error.
				b.WriteString(word)
			}
			i = end
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), nil
}

// convertSingleQuoted writes the single-quoted string starting at
// raw[start] as a double-quoted JSON string and returns the index just
// past the closing quote.
func convertSingleQuoted(b *strings.Builder, raw string, start int) (int, error) {
	b.WriteByte('"')
	i := start + 1
	for i < len(raw) {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 >= len(raw) {
				return 0, &ParseError{Message: "unterminated escape in string"}
			}
			next := raw[i+1]
			if next == '\'' {
				// \' is needless once the string is double-quoted.
				b.WriteByte('\'')
			} else {
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i += 2
		case '\'':
			b.WriteByte('"')
			return i + 1, nil
		case '"':
			b.WriteString(`\"`)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return 0, &ParseError{Message: "unbalanced single quote"}
}

// copyDoubleQuoted copies an already-double-quoted string through
// verbatim and returns the index just past the closing quote.
func copyDoubleQuoted(b *strings.Builder, raw string, start int) (int, error) {
	b.WriteByte('"')
	i := start + 1
	for i < len(raw) {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 >= len(raw) {
				return 0, &ParseError{Message: "unterminated escape in string"}
			}
			b.WriteByte(c)
			b.WriteByte(raw[i+1])
			i += 2
		case '"':
			b.WriteByte('"')
			return i + 1, nil
		default:
			b.WriteByte(c)
			i++
		}
	}
	return 0, &ParseError{Message: "unbalanced double quote"}
}

// followedByColon reports whether the next non-space byte at or after
// pos is a colon, marking the preceding word as a key.
func followedByColon(raw string, pos int) bool {
	for pos < len(raw) {
		switch raw[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
