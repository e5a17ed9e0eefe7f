/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package style provides breakpoint-keyed style mappings and their
// expansion into flat runtime class strings.
package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultKey is the distinguished breakpoint whose tokens are emitted
// without a prefix.
const DefaultKey = "default"

// RuntimeClassField is the synthesized key carrying the flattened,
// fully-expanded class string in serialized results.
const RuntimeClassField = "runtimeClass"

// Entry is one breakpoint/value pair in a Mapping.
type Entry struct {
	// Key is the breakpoint name (e.g., "default", "sm", "md").
	Key string
	// Value is the raw space-separated style string for that breakpoint.
	Value string
}

// Mapping is an ordered breakpoint-to-style-string mapping.
// Insertion order is preserved and determines expansion order.
type Mapping struct {
	entries []Entry
}

// Set records value under key, replacing an existing entry in place or
// appending a new one.
func (m *Mapping) Set(key, value string) {
	for i := range m.entries {
		if m.entries[i].Key == key {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value for key and whether it exists.
func (m *Mapping) Get(key string) (string, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Has reports whether key exists in the mapping.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Entries returns the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	return m.entries
}

// Keys returns the breakpoint keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Equal reports whether two mappings have identical entries in
// identical order.
func (m *Mapping) Equal(o *Mapping) bool {
	if len(m.entries) != len(o.entries) {
		return false
	}
	for i, e := range m.entries {
		if o.entries[i] != e {
			return false
		}
	}
	return true
}

// Expanded is the result of expanding a Mapping: the original entries
// plus the flattened runtime class string derived from them.
type Expanded struct {
	// Mapping holds the original breakpoint entries, unmodified.
	Mapping Mapping
	// RuntimeClass is the space-joined expansion of every breakpoint,
	// in mapping order then token order.
	RuntimeClass string
}

// Expand derives the runtime class string from a mapping. Each value is
// split on whitespace; tokens under DefaultKey are emitted unchanged,
// tokens under any other key are emitted as "key:token". Expand is a
// pure function: equal mappings always produce byte-identical output.
func Expand(m Mapping) Expanded {
	var b strings.Builder
	for _, e := range m.Entries() {
		for _, tok := range strings.Fields(e.Value) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			if e.Key == DefaultKey {
				b.WriteString(tok)
			} else {
				b.WriteString(e.Key)
				b.WriteByte(':')
				b.WriteString(tok)
			}
		}
	}
	return Expanded{Mapping: m, RuntimeClass: b.String()}
}

// Equal reports whether two expanded results are identical.
func (e *Expanded) Equal(o *Expanded) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.RuntimeClass == o.RuntimeClass && e.Mapping.Equal(&o.Mapping)
}

// MarshalJSON serializes the expanded result as a single JSON object:
// every breakpoint entry in mapping order, then the runtimeClass field.
func (e Expanded) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, entry := range e.Mapping.Entries() {
		if err := writeField(&buf, entry.Key, entry.Value); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}
	if err := writeField(&buf, RuntimeClassField, e.RuntimeClass); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores an expanded result serialized by MarshalJSON,
// preserving breakpoint order.
func (e *Expanded) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expanded result must be a JSON object")
	}

	*e = Expanded{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		val, ok := valTok.(string)
		if !ok {
			return fmt.Errorf("value for %q must be a string", key)
		}

		if key == RuntimeClassField {
			e.RuntimeClass = val
		} else {
			e.Mapping.Set(key, val)
		}
	}

	_, err = dec.Token() // closing brace
	return err
}

func writeField(buf *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
