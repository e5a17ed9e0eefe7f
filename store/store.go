/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package store tracks per-file extraction results and persists the
// aggregate artifact.
package store

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/madregot/fs"
	"bennypowers.dev/madregot/style"
)

// Shape selects how each file's result is serialized in the artifact.
type Shape string

const (
	// ShapeFull persists the complete expanded mapping per file.
	ShapeFull Shape = "full"
	// ShapeClass persists only the flattened runtime class string.
	ShapeClass Shape = "class"
)

// ParseShape validates a shape name from configuration.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeFull, ShapeClass:
		return Shape(s), nil
	case "":
		return ShapeFull, nil
	}
	return "", fmt.Errorf("invalid artifact shape %q: expected %q or %q", s, ShapeFull, ShapeClass)
}

// Cache remembers the last committed content fingerprint per file
// identity, deciding whether a file must be (re)processed.
type Cache struct {
	fingerprints map[string]string
}

// NewCache creates an empty fingerprint cache.
func NewCache() *Cache {
	return &Cache{fingerprints: make(map[string]string)}
}

// ShouldProcess reports whether identity must be (re)processed: true
// on first observation and whenever fingerprint differs from the last
// committed one.
func (c *Cache) ShouldProcess(identity, fingerprint string) bool {
	prev, ok := c.fingerprints[identity]
	return !ok || prev != fingerprint
}

// Commit records fingerprint for identity. Call only after the file's
// result actually reached the store, so a failed extraction never
// suppresses a later retry.
func (c *Cache) Commit(identity, fingerprint string) {
	c.fingerprints[identity] = fingerprint
}

// Forget drops the fingerprint for identity, typically because the
// file was removed.
func (c *Cache) Forget(identity string) {
	delete(c.fingerprints, identity)
}

// Store holds the latest expanded result per file identity.
type Store struct {
	shape   Shape
	entries map[string]*style.Expanded
}

// New creates an empty store serializing with the given shape.
func New(shape Shape) *Store {
	return &Store{
		shape:   shape,
		entries: make(map[string]*style.Expanded),
	}
}

// Update sets the entry for identity, or removes it when result is
// nil (the file no longer contains an extractable call). It reports
// whether the store's visible content changed.
func (s *Store) Update(identity string, result *style.Expanded) bool {
	prev, exists := s.entries[identity]

	if result == nil {
		if !exists {
			return false
		}
		delete(s.entries, identity)
		return true
	}

	if exists && prev.Equal(result) {
		return false
	}
	s.entries[identity] = result
	return true
}

// Get returns the stored result for identity.
func (s *Store) Get(identity string) (*style.Expanded, bool) {
	e, ok := s.entries[identity]
	return e, ok
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Retain removes every entry whose identity is not in keep, returning
// the removed identities. A full scan calls this so files deleted
// outright stop contributing to the artifact.
func (s *Store) Retain(keep map[string]bool) []string {
	var removed []string
	for identity := range s.entries {
		if !keep[identity] {
			delete(s.entries, identity)
			removed = append(removed, identity)
		}
	}
	return removed
}

// Marshal serializes the whole store as pretty-printed JSON. Map keys
// sort lexically, so equal content always produces identical bytes.
func (s *Store) Marshal() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.entries))
	for identity, result := range s.entries {
		var (
			raw []byte
			err error
		)
		if s.shape == ShapeClass {
			raw, err = json.Marshal(result.RuntimeClass)
		} else {
			raw, err = json.Marshal(result)
		}
		if err != nil {
			return nil, fmt.Errorf("marshal entry %q: %w", identity, err)
		}
		out[identity] = raw
	}
	return json.MarshalIndent(out, "", "  ")
}

// Persist serializes the entire store to path. The artifact is written
// to a temporary sibling and renamed into place so an external reader
// never observes a truncated write.
func (s *Store) Persist(filesystem fs.FileSystem, path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := filesystem.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := filesystem.Rename(tmp, path); err != nil {
		// Best effort: don't leave the temporary file behind.
		_ = filesystem.Remove(tmp)
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}
