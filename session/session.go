/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package session drives extraction over a source tree and keeps the
// artifact synchronized.
//
// A Session owns the fingerprint cache and aggregate store for the
// lifetime of one build or watch run. Scan processes a full file list
// and persists once; Update and Remove apply single watcher events and
// persist immediately when the artifact content changed. Events are
// serialized, so a watch session never loses an update to an
// interleaved read-modify-write.
package session

import (
	"fmt"
	"path/filepath"
	"sync"

	"bennypowers.dev/madregot/extract"
	"bennypowers.dev/madregot/fs"
	"bennypowers.dev/madregot/hash"
	"bennypowers.dev/madregot/internal/logger"
	"bennypowers.dev/madregot/literal"
	"bennypowers.dev/madregot/store"
	"bennypowers.dev/madregot/style"
)

// Options configures a Session.
type Options struct {
	// Root is the project root. File identities in the artifact are
	// slash-separated paths relative to it.
	Root string

	// Out is the artifact destination path.
	Out string

	// Marker overrides the recognized call identifier.
	// Empty means extract.DefaultMarker.
	Marker string

	// Shape selects the artifact shape. Empty means store.ShapeFull.
	Shape store.Shape
}

// Session owns one cache and store over a build or watch run.
type Session struct {
	mu        sync.Mutex
	fs        fs.FileSystem
	root      string
	out       string
	extractor extract.Extractor
	cache     *store.Cache
	store     *store.Store
}

// New creates a Session over the given filesystem.
func New(filesystem fs.FileSystem, opts Options) *Session {
	shape := opts.Shape
	if shape == "" {
		shape = store.ShapeFull
	}
	return &Session{
		fs:        filesystem,
		root:      opts.Root,
		out:       opts.Out,
		extractor: extract.Extractor{Marker: opts.Marker},
		cache:     store.NewCache(),
		store:     store.New(shape),
	}
}

// Scan processes every file in files, prunes entries for files no
// longer present, and persists once if anything changed. Per-file
// failures are logged and skipped; only a persist failure is returned.
func (s *Session) Scan(files []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	seen := make(map[string]bool, len(files))
	for _, file := range files {
		identity := s.identity(file)
		seen[identity] = true
		if s.processLocked(identity, file) {
			changed = true
		}
	}

	for _, identity := range s.store.Retain(seen) {
		s.cache.Forget(identity)
		logger.Debug("pruned %s", identity)
		changed = true
	}

	if !changed {
		return nil
	}
	return s.persistLocked()
}

// Update applies a single changed-file notification: the file is
// re-read, and the artifact is persisted immediately when its content
// changed. A read failure is logged and skipped, matching Scan.
func (s *Session) Update(file string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.processLocked(s.identity(file), file) {
		return nil
	}
	return s.persistLocked()
}

// Remove drops the entry for a deleted file and persists when the
// file was contributing to the artifact.
func (s *Session) Remove(file string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity := s.identity(file)
	s.cache.Forget(identity)
	if !s.store.Update(identity, nil) {
		return nil
	}
	return s.persistLocked()
}

// Result returns the stored result for a file, for callers that want
// to inspect the session after a pass.
func (s *Session) Result(file string) (*style.Expanded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(s.identity(file))
}

// Len returns the number of files currently contributing to the
// artifact.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// processLocked runs the per-file pipeline: read, fingerprint, consult
// the cache, extract, parse, expand, update the store. It reports
// whether the store's visible content changed. Callers hold s.mu.
func (s *Session) processLocked(identity, file string) bool {
	data, err := s.fs.ReadFile(file)
	if err != nil {
		// No fingerprint commit: the file reprocesses on the next pass.
		logger.Warn("skipping %s: %v", identity, err)
		return false
	}

	fingerprint := hash.Sum(data)
	if !s.cache.ShouldProcess(identity, fingerprint) {
		return false
	}

	var result *style.Expanded
	if raw, ok := s.extractor.Extract(string(data)); ok {
		mapping, err := literal.Parse(raw)
		if err != nil {
			// Malformed literal: keep any prior entry until a
			// well-formed version is seen, and don't commit the
			// fingerprint so the file stays eligible.
			logger.Warn("%s: %v", identity, err)
			return false
		}
		expanded := style.Expand(mapping)
		result = &expanded
	}

	changed := s.store.Update(identity, result)
	s.cache.Commit(identity, fingerprint)
	return changed
}

func (s *Session) persistLocked() error {
	if err := s.store.Persist(s.fs, s.out); err != nil {
		return fmt.Errorf("persist %s: %w", s.out, err)
	}
	logger.Debug("wrote %s (%d files)", s.out, s.store.Len())
	return nil
}

// identity canonicalizes a file path into the artifact key: the
// slash-separated path relative to the session root.
func (s *Session) identity(file string) string {
	if s.root != "" {
		if rel, err := filepath.Rel(s.root, file); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(file)
}
