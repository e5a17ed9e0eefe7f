/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	madfs "bennypowers.dev/madregot/fs"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "madregot"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// skipDirectories are never descended into during discovery,
// independent of exclude patterns.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// Load searches for .config/madregot.{yaml,yml,json} from rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem madfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := &Config{}
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case ".json":
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}

		cfg.Normalize()
		return cfg, nil
	}

	return nil, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(filesystem madfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// DiscoverFiles walks rootDir and returns every file matching an
// Include pattern and no Exclude pattern. Returned paths are joined
// with rootDir, suitable for reading directly.
func (c *Config) DiscoverFiles(filesystem madfs.FileSystem, rootDir string) ([]string, error) {
	var matches []string

	err := fs.WalkDir(filesystem, rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if skipDirectories[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		rel := relSlash(rootDir, p)
		if matchesAny(c.Exclude, rel) {
			return nil
		}
		if matchesAny(c.Include, rel) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// Matches reports whether a single path (relative to the project
// root, slash-separated) is selected by this config. Watch sessions
// use it to filter change events.
func (c *Config) Matches(rel string) bool {
	rel = path.Clean(filepath.ToSlash(rel))
	return !matchesAny(c.Exclude, rel) && matchesAny(c.Include, rel)
}

// matchesAny reports whether rel matches any doublestar pattern.
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// relSlash converts p into a slash-separated path relative to rootDir.
func relSlash(rootDir, p string) string {
	if rel, err := filepath.Rel(rootDir, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(p)
}
