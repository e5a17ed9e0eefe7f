/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for madregot.
package config

import (
	"bennypowers.dev/madregot/extract"
)

// DefaultOut is the artifact destination when none is configured.
const DefaultOut = "runtime-classes.json"

// Config represents the madregot configuration.
type Config struct {
	// Include are doublestar patterns selecting source files to scan,
	// relative to the project root.
	Include []string `yaml:"include" json:"include"`

	// Exclude patterns remove matches from Include. Dependency
	// directories are excluded by default.
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Out is the artifact destination path, relative to the project
	// root unless absolute.
	Out string `yaml:"out" json:"out"`

	// Marker overrides the recognized call identifier.
	Marker string `yaml:"marker" json:"marker"`

	// Shape selects the artifact shape: "full" (expanded mappings,
	// the default) or "class" (flattened class strings only).
	Shape string `yaml:"shape" json:"shape"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Include: []string{"**/*.{js,jsx,ts,tsx}"},
		Exclude: []string{"**/node_modules/**", "**/.git/**"},
		Out:     DefaultOut,
		Marker:  extract.DefaultMarker,
		Shape:   "",
	}
}

// Normalize fills unset fields with defaults, so partially-specified
// config files behave predictably.
func (c *Config) Normalize() {
	d := Default()
	if len(c.Include) == 0 {
		c.Include = d.Include
	}
	if len(c.Exclude) == 0 {
		c.Exclude = d.Exclude
	}
	if c.Out == "" {
		c.Out = d.Out
	}
	if c.Marker == "" {
		c.Marker = d.Marker
	}
}
