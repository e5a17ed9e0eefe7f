/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package scan provides the scan command for madregot.
package scan

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/madregot/config"
	"bennypowers.dev/madregot/fs"
	"bennypowers.dev/madregot/session"
	"bennypowers.dev/madregot/store"
)

// Cmd is the scan cobra command.
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the source tree and write the artifact",
	Long: `Scan every source file matching the configured include patterns,
extract marker call literals, and write the runtime-class artifact.
Files whose content is unchanged since the last scan in this process
are skipped.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only output errors")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	filesystem := fs.NewOSFileSystem()
	root := viper.GetString("root")

	cfg := config.LoadOrDefault(filesystem, root)
	applyOverrides(cfg)

	files, err := cfg.DiscoverFiles(filesystem, root)
	if err != nil {
		return fmt.Errorf("error discovering files: %w", err)
	}

	shape, err := store.ParseShape(cfg.Shape)
	if err != nil {
		return err
	}

	sess := session.New(filesystem, session.Options{
		Root:   root,
		Out:    outPath(root, cfg.Out),
		Marker: cfg.Marker,
		Shape:  shape,
	})

	if err := sess.Scan(files); err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("Scanned %d files, %d contributing to %s\n", len(files), sess.Len(), cfg.Out)
	}
	return nil
}

// applyOverrides layers flag and environment values over the config
// file.
func applyOverrides(cfg *config.Config) {
	if out := viper.GetString("out"); out != "" {
		cfg.Out = out
	}
	if marker := viper.GetString("marker"); marker != "" {
		cfg.Marker = marker
	}
}

// outPath anchors a relative destination at the project root.
func outPath(root, out string) string {
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(root, out)
}
