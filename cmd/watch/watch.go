/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package watch provides the watch command for madregot.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/madregot/config"
	"bennypowers.dev/madregot/fs"
	"bennypowers.dev/madregot/internal/logger"
	"bennypowers.dev/madregot/session"
	"bennypowers.dev/madregot/store"
	"bennypowers.dev/madregot/watch"
)

// Cmd is the watch cobra command.
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source tree and keep the artifact synchronized",
	Long: `Run an initial scan, then watch the source tree for changes.
Each changed file is re-extracted and the artifact is rewritten
whenever its content changes. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Duration("debounce", 0, "Quiet period before applying coalesced events")
}

func run(cmd *cobra.Command, args []string) error {
	debounce, _ := cmd.Flags().GetDuration("debounce")

	filesystem := fs.NewOSFileSystem()
	root := viper.GetString("root")

	cfg := config.LoadOrDefault(filesystem, root)
	if out := viper.GetString("out"); out != "" {
		cfg.Out = out
	}
	if marker := viper.GetString("marker"); marker != "" {
		cfg.Marker = marker
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

	// Initial full pass before watching, so the artifact starts
	// complete.
	files, err := cfg.DiscoverFiles(filesystem, root)
	if err != nil {
		return fmt.Errorf("error discovering files: %w", err)
	}
	if err := sess.Scan(files); err != nil {
		return err
	}
	logger.Info("initial scan complete: %d files contributing", sess.Len())

	watcher, err := watch.New(watch.Config{
		BaseDir:  root,
		Patterns: cfg.Include,
		Ignore:   cfg.Exclude,
		Debounce: debounce,
		OnEvent: func(ctx context.Context, changed, removed []string) error {
			// Events apply one file at a time; the session serializes
			// them against its store.
			for _, rel := range changed {
				if err := sess.Update(filepath.Join(root, rel)); err != nil {
					return err
				}
			}
			for _, rel := range removed {
				if err := sess.Remove(filepath.Join(root, rel)); err != nil {
					return err
				}
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	defer watcher.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("watching %s", root)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// outPath anchors a relative destination at the project root.
func outPath(root, out string) string {
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(root, out)
}
