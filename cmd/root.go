/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for madregot.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/madregot/cmd/expand"
	"bennypowers.dev/madregot/cmd/scan"
	"bennypowers.dev/madregot/cmd/version"
	"bennypowers.dev/madregot/cmd/watch"
	"bennypowers.dev/madregot/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "madregot",
	Short: "Extract breakpoint style mappings into runtime classes",
	Long: `madregot scans source files for generateRuntimeClass call literals,
expands each breakpoint-keyed mapping into a flat runtime class string,
and keeps a JSON artifact synchronized with the source tree.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		logger.SetDebug(debug)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("root", "r", ".", "Project root directory")
	rootCmd.PersistentFlags().StringP("out", "o", "", "Artifact destination path (default from config)")
	rootCmd.PersistentFlags().StringP("marker", "m", "", "Recognized call identifier (default from config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	// Flags are also honored as MADREGOT_* environment variables.
	viper.SetEnvPrefix("MADREGOT")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("out", rootCmd.PersistentFlags().Lookup("out"))
	_ = viper.BindPFlag("marker", rootCmd.PersistentFlags().Lookup("marker"))

	rootCmd.AddCommand(scan.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(expand.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
