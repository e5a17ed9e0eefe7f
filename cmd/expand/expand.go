/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package expand provides the expand command for madregot.
package expand

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/madregot/literal"
	"bennypowers.dev/madregot/style"
)

// Cmd is the expand cobra command. It surfaces the pure expansion
// function on the CLI: the same computation the scanner applies to
// extracted literals, so compile-time and ad-hoc results always agree.
var Cmd = &cobra.Command{
	Use:   "expand [file]",
	Short: "Expand a breakpoint mapping into a runtime class string",
	Long: `Expand a breakpoint-keyed style mapping into its runtime class form.
The mapping is read from the given file, or from stdin when no file is
given, as an object literal or strict JSON:

  echo '{ default: "p-4 bg-white", md: "p-6" }' | madregot expand

prints the expanded mapping including the runtimeClass field.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("class", false, "Print only the flattened class string")
}

func run(cmd *cobra.Command, args []string) error {
	classOnly, _ := cmd.Flags().GetBool("class")

	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("error reading mapping: %w", err)
	}

	mapping, err := literal.Parse(string(data))
	if err != nil {
		return err
	}

	expanded := style.Expand(mapping)

	if classOnly {
		fmt.Fprintln(cmd.OutOrStdout(), expanded.RuntimeClass)
		return nil
	}

	out, err := json.Marshal(expanded)
	if err != nil {
		return fmt.Errorf("error marshaling result: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, out, "", "  "); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
	return nil
}
