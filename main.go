/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command madregot extracts breakpoint-keyed style mappings from
// source files and keeps a runtime-class artifact synchronized.
package main

import (
	"os"

	"bennypowers.dev/madregot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
