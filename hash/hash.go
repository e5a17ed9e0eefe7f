/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package hash provides content fingerprints for change detection.
package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Sum returns a 16-hex-digit fingerprint of data. Equal content always
// produces an equal fingerprint; the digest is xxhash64, chosen for
// speed over cryptographic strength since fingerprints only gate
// reprocessing.
func Sum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
