/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package hash_test

import (
	"strings"
	"testing"

	"bennypowers.dev/madregot/hash"
)

func TestSum_Deterministic(t *testing.T) {
	content := []byte("generateRuntimeClass({ default: 'p-4' })")
	if hash.Sum(content) != hash.Sum(content) {
		t.Error("equal content produced different fingerprints")
	}
}

func TestSum_DiffersOnAnyByteChange(t *testing.T) {
	a := hash.Sum([]byte("const a = 1"))
	b := hash.Sum([]byte("const a = 2"))
	if a == b {
		t.Errorf("distinct content produced equal fingerprint %q", a)
	}
}

func TestSum_Format(t *testing.T) {
	fp := hash.Sum([]byte("x"))
	if len(fp) != 16 {
		t.Errorf("fingerprint length = %d, want 16", len(fp))
	}
	if strings.Trim(fp, "0123456789abcdef") != "" {
		t.Errorf("fingerprint %q is not lowercase hex", fp)
	}
}

func TestSum_EmptyContent(t *testing.T) {
	if hash.Sum(nil) != hash.Sum([]byte{}) {
		t.Error("nil and empty content should fingerprint identically")
	}
}
