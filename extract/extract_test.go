/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package extract_test

import (
	"testing"

	"bennypowers.dev/madregot/extract"
)

func TestExtract_Basic(t *testing.T) {
	src := `
import { generateRuntimeClass } from "madregot";

const classes = generateRuntimeClass({
  default: "p-4 bg-white",
  md: "p-6",
});
`
	lit, ok := extract.Extract(src)
	if !ok {
		t.Fatal("expected a literal")
	}
	want := `{
  default: "p-4 bg-white",
  md: "p-6",
}`
	if lit != want {
		t.Errorf("literal = %q, want %q", lit, want)
	}
}

func TestExtract_Absent(t *testing.T) {
	if _, ok := extract.Extract(`const x = otherCall({ a: "b" })`); ok {
		t.Error("expected no literal")
	}
}

func TestExtract_WordBoundary(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"suffixed identifier", `generateRuntimeClassName({ default: "x" })`},
		{"prefixed identifier", `myGenerateRuntimeClass({ default: "x" })`},
		{"underscore prefix", `_generateRuntimeClass({ default: "x" })`},
		{"dollar suffix", `generateRuntimeClass$({ default: "x" })`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if lit, ok := extract.Extract(tc.src); ok {
				t.Errorf("matched inside a longer identifier: %q", lit)
			}
		})
	}
}

func TestExtract_BoundaryButValidLater(t *testing.T) {
	src := `
// generateRuntimeClassName is the legacy helper
const c = generateRuntimeClass({ default: "x" })
`
	lit, ok := extract.Extract(src)
	if !ok {
		t.Fatal("expected the real call to match")
	}
	if lit != `{ default: "x" }` {
		t.Errorf("literal = %q", lit)
	}
}

func TestExtract_NestedBracesInTemplate(t *testing.T) {
	src := "const c = generateRuntimeClass({ default: `w-[${size}px] h-{2}`, sm: \"x\" })"
	lit, ok := extract.Extract(src)
	if !ok {
		t.Fatal("expected a literal")
	}
	want := "{ default: `w-[${size}px] h-{2}`, sm: \"x\" }"
	if lit != want {
		t.Errorf("literal = %q, want %q", lit, want)
	}
}

func TestExtract_BracesInsideQuotedValues(t *testing.T) {
	src := `generateRuntimeClass({ default: "before:content-['{']", sm: 'a}b' })`
	lit, ok := extract.Extract(src)
	if !ok {
		t.Fatal("expected a literal")
	}
	want := `{ default: "before:content-['{']", sm: 'a}b' }`
	if lit != want {
		t.Errorf("literal = %q, want %q", lit, want)
	}
}

func TestExtract_EscapedQuoteInValue(t *testing.T) {
	src := `generateRuntimeClass({ default: 'it\'s }fine' })`
	lit, ok := extract.Extract(src)
	if !ok {
		t.Fatal("expected a literal")
	}
	want := `{ default: 'it\'s }fine' }`
	if lit != want {
		t.Errorf("literal = %q, want %q", lit, want)
	}
}

func TestExtract_FirstWins(t *testing.T) {
	src := `
const a = generateRuntimeClass({ default: "first" });
const b = generateRuntimeClass({ default: "second" });
`
	lit, ok := extract.Extract(src)
	if !ok {
		t.Fatal("expected a literal")
	}
	if lit != `{ default: "first" }` {
		t.Errorf("literal = %q, want the first call's literal", lit)
	}
}

func TestExtract_WhitespaceAroundCall(t *testing.T) {
	src := "generateRuntimeClass (\n  { default: \"x\" }\n)"
	lit, ok := extract.Extract(src)
	if !ok {
		t.Fatal("expected a literal")
	}
	if lit != `{ default: "x" }` {
		t.Errorf("literal = %q", lit)
	}
}

func TestExtract_MarkerWithoutCall(t *testing.T) {
	src := `import { generateRuntimeClass } from "madregot";`
	if _, ok := extract.Extract(src); ok {
		t.Error("bare import reference should not match")
	}
}

func TestExtract_UnterminatedLiteral(t *testing.T) {
	src := `generateRuntimeClass({ default: "x"`
	if _, ok := extract.Extract(src); ok {
		t.Error("unterminated literal should not match")
	}
}

func TestExtract_NonLiteralArgument(t *testing.T) {
	src := `generateRuntimeClass(someMapping)`
	if _, ok := extract.Extract(src); ok {
		t.Error("non-literal argument should not match")
	}
}

func TestExtractor_CustomMarker(t *testing.T) {
	e := extract.Extractor{Marker: "rc"}
	src := `const c = rc({ default: "x" })`
	lit, ok := e.Extract(src)
	if !ok {
		t.Fatal("expected a literal")
	}
	if lit != `{ default: "x" }` {
		t.Errorf("literal = %q", lit)
	}
	if _, ok := e.Extract(`generateRuntimeClass({ default: "x" })`); ok {
		t.Error("custom marker should not match the default identifier")
	}
}
