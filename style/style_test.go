/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package style_test

import (
	"encoding/json"
	"testing"

	"bennypowers.dev/madregot/style"
)

func TestExpand_OrderAndPrefixing(t *testing.T) {
	var m style.Mapping
	m.Set("default", "p-4 bg-white")
	m.Set("md", "p-6")
	m.Set("lg", "p-8 bg-gray-100")

	expanded := style.Expand(m)

	want := "p-4 bg-white md:p-6 lg:p-8 lg:bg-gray-100"
	if expanded.RuntimeClass != want {
		t.Errorf("RuntimeClass = %q, want %q", expanded.RuntimeClass, want)
	}
}

func TestExpand_Idempotent(t *testing.T) {
	var m style.Mapping
	m.Set("default", "flex  items-center ")
	m.Set("sm", "hidden")

	first := style.Expand(m)
	second := style.Expand(m)

	if first.RuntimeClass != second.RuntimeClass {
		t.Errorf("expansion not idempotent: %q vs %q", first.RuntimeClass, second.RuntimeClass)
	}
}

func TestExpand_EmptyDefault(t *testing.T) {
	var m style.Mapping
	m.Set("default", "")
	m.Set("sm", "x")

	expanded := style.Expand(m)

	if expanded.RuntimeClass != "sm:x" {
		t.Errorf("RuntimeClass = %q, want %q", expanded.RuntimeClass, "sm:x")
	}
}

func TestExpand_WhitespaceCollapse(t *testing.T) {
	var m style.Mapping
	m.Set("default", "  a   b\tc  ")

	expanded := style.Expand(m)

	if expanded.RuntimeClass != "a b c" {
		t.Errorf("RuntimeClass = %q, want %q", expanded.RuntimeClass, "a b c")
	}
}

func TestExpand_EmptyMapping(t *testing.T) {
	expanded := style.Expand(style.Mapping{})
	if expanded.RuntimeClass != "" {
		t.Errorf("RuntimeClass = %q, want empty", expanded.RuntimeClass)
	}
}

func TestExpand_PreservesOriginalEntries(t *testing.T) {
	var m style.Mapping
	m.Set("default", "p-4")
	m.Set("sm", "p-2")

	expanded := style.Expand(m)

	if got, _ := expanded.Mapping.Get("default"); got != "p-4" {
		t.Errorf("default value = %q, want %q", got, "p-4")
	}
	if got, _ := expanded.Mapping.Get("sm"); got != "p-2" {
		t.Errorf("sm value = %q, want %q", got, "p-2")
	}
}

func TestMapping_SetReplacesInPlace(t *testing.T) {
	var m style.Mapping
	m.Set("default", "a")
	m.Set("sm", "b")
	m.Set("default", "c")

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	keys := m.Keys()
	if keys[0] != "default" || keys[1] != "sm" {
		t.Errorf("Keys = %v, want [default sm]", keys)
	}
	if got, _ := m.Get("default"); got != "c" {
		t.Errorf("default = %q, want %q", got, "c")
	}
}

func TestExpanded_MarshalJSON_Order(t *testing.T) {
	var m style.Mapping
	m.Set("default", "p-4")
	m.Set("md", "p-6")

	data, err := json.Marshal(style.Expand(m))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"default":"p-4","md":"p-6","runtimeClass":"p-4 md:p-6"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestExpanded_JSONRoundTrip(t *testing.T) {
	var m style.Mapping
	m.Set("default", "p-4 bg-white")
	m.Set("lg", "p-8")
	original := style.Expand(m)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var restored style.Expanded
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !restored.Equal(&original) {
		t.Errorf("round trip mismatch: %+v vs %+v", restored, original)
	}
}
