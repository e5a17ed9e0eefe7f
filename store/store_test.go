/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package store_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/madregot/internal/mapfs"
	"bennypowers.dev/madregot/store"
	"bennypowers.dev/madregot/style"
)

func expanded(t *testing.T, pairs ...string) *style.Expanded {
	t.Helper()
	require.Zero(t, len(pairs)%2, "pairs must be key/value")
	var m style.Mapping
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	e := style.Expand(m)
	return &e
}

func TestCache_FirstObservation(t *testing.T) {
	c := store.NewCache()
	assert.True(t, c.ShouldProcess("src/App.tsx", "abc"))
}

func TestCache_CommitThenUnchanged(t *testing.T) {
	c := store.NewCache()
	c.Commit("src/App.tsx", "abc")
	assert.False(t, c.ShouldProcess("src/App.tsx", "abc"))
	assert.True(t, c.ShouldProcess("src/App.tsx", "abd"))
}

func TestCache_Forget(t *testing.T) {
	c := store.NewCache()
	c.Commit("src/App.tsx", "abc")
	c.Forget("src/App.tsx")
	assert.True(t, c.ShouldProcess("src/App.tsx", "abc"))
}

func TestStore_UpdateReportsChange(t *testing.T) {
	s := store.New(store.ShapeFull)

	assert.True(t, s.Update("a.tsx", expanded(t, "default", "p-4")))
	assert.False(t, s.Update("a.tsx", expanded(t, "default", "p-4")), "identical result is not a change")
	assert.True(t, s.Update("a.tsx", expanded(t, "default", "p-6")))
}

func TestStore_NilResultRemoves(t *testing.T) {
	s := store.New(store.ShapeFull)

	assert.False(t, s.Update("a.tsx", nil), "removing an absent entry is not a change")
	s.Update("a.tsx", expanded(t, "default", "p-4"))
	assert.True(t, s.Update("a.tsx", nil))
	assert.Zero(t, s.Len())
}

func TestStore_Retain(t *testing.T) {
	s := store.New(store.ShapeFull)
	s.Update("a.tsx", expanded(t, "default", "a"))
	s.Update("b.tsx", expanded(t, "default", "b"))

	removed := s.Retain(map[string]bool{"a.tsx": true})

	assert.Equal(t, []string{"b.tsx"}, removed)
	assert.Equal(t, 1, s.Len())
}

func TestStore_MarshalRoundTrip_Full(t *testing.T) {
	s := store.New(store.ShapeFull)
	s.Update("src/App.tsx", expanded(t, "default", "p-4 bg-white", "md", "p-6"))
	s.Update("src/Nav.tsx", expanded(t, "default", "flex"))

	data, err := s.Marshal()
	require.NoError(t, err)

	var restored map[string]style.Expanded
	require.NoError(t, json.Unmarshal(data, &restored))

	require.Len(t, restored, 2)
	app := restored["src/App.tsx"]
	got, ok := s.Get("src/App.tsx")
	require.True(t, ok)
	assert.True(t, app.Equal(got), "persisted entry must equal the in-memory one")
	assert.Equal(t, "p-4 bg-white md:p-6", app.RuntimeClass)
}

func TestStore_MarshalRoundTrip_Class(t *testing.T) {
	s := store.New(store.ShapeClass)
	s.Update("src/App.tsx", expanded(t, "default", "p-4", "lg", "p-8"))

	data, err := s.Marshal()
	require.NoError(t, err)

	var restored map[string]string
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, map[string]string{"src/App.tsx": "p-4 lg:p-8"}, restored)
}

func TestStore_MarshalDeterministic(t *testing.T) {
	s := store.New(store.ShapeFull)
	s.Update("b.tsx", expanded(t, "default", "b"))
	s.Update("a.tsx", expanded(t, "default", "a"))

	first, err := s.Marshal()
	require.NoError(t, err)
	second, err := s.Marshal()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStore_PersistAtomic(t *testing.T) {
	mfs := mapfs.New()
	s := store.New(store.ShapeFull)
	s.Update("a.tsx", expanded(t, "default", "p-4"))

	require.NoError(t, s.Persist(mfs, "out/runtime-classes.json"))

	assert.False(t, mfs.Exists("out/runtime-classes.json.tmp"), "temporary file must not remain published")

	data, err := mfs.ReadFile("out/runtime-classes.json")
	require.NoError(t, err)

	var restored map[string]style.Expanded
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, "p-4", restored["a.tsx"].RuntimeClass)
}

func TestParseShape(t *testing.T) {
	cases := []struct {
		in      string
		want    store.Shape
		wantErr bool
	}{
		{"", store.ShapeFull, false},
		{"full", store.ShapeFull, false},
		{"class", store.ShapeClass, false},
		{"compact", "", true},
	}
	for _, tc := range cases {
		got, err := store.ParseShape(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
