package yaml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ysrc "github.com/reoring/chatskema/source/yaml"
	"github.com/reoring/chatskema/wire"
)

func TestDecode_OrderedTree(t *testing.T) {
	doc := `
id: "123456789012345678"
count: 3
ratio: 0.5
edited_timestamp: null
pinned: false
tags: [a, b]
author:
  username: alice
`
	v, err := ysrc.Decode([]byte(doc))
	require.NoError(t, err)

	want := wire.ObjectOf(
		"id", "123456789012345678",
		"count", wire.Number("3"),
		"ratio", wire.Number("0.5"),
		"edited_timestamp", nil,
		"pinned", false,
		"tags", []any{"a", "b"},
		"author", wire.ObjectOf("username", "alice"),
	)
	assert.True(t, wire.Equal(want, v), "got %#v", v)
}

func TestDecode_DuplicateKey(t *testing.T) {
	_, err := ysrc.Decode([]byte("a: 1\na: 2\n"))
	require.Error(t, err)
	var dk *ysrc.DuplicateKeyError
	if errors.As(err, &dk) {
		assert.Equal(t, "a", dk.Key)
		assert.Equal(t, 2, dk.Line)
	}
}

func TestDecodeWith_Options(t *testing.T) {
	var dups []string
	v, err := ysrc.DecodeWith([]byte("a: 1\nb: 2.5\na: 3\n"), ysrc.Options{
		OnDuplicate: func(e *ysrc.DuplicateKeyError) { dups = append(dups, e.Key) },
		Float64:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, dups)

	_, err = ysrc.Decode([]byte("embeds:\n  - title: x\n    title: y\n"))
	var dk *ysrc.DuplicateKeyError
	require.ErrorAs(t, err, &dk)
	assert.Equal(t, "embeds[0].title", dk.Path)
	assert.True(t, wire.Equal(wire.ObjectOf("a", 3.0, "b", 2.5), v), "got %#v", v)
	obj := v.(*wire.Object)
	got, _ := obj.Get("a")
	assert.IsType(t, float64(0), got)
}

func TestReader_MultiDocument(t *testing.T) {
	r := ysrc.NewReader(strings.NewReader("a: 1\n---\nb: 2\n"))
	docs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, []string{"b"}, docs[1].(*wire.Object).Keys())
}
