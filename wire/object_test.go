package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/chatskema/wire"
)

func TestObject_SetKeepsFirstPosition(t *testing.T) {
	o := wire.ObjectOf("b", "1", "a", "2")
	o.Set("b", "3")
	o.Set("c", nil)

	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	v, ok := o.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	v, ok = o.Get("c")
	assert.True(t, ok, "null value is still present")
	assert.Nil(t, v)

	_, ok = o.Get("missing")
	assert.False(t, ok)
}

func TestObject_Delete(t *testing.T) {
	o := wire.ObjectOf("a", true, "b", false, "c", "x")
	o.Delete("b")
	o.Delete("nope")
	assert.Equal(t, []string{"a", "c"}, o.Keys())
	assert.False(t, o.Has("b"))
}

func TestObject_CloneIsDeep(t *testing.T) {
	inner := wire.ObjectOf("x", wire.Number("1"))
	o := wire.ObjectOf("inner", inner, "list", []any{"a"})
	c := o.Clone()
	inner.Set("x", wire.Number("2"))

	got, _ := c.Get("inner")
	x, _ := got.(*wire.Object).Get("x")
	assert.Equal(t, wire.Number("1"), x)
}

func TestMarshal_OrderAndEscaping(t *testing.T) {
	o := wire.ObjectOf(
		"z", "<b>&",
		"a", wire.Number("123456789012345678"),
		"n", nil,
		"arr", []any{true, 1.5, wire.ObjectOf("k", "v")},
	)
	b, err := wire.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"<b>&","a":123456789012345678,"n":null,"arr":[true,1.5,{"k":"v"}]}`, string(b))
}

func TestMarshal_RejectsInvalid(t *testing.T) {
	_, err := wire.Marshal(wire.ObjectOf("n", wire.Number("12abc")))
	assert.Error(t, err)

	_, err = wire.Marshal(map[string]any{"x": 1})
	assert.Error(t, err)
}

func TestMarshalIndent(t *testing.T) {
	b, err := wire.MarshalIndent(wire.ObjectOf("a", []any{"x"}), "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    \"x\"\n  ]\n}", string(b))
}

func TestFromGo_SortsMapKeys(t *testing.T) {
	v, err := wire.FromGo(map[string]any{"b": 1, "a": []any{int64(2), 2.5}})
	require.NoError(t, err)
	o := v.(*wire.Object)
	assert.Equal(t, []string{"a", "b"}, o.Keys())
	a, _ := o.Get("a")
	assert.Equal(t, []any{wire.Number("2"), wire.Number("2.5")}, a)

	_, err = wire.FromGo(struct{}{})
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	assert.True(t, wire.Equal(wire.Number("1.0"), 1.0))
	assert.True(t, wire.Equal(wire.ObjectOf("a", nil), wire.ObjectOf("a", nil)))
	assert.False(t, wire.Equal(wire.ObjectOf("a", 1.0, "b", 2.0), wire.ObjectOf("b", 2.0, "a", 1.0)))
	assert.False(t, wire.Equal(nil, wire.ObjectOf()))
	assert.False(t, wire.Equal([]any{"a"}, []any{"a", "b"}))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, wire.TypeNull, wire.TypeName(nil))
	assert.Equal(t, wire.TypeNumber, wire.TypeName(wire.Number("3")))
	assert.Equal(t, wire.TypeNumber, wire.TypeName(3.0))
	assert.Equal(t, wire.TypeObject, wire.TypeName(wire.ObjectOf()))
	assert.Equal(t, wire.TypeArray, wire.TypeName([]any{}))
	assert.Equal(t, wire.TypeInvalid, wire.TypeName(3))
}
