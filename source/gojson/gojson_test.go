package gojson_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/chatskema/internal/engine"
	"github.com/reoring/chatskema/source/gojson"
	"github.com/reoring/chatskema/wire"
)

func TestTokens_KeysAndValues(t *testing.T) {
	src := gojson.NewBytes([]byte(`{"a":"b","n":12,"l":[null,false]}`))
	var kinds []eng.Kind
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindNumber,
		eng.KindKey, eng.KindBeginArray, eng.KindNull, eng.KindBool, eng.KindEndArray,
		eng.KindEndObject,
	}, kinds)
}

func TestBuildTree_PreservesLargeIntegers(t *testing.T) {
	v, err := eng.BuildTree(gojson.NewBytes([]byte(`{"id":123456789012345678,"s":"x"}`)), eng.ExactNumbers)
	require.NoError(t, err)
	o := v.(*wire.Object)
	id, _ := o.Get("id")
	assert.Equal(t, wire.Number("123456789012345678"), id)
	assert.Equal(t, []string{"id", "s"}, o.Keys())
}

func TestBuildTree_Malformed(t *testing.T) {
	_, err := eng.BuildTree(gojson.NewBytes([]byte(`{"a":`)), eng.ExactNumbers)
	assert.Error(t, err)
}
