package engine

import (
	"fmt"
	"io"
	"strconv"

	"github.com/reoring/chatskema/wire"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// NumberConv turns number text into a wire value.
type NumberConv func(string) (any, error)

// ExactNumbers keeps numbers as wire.Number text.
func ExactNumbers(s string) (any, error) { return wire.Number(s), nil }

// Float64Numbers rounds numbers to float64.
func Float64Numbers(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// BuildTree consumes exactly one JSON value from src and returns it as a wire
// tree. Trailing tokens are an error.
func BuildTree(src TokenSource, conv NumberConv) (any, error) {
	if conv == nil {
		conv = ExactNumbers
	}
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := buildValue(src, tok, conv)
	if err != nil {
		return nil, err
	}
	if extra, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected trailing token at offset %d", extra.Offset)
	}
	return v, nil
}

func buildValue(src TokenSource, tok Token, conv NumberConv) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return buildObject(src, conv)
	case KindBeginArray:
		return buildArray(src, conv)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return conv(tok.Number)
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func buildObject(src TokenSource, conv NumberConv) (any, error) {
	o := wire.NewObject(8)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			return o, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		v, err := buildValue(src, vt, conv)
		if err != nil {
			return nil, err
		}
		o.Set(tok.String, v)
	}
}

func buildArray(src TokenSource, conv NumberConv) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := buildValue(src, tok, conv)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func eofAsUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
