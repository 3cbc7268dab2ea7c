package dsl

import (
	"context"

	chatskema "github.com/reoring/chatskema"
	js "github.com/reoring/chatskema/jsonschema"
)

// Via adapts a Codec[A,B] into a Type[B] that accepts wire A and produces
// domain B.
// Decode: in.decode -> c.Decode. Encode: c.Encode -> in.encode.
// schema overrides the JSON Schema of in when non-nil.
func Via[A, B any](in Type[A], c chatskema.Codec[A, B], schema *js.Schema) Type[B] {
	return viaType[A, B]{in: in, c: c, schema: schema}
}

type viaType[A, B any] struct {
	in     Type[A]
	c      chatskema.Codec[A, B]
	schema *js.Schema
}

func (t viaType[A, B]) expected() string { return t.in.expected() }

func (t viaType[A, B]) validate() error { return validateInner(t.in) }

func (t viaType[A, B]) decode(sc scope, path chatskema.PathRef, v any) (B, chatskema.Issues) {
	var zero B
	a, iss := t.in.decode(sc, path, v)
	if len(iss) > 0 {
		return zero, iss
	}
	b, err := t.c.Decode(sc.ctx, a)
	if err != nil {
		return zero, codecIssues(path, v, err)
	}
	return b, nil
}

func (t viaType[A, B]) encode(ctx context.Context, path chatskema.PathRef, v B) (any, chatskema.Issues) {
	a, err := t.c.Encode(ctx, v)
	if err != nil {
		return nil, codecIssues(path, v, err)
	}
	return t.in.encode(ctx, path, a)
}

func (t viaType[A, B]) jsonSchema() *js.Schema {
	if t.schema != nil {
		cp := *t.schema
		return &cp
	}
	return t.in.jsonSchema()
}

// codecIssues places codec errors at path. Codecs report issues relative to
// the value they convert.
func codecIssues(path chatskema.PathRef, v any, err error) chatskema.Issues {
	if iss, ok := chatskema.AsIssues(err); ok {
		return iss.Rebase(path.String())
	}
	it := path.Issue(chatskema.CodeParseError, v)
	it.Cause = err
	return chatskema.Issues{it}
}
