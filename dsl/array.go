package dsl

import (
	"context"
	"sync"

	chatskema "github.com/reoring/chatskema"
	js "github.com/reoring/chatskema/jsonschema"
	"github.com/reoring/chatskema/wire"
)

// ArrayOf returns a Type for arrays whose elements are described by elem.
// An empty wire array decodes to an empty non-nil slice; a nil slice encodes
// as an empty array.
func ArrayOf[E any](elem Type[E]) Type[[]E] { return arrayType[E]{elem: elem} }

type arrayType[E any] struct{ elem Type[E] }

func (arrayType[E]) expected() string { return wire.TypeArray }

func (t arrayType[E]) validate() error { return validateInner(t.elem) }

func (t arrayType[E]) decode(sc scope, path chatskema.PathRef, v any) ([]E, chatskema.Issues) {
	arr, ok := v.([]any)
	if !ok {
		return nil, mismatch(path, wire.TypeArray, v)
	}
	out := make([]E, len(arr))
	var iss chatskema.Issues
	// elements never see the enclosing record as their parent
	esc := sc
	esc.parent = nil
	for i, ev := range arr {
		ep := path.Index(i)
		if ev == nil {
			iss = append(iss, ep.Issue(chatskema.CodeUnexpectedNull, nil, "expected", t.elem.expected()))
		} else {
			e, eiss := t.elem.decode(esc, ep, ev)
			if len(eiss) > 0 {
				iss = append(iss, eiss...)
			} else {
				out[i] = e
			}
		}
		if sc.failFast && len(iss) > 0 {
			return nil, iss
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (t arrayType[E]) encode(ctx context.Context, path chatskema.PathRef, v []E) (any, chatskema.Issues) {
	out := make([]any, 0, len(v))
	var iss chatskema.Issues
	for i, e := range v {
		w, eiss := t.elem.encode(ctx, path.Index(i), e)
		if len(eiss) > 0 {
			iss = append(iss, eiss...)
			continue
		}
		out = append(out, w)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (t arrayType[E]) jsonSchema() *js.Schema {
	return &js.Schema{Type: "array", Items: t.elem.jsonSchema()}
}

// Record returns s as a Type for nesting one record inside another.
func Record[R any](s *Schema[R]) Type[R] { return s }

// Enum returns an integer type projected onto E. Values outside known still
// decode so that newer upstream values do not break older readers; known only
// feeds the exported JSON Schema.
func Enum[E Integer](known ...E) Type[E] {
	return enumType[E]{known: append([]E(nil), known...)}
}

type enumType[E Integer] struct {
	intType[E]
	known []E
}

func (t enumType[E]) jsonSchema() *js.Schema {
	s := &js.Schema{Type: "integer"}
	for _, k := range t.known {
		s.Enum = append(s.Enum, int64(k))
	}
	return s
}

// Lazy defers building a Type until first use, for self-referencing shapes
// such as a message referencing another message. The built type must be a
// record or a union. Build does not check it.
func Lazy[V any](build func() Type[V]) Type[V] { return &lazyType[V]{build: build} }

type lazyType[V any] struct {
	once  sync.Once
	build func() Type[V]
	t     Type[V]
}

func (l *lazyType[V]) get() Type[V] {
	l.once.Do(func() { l.t = l.build() })
	return l.t
}

// expected does not resolve the type: fields ask for it while package
// variables are still initializing. Lazy wraps records and unions, which
// are objects on the wire.
func (l *lazyType[V]) expected() string { return wire.TypeObject }

func (l *lazyType[V]) decode(sc scope, path chatskema.PathRef, v any) (V, chatskema.Issues) {
	return l.get().decode(sc, path, v)
}

func (l *lazyType[V]) encode(ctx context.Context, path chatskema.PathRef, v V) (any, chatskema.Issues) {
	return l.get().encode(ctx, path, v)
}

// jsonSchema does not expand the referenced type, which may recurse.
func (l *lazyType[V]) jsonSchema() *js.Schema {
	if n, ok := l.get().(interface{ Name() string }); ok {
		return &js.Schema{Type: "object", Title: n.Name()}
	}
	return &js.Schema{}
}

// PtrTo returns a Type that stores V behind a pointer. It pairs with Lazy for
// recursive records, where the value type cannot embed itself.
func PtrTo[V any](t Type[V]) Type[*V] { return ptrType[V]{t: t} }

type ptrType[V any] struct{ t Type[V] }

func (p ptrType[V]) expected() string { return p.t.expected() }

func (p ptrType[V]) validate() error { return validateInner(p.t) }

func (p ptrType[V]) decode(sc scope, path chatskema.PathRef, v any) (*V, chatskema.Issues) {
	out, iss := p.t.decode(sc, path, v)
	if len(iss) > 0 {
		return nil, iss
	}
	return &out, nil
}

func (p ptrType[V]) encode(ctx context.Context, path chatskema.PathRef, v *V) (any, chatskema.Issues) {
	if v == nil {
		return nil, chatskema.Issues{path.Issue(chatskema.CodeUnexpectedNull, nil, "expected", p.t.expected())}
	}
	return p.t.encode(ctx, path, *v)
}

func (p ptrType[V]) jsonSchema() *js.Schema { return p.t.jsonSchema() }
