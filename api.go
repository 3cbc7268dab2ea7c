package chatskema

import (
	"context"

	js "github.com/reoring/chatskema/jsonschema"
	"github.com/reoring/chatskema/wire"
)

// Object is the ordered wire object.
type Object = wire.Object

// Schema describes how a record type T maps to a wire object.
// Implementations are immutable and safe for concurrent use.
type Schema[T any] interface {
	// Name is the record type name used in diagnostics.
	Name() string
	// DecodeObject converts a wire object into T, returning every field-level
	// failure as one Issues error.
	DecodeObject(ctx context.Context, obj *wire.Object) (T, error)
	// EncodeObject converts T into a wire object with keys in declaration order.
	EncodeObject(ctx context.Context, v T) (*wire.Object, error)
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Codec performs a bidirectional scalar transformation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// Decode converts a wire object into a record.
func Decode[T any](ctx context.Context, s Schema[T], obj *wire.Object) (T, error) {
	return s.DecodeObject(ctx, obj)
}

// DecodeValue converts an arbitrary wire tree into a record. Anything other
// than an object is a type mismatch at the root.
func DecodeValue[T any](ctx context.Context, s Schema[T], tree any) (T, error) {
	obj, ok := tree.(*wire.Object)
	if !ok || obj == nil {
		var zero T
		code := CodeTypeMismatch
		if tree == nil {
			code = CodeUnexpectedNull
		}
		return zero, Issues{Root().Issue(code, tree, "expected", wire.TypeObject, "actual", wire.TypeName(tree))}
	}
	return s.DecodeObject(ctx, obj)
}

// Encode converts a record into a wire object.
func Encode[T any](ctx context.Context, s Schema[T], v T) (*wire.Object, error) {
	return s.EncodeObject(ctx, v)
}

// DecodeFrom is the byte-level entry point. It reads one document from src
// with the limits in opts, then decodes it.
func DecodeFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...DecodeOpt) (T, error) {
	var zero T
	opt := lastOpt(opts)
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	tree, err := ReadTree(src, opt)
	if err != nil {
		return zero, err
	}
	return DecodeValue(ctx, s, tree)
}

// DecodeJSON decodes a JSON document.
func DecodeJSON[T any](ctx context.Context, s Schema[T], data []byte, opts ...DecodeOpt) (T, error) {
	return DecodeFrom(ctx, s, JSONBytes(data), opts...)
}

// EncodeJSON encodes a record as compact JSON.
func EncodeJSON[T any](ctx context.Context, s Schema[T], v T) ([]byte, error) {
	obj, err := s.EncodeObject(ctx, v)
	if err != nil {
		return nil, err
	}
	return wire.Marshal(obj)
}

// Marshal emits a wire tree as compact JSON with stable key order.
func Marshal(v any) ([]byte, error) { return wire.Marshal(v) }

// Validate reports whether obj decodes cleanly against s.
func Validate[T any](ctx context.Context, s Schema[T], obj *wire.Object) error {
	_, err := s.DecodeObject(ctx, obj)
	return err
}

func lastOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}

// ---- Decode-time context options (exported for subpackages) ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast decoding.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current decode should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
