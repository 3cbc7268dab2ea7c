package dsl

import (
	"context"
	"math"
	"strconv"
	"time"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/codec"
	js "github.com/reoring/chatskema/jsonschema"
	"github.com/reoring/chatskema/wire"
)

// Type describes how a single wire value maps to V. Types are built by this
// package (primitives, ArrayOf, Union, Via, object schemas) and are immutable.
type Type[V any] interface {
	// expected is the wire shape reported in type_mismatch issues.
	expected() string
	decode(sc scope, path chatskema.PathRef, v any) (V, chatskema.Issues)
	encode(ctx context.Context, path chatskema.PathRef, v V) (any, chatskema.Issues)
	jsonSchema() *js.Schema
}

// scope carries per-call decode state down the tree.
type scope struct {
	ctx      context.Context
	failFast bool
	// parent is the object holding the value being decoded; sibling
	// discriminators are looked up here.
	parent *wire.Object
}

func newScope(ctx context.Context) scope {
	return scope{ctx: ctx, failFast: chatskema.IsFailFast(ctx)}
}

func mismatch(path chatskema.PathRef, expected string, v any) chatskema.Issues {
	return chatskema.Issues{path.Issue(chatskema.CodeTypeMismatch, v, "expected", expected, "actual", wire.TypeName(v))}
}

// ---- string ----

type stringType[S ~string] struct{}

// String returns the string type.
func String() Type[string] { return stringType[string]{} }

// StringOf returns a string type projected onto a named string type.
func StringOf[S ~string]() Type[S] { return stringType[S]{} }

func (stringType[S]) expected() string { return wire.TypeString }

func (stringType[S]) decode(_ scope, path chatskema.PathRef, v any) (S, chatskema.Issues) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch(path, wire.TypeString, v)
	}
	return S(s), nil
}

func (stringType[S]) encode(_ context.Context, _ chatskema.PathRef, v S) (any, chatskema.Issues) {
	return string(v), nil
}

func (stringType[S]) jsonSchema() *js.Schema { return &js.Schema{Type: "string"} }

// ---- bool ----

type boolType struct{}

// Bool returns the boolean type.
func Bool() Type[bool] { return boolType{} }

func (boolType) expected() string { return wire.TypeBool }

func (boolType) decode(_ scope, path chatskema.PathRef, v any) (bool, chatskema.Issues) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(path, wire.TypeBool, v)
	}
	return b, nil
}

func (boolType) encode(_ context.Context, _ chatskema.PathRef, v bool) (any, chatskema.Issues) {
	return v, nil
}

func (boolType) jsonSchema() *js.Schema { return &js.Schema{Type: "boolean"} }

// ---- integers ----

// Integer is the set of integer kinds IntOf can project onto.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type intType[I Integer] struct{}

// Int returns the integer type.
func Int() Type[int] { return intType[int]{} }

// IntOf returns an integer type projected onto a named integer type such as
// an enum or a bit-flag set.
func IntOf[I Integer]() Type[I] { return intType[I]{} }

const expectedInteger = "integer"

func (intType[I]) expected() string { return expectedInteger }

func (intType[I]) decode(_ scope, path chatskema.PathRef, v any) (I, chatskema.Issues) {
	var n int64
	switch t := v.(type) {
	case wire.Number:
		i, err := t.Int64()
		if err != nil {
			// 1.0 and 1e3 are integers too
			f, ferr := t.Float64()
			if ferr != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
				return 0, mismatch(path, expectedInteger, v)
			}
			i = int64(f)
		}
		n = i
	case float64:
		if t != math.Trunc(t) || t > math.MaxInt64 || t < math.MinInt64 {
			return 0, mismatch(path, expectedInteger, v)
		}
		n = int64(t)
	default:
		return 0, mismatch(path, expectedInteger, v)
	}
	if int64(I(n)) != n {
		return 0, mismatch(path, expectedInteger, v)
	}
	return I(n), nil
}

func (intType[I]) encode(_ context.Context, _ chatskema.PathRef, v I) (any, chatskema.Issues) {
	return wire.IntNumber(int64(v)), nil
}

func (intType[I]) jsonSchema() *js.Schema { return &js.Schema{Type: "integer"} }

// ---- float ----

type floatType struct{}

// Float returns the floating-point number type.
func Float() Type[float64] { return floatType{} }

func (floatType) expected() string { return wire.TypeNumber }

func (floatType) decode(_ scope, path chatskema.PathRef, v any) (float64, chatskema.Issues) {
	switch t := v.(type) {
	case wire.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, mismatch(path, wire.TypeNumber, v)
		}
		return f, nil
	case float64:
		return t, nil
	default:
		return 0, mismatch(path, wire.TypeNumber, v)
	}
}

func (floatType) encode(_ context.Context, path chatskema.PathRef, v float64) (any, chatskema.Issues) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, mismatch(path, wire.TypeNumber, v)
	}
	return wire.FloatNumber(v), nil
}

func (floatType) jsonSchema() *js.Schema { return &js.Schema{Type: "number"} }

// ---- snowflake ----

type snowflakeType struct{}

// Snowflake returns the identifier type. Values always encode as strings.
func Snowflake() Type[chatskema.ID] { return snowflakeType{} }

func (snowflakeType) expected() string { return "snowflake" }

func (snowflakeType) decode(_ scope, path chatskema.PathRef, v any) (chatskema.ID, chatskema.Issues) {
	id, it := chatskema.DecodeID(v)
	if it != nil {
		return 0, chatskema.Issues{*it}.Rebase(path.String())
	}
	return id, nil
}

func (snowflakeType) encode(_ context.Context, _ chatskema.PathRef, v chatskema.ID) (any, chatskema.Issues) {
	return chatskema.EncodeID(v), nil
}

func (snowflakeType) jsonSchema() *js.Schema {
	return &js.Schema{Type: "string", Format: "snowflake", Pattern: "^[0-9]+$"}
}

// ---- timestamp ----

// Timestamp returns the ISO-8601-with-offset timestamp type.
func Timestamp() Type[time.Time] {
	return Via(String(), codec.Timestamp(), &js.Schema{Type: "string", Format: "date-time"})
}

// ---- raw ----

type rawType struct{}

// Raw returns a type that keeps any wire value as a deep copy.
func Raw() Type[any] { return rawType{} }

func (rawType) expected() string { return "any" }

func (rawType) decode(_ scope, _ chatskema.PathRef, v any) (any, chatskema.Issues) {
	return wire.Clone(v), nil
}

func (rawType) encode(_ context.Context, path chatskema.PathRef, v any) (any, chatskema.Issues) {
	if wire.TypeName(v) == wire.TypeInvalid {
		return nil, mismatch(path, "wire value", v)
	}
	return wire.Clone(v), nil
}

func (rawType) jsonSchema() *js.Schema { return &js.Schema{} }

type rawObjectType struct{}

// RawObject returns a type that keeps a wire object as a deep copy.
func RawObject() Type[*wire.Object] { return rawObjectType{} }

func (rawObjectType) expected() string { return wire.TypeObject }

func (rawObjectType) decode(_ scope, path chatskema.PathRef, v any) (*wire.Object, chatskema.Issues) {
	o, ok := v.(*wire.Object)
	if !ok {
		return nil, mismatch(path, wire.TypeObject, v)
	}
	return o.Clone(), nil
}

func (rawObjectType) encode(_ context.Context, _ chatskema.PathRef, v *wire.Object) (any, chatskema.Issues) {
	if v == nil {
		return wire.NewObject(0), nil
	}
	return v.Clone(), nil
}

func (rawObjectType) jsonSchema() *js.Schema { return &js.Schema{Type: "object"} }

func itoa(i int64) string { return strconv.FormatInt(i, 10) }
