package dsl

import (
	"context"

	chatskema "github.com/reoring/chatskema"
	js "github.com/reoring/chatskema/jsonschema"
)

// Field binds one wire key of a record R to a struct member. Fields are
// created by Req, Opt and Nullable and are values: Deprecated and Describe
// return modified copies.
type Field[R any] struct {
	name        string
	policy      chatskema.Policy
	typ         string
	deprecated  bool
	description string
	noAccessor  bool
	check       func() error

	schema func() *js.Schema
	// dec receives the raw value and whether the key was present at all.
	dec    func(sc scope, path chatskema.PathRef, v any, present bool, r *R) chatskema.Issues
	// enc reports emit=false when the key must be omitted.
	enc    func(ctx context.Context, path chatskema.PathRef, r *R) (v any, emit bool, iss chatskema.Issues)
}

// FieldInfo describes a bound field for listings and documentation.
type FieldInfo struct {
	Name        string
	Policy      chatskema.Policy
	Type        string
	Deprecated  bool
	Description string
}

// Name returns the wire key.
func (f Field[R]) Name() string { return f.name }

// Policy returns the presence policy.
func (f Field[R]) Policy() chatskema.Policy { return f.policy }

// Deprecated marks the field as deprecated in exported schemas.
func (f Field[R]) Deprecated() Field[R] {
	f.deprecated = true
	return f
}

// Describe attaches a description used in exported schemas.
func (f Field[R]) Describe(s string) Field[R] {
	f.description = s
	return f
}

func (f Field[R]) info() FieldInfo {
	return FieldInfo{Name: f.name, Policy: f.policy, Type: f.typ, Deprecated: f.deprecated, Description: f.description}
}

func (f Field[R]) jsonSchema() *js.Schema {
	s := f.schema()
	if f.policy == chatskema.PolicyOptionalNullable {
		s = js.NullableOf(s)
	}
	if f.deprecated {
		s.Deprecated = true
	}
	if f.description != "" {
		s.Description = f.description
	}
	return s
}

func checkOf[V any](t Type[V]) func() error {
	if c, ok := t.(interface{ validate() error }); ok {
		return c.validate
	}
	return nil
}

// validateInner runs the check of a wrapped type, if it has one.
func validateInner[V any](t Type[V]) error {
	if c := checkOf(t); c != nil {
		return c()
	}
	return nil
}

// Req binds a required field: the key must be present with a non-null value.
func Req[R, V any](name string, t Type[V], get func(*R) *V) Field[R] {
	if t == nil || get == nil {
		return Field[R]{name: name, policy: chatskema.PolicyRequired, noAccessor: true}
	}
	return Field[R]{
		name:   name,
		policy: chatskema.PolicyRequired,
		typ:    t.expected(),
		check:  checkOf(t),
		schema: func() *js.Schema { return t.jsonSchema() },
		dec: func(sc scope, path chatskema.PathRef, v any, present bool, r *R) chatskema.Issues {
			if !present {
				return chatskema.Issues{path.Issue(chatskema.CodeMissingRequiredField, nil, "expected", t.expected())}
			}
			if v == nil {
				return chatskema.Issues{path.Issue(chatskema.CodeUnexpectedNull, nil, "expected", t.expected())}
			}
			out, iss := t.decode(sc, path, v)
			if len(iss) > 0 {
				return iss
			}
			*get(r) = out
			return nil
		},
		enc: func(ctx context.Context, path chatskema.PathRef, r *R) (any, bool, chatskema.Issues) {
			w, iss := t.encode(ctx, path, *get(r))
			return w, true, iss
		},
	}
}

// Opt binds an optional field: the key may be absent but never null.
func Opt[R, V any](name string, t Type[V], get func(*R) *chatskema.Optional[V]) Field[R] {
	return optional(name, chatskema.PolicyOptional, t, get)
}

// Nullable binds an optional-nullable field: absent, null and a value are
// three distinct states that survive a round-trip.
func Nullable[R, V any](name string, t Type[V], get func(*R) *chatskema.Optional[V]) Field[R] {
	return optional(name, chatskema.PolicyOptionalNullable, t, get)
}

func optional[R, V any](name string, policy chatskema.Policy, t Type[V], get func(*R) *chatskema.Optional[V]) Field[R] {
	if t == nil || get == nil {
		return Field[R]{name: name, policy: policy, noAccessor: true}
	}
	nullable := policy == chatskema.PolicyOptionalNullable
	return Field[R]{
		name:   name,
		policy: policy,
		typ:    t.expected(),
		check:  checkOf(t),
		schema: func() *js.Schema { return t.jsonSchema() },
		dec: func(sc scope, path chatskema.PathRef, v any, present bool, r *R) chatskema.Issues {
			switch {
			case !present:
				*get(r) = chatskema.Absent[V]()
				return nil
			case v == nil && nullable:
				*get(r) = chatskema.Null[V]()
				return nil
			case v == nil:
				return chatskema.Issues{path.Issue(chatskema.CodeUnexpectedNull, nil, "expected", t.expected())}
			}
			out, iss := t.decode(sc, path, v)
			if len(iss) > 0 {
				return iss
			}
			*get(r) = chatskema.Some(out)
			return nil
		},
		enc: func(ctx context.Context, path chatskema.PathRef, r *R) (any, bool, chatskema.Issues) {
			o := *get(r)
			switch o.State() {
			case chatskema.PresenceAbsent:
				return nil, false, nil
			case chatskema.PresenceNull:
				if !nullable {
					return nil, false, chatskema.Issues{path.Issue(chatskema.CodeUnexpectedNull, nil, "expected", t.expected())}
				}
				return nil, true, nil
			}
			val, _ := o.Get()
			w, iss := t.encode(ctx, path, val)
			return w, true, iss
		},
	}
}
