package dsl

import (
	"context"

	chatskema "github.com/reoring/chatskema"
	js "github.com/reoring/chatskema/jsonschema"
	"github.com/reoring/chatskema/wire"
)

// Schema is a built record description. It implements chatskema.Schema[R]
// and can be nested in other records as a Type[R].
type Schema[R any] struct {
	name        string
	description string
	fields      []Field[R]
	index       map[string]int
	unknown     chatskema.UnknownPolicy
	extra       func(*R) **wire.Object
	reconcile   []reconcileStep[R]
}

var _ chatskema.Schema[struct{}] = (*Schema[struct{}])(nil)

// Name returns the record name.
func (s *Schema[R]) Name() string { return s.name }

// Description returns the record description.
func (s *Schema[R]) Description() string { return s.description }

// UnknownPolicy returns how keys outside the description are handled.
func (s *Schema[R]) UnknownPolicy() chatskema.UnknownPolicy { return s.unknown }

// Fields lists the bound fields in declaration order.
func (s *Schema[R]) Fields() []FieldInfo {
	out := make([]FieldInfo, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.info()
	}
	return out
}

// DecodeObject converts obj into R, aggregating every failure into one
// Issues error unless the context requests fail-fast decoding.
func (s *Schema[R]) DecodeObject(ctx context.Context, obj *wire.Object) (R, error) {
	var zero R
	if obj == nil {
		return zero, chatskema.Issues{chatskema.Root().Issue(chatskema.CodeUnexpectedNull, nil, "expected", wire.TypeObject)}
	}
	r, iss := s.decodeObject(newScope(ctx), chatskema.Root(), obj, "")
	if len(iss) > 0 {
		return zero, iss
	}
	return r, nil
}

// EncodeObject converts r into a wire object. Keys follow declaration order;
// passthrough keys follow in their original order.
func (s *Schema[R]) EncodeObject(ctx context.Context, r R) (*wire.Object, error) {
	out, iss := s.encodeObject(ctx, chatskema.Root(), &r)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// JSONSchema exports the description as JSON Schema.
func (s *Schema[R]) JSONSchema() (*js.Schema, error) { return s.jsonSchema(), nil }

// decodeObject decodes the known fields, then applies the unknown-key policy.
// skip names a key owned by an enclosing union.
func (s *Schema[R]) decodeObject(sc scope, path chatskema.PathRef, obj *wire.Object, skip string) (R, chatskema.Issues) {
	var r, zero R
	var iss chatskema.Issues
	fsc := sc
	fsc.parent = obj
	for _, f := range s.fields {
		v, present := obj.Get(f.name)
		if fiss := f.dec(fsc, path.Field(f.name), v, present, &r); len(fiss) > 0 {
			iss = append(iss, fiss...)
			if sc.failFast {
				return zero, iss
			}
		}
	}
	iss = dropShadowed(path, iss)
	var extra *wire.Object
	for _, k := range obj.Keys() {
		if _, known := s.index[k]; known || k == skip {
			continue
		}
		switch s.unknown {
		case chatskema.UnknownStrict:
			v, _ := obj.Get(k)
			iss = append(iss, path.Field(k).Issue(chatskema.CodeUnknownKey, v, "schema", s.name))
			if sc.failFast {
				return zero, iss
			}
		case chatskema.UnknownPassthrough:
			if extra == nil {
				extra = wire.NewObject(0)
			}
			v, _ := obj.Get(k)
			extra.Set(k, wire.Clone(v))
		}
	}
	if len(iss) > 0 {
		return zero, iss
	}
	if s.extra != nil {
		*s.extra(&r) = extra
	}
	for _, st := range s.reconcile {
		st.fn(&r)
	}
	return r, nil
}

// dropShadowed removes sibling discriminator issues when the discriminator
// field has its own issue, so a bad tag is reported once at its own path.
func dropShadowed(path chatskema.PathRef, iss chatskema.Issues) chatskema.Issues {
	var out chatskema.Issues
	for _, it := range iss {
		if it.Cause == errSiblingDiscriminator {
			disc, _ := it.Params["discriminator"].(string)
			if len(iss.At(path.Field(disc).String())) > 0 {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func (s *Schema[R]) encodeObject(ctx context.Context, path chatskema.PathRef, r *R) (*wire.Object, chatskema.Issues) {
	out := wire.NewObject(len(s.fields))
	var iss chatskema.Issues
	for _, f := range s.fields {
		w, emit, fiss := f.enc(ctx, path.Field(f.name), r)
		if len(fiss) > 0 {
			iss = append(iss, fiss...)
			continue
		}
		if emit {
			out.Set(f.name, w)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if s.extra != nil {
		if extra := *s.extra(r); extra != nil {
			extra.Range(func(k string, v any) bool {
				// known fields win over captured keys of the same name
				if _, known := s.index[k]; !known {
					out.Set(k, wire.Clone(v))
				}
				return true
			})
		}
	}
	return out, nil
}

// ---- Type[R] ----

func (s *Schema[R]) expected() string { return wire.TypeObject }

func (s *Schema[R]) decode(sc scope, path chatskema.PathRef, v any) (R, chatskema.Issues) {
	obj, ok := v.(*wire.Object)
	if !ok || obj == nil {
		var zero R
		return zero, mismatch(path, wire.TypeObject, v)
	}
	return s.decodeObject(sc, path, obj, "")
}

func (s *Schema[R]) encode(ctx context.Context, path chatskema.PathRef, v R) (any, chatskema.Issues) {
	out, iss := s.encodeObject(ctx, path, &v)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (s *Schema[R]) jsonSchema() *js.Schema {
	out := &js.Schema{
		Title:       s.name,
		Description: s.description,
		Type:        "object",
		Properties:  make(map[string]*js.Schema, len(s.fields)),
	}
	for _, f := range s.fields {
		out.Properties[f.name] = f.jsonSchema()
		if f.policy == chatskema.PolicyRequired {
			out.Required = append(out.Required, f.name)
		}
	}
	switch s.unknown {
	case chatskema.UnknownStrict:
		out.AdditionalProperties = false
	case chatskema.UnknownPassthrough:
		out.AdditionalProperties = true
	}
	return out
}
