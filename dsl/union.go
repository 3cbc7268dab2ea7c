package dsl

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	chatskema "github.com/reoring/chatskema"
	js "github.com/reoring/chatskema/jsonschema"
	"github.com/reoring/chatskema/wire"
)

// Variant is one case of a union over U.
type Variant[U any] struct {
	tag    string
	name   string
	check  error
	schema func() *js.Schema
	dec    func(sc scope, path chatskema.PathRef, obj *wire.Object, skip string) (U, chatskema.Issues)
	// enc reports ok=false when u is not this variant.
	enc    func(ctx context.Context, path chatskema.PathRef, u U) (*wire.Object, bool, chatskema.Issues)
}

// Case binds tag to the record schema s. V must be assignable to U; Build
// reports a variant that is not.
func Case[U, V any](tag string, s *Schema[V]) Variant[U] {
	v := Variant[U]{tag: tag}
	if s == nil {
		v.check = fmt.Errorf("variant %q has no schema", tag)
		return v
	}
	v.name = s.Name()
	var zero V
	if _, ok := any(zero).(U); !ok {
		v.check = fmt.Errorf("variant %q: %T does not implement %s", tag, zero, typeName[U]())
	}
	v.schema = s.jsonSchema
	v.dec = func(sc scope, path chatskema.PathRef, obj *wire.Object, skip string) (U, chatskema.Issues) {
		r, iss := s.decodeObject(sc, path, obj, skip)
		if len(iss) > 0 {
			var zero U
			return zero, iss
		}
		u, _ := any(r).(U)
		return u, nil
	}
	v.enc = func(ctx context.Context, path chatskema.PathRef, u U) (*wire.Object, bool, chatskema.Issues) {
		r, ok := any(u).(V)
		if !ok {
			return nil, false, nil
		}
		out, iss := s.encodeObject(ctx, path, &r)
		return out, true, iss
	}
	return v
}

func typeName[U any]() string {
	return fmt.Sprintf("%T", (*U)(nil))[1:]
}

// UnionType is a closed set of record variants selected by a discriminator
// key. The discriminator lives either inside the value object (Union) or
// next to it in the enclosing record (SiblingUnion).
type UnionType[U any] struct {
	disc     string
	sibling  bool
	numeric  bool
	variants []Variant[U]
	byTag    map[string]int

	fallbackDec func(tag string, raw *wire.Object) U
	fallbackEnc func(u U) (*wire.Object, bool)
}

// Union returns a union whose discriminator is the key disc of the value
// object itself.
func Union[U any](disc string, variants ...Variant[U]) *UnionType[U] {
	return newUnion(disc, false, variants)
}

// SiblingUnion returns a union whose discriminator is the key disc of the
// enclosing record. Encoding the discriminator is left to that record.
func SiblingUnion[U any](disc string, variants ...Variant[U]) *UnionType[U] {
	return newUnion(disc, true, variants)
}

func newUnion[U any](disc string, sibling bool, variants []Variant[U]) *UnionType[U] {
	u := &UnionType[U]{disc: disc, sibling: sibling, variants: variants, byTag: make(map[string]int, len(variants))}
	for i, v := range variants {
		if _, dup := u.byTag[v.tag]; !dup {
			u.byTag[v.tag] = i
		}
	}
	return u
}

// NumericTag makes the discriminator an integer on the wire. Tags are then
// its decimal text ("1", "2", ...).
func (u *UnionType[U]) NumericTag() *UnionType[U] {
	u.numeric = true
	return u
}

// Fallback keeps unrecognized variants instead of reporting unknown_variant.
// decode receives the discriminator text and a copy of the raw object; encode
// reports whether it recognizes u.
func (u *UnionType[U]) Fallback(decode func(tag string, raw *wire.Object) U, encode func(u U) (*wire.Object, bool)) *UnionType[U] {
	u.fallbackDec, u.fallbackEnc = decode, encode
	return u
}

func (u *UnionType[U]) validate() error {
	if u.disc == "" {
		return fmt.Errorf("union has no discriminator")
	}
	if len(u.variants) == 0 {
		return fmt.Errorf("union on %q has no variants", u.disc)
	}
	seen := map[string]bool{}
	for _, v := range u.variants {
		if v.check != nil {
			return v.check
		}
		if seen[v.tag] {
			return fmt.Errorf("union on %q: duplicate tag %q", u.disc, v.tag)
		}
		seen[v.tag] = true
	}
	if (u.fallbackDec == nil) != (u.fallbackEnc == nil) {
		return fmt.Errorf("union on %q: fallback needs both decode and encode", u.disc)
	}
	return nil
}

func (u *UnionType[U]) expected() string { return wire.TypeObject }

// tagOf extracts the discriminator text from a raw wire value.
func (u *UnionType[U]) tagOf(v any) (string, bool) {
	if !u.numeric {
		s, ok := v.(string)
		return s, ok
	}
	switch t := v.(type) {
	case wire.Number:
		i, err := t.Int64()
		if err != nil {
			return "", false
		}
		return itoa(i), true
	case float64:
		if t != math.Trunc(t) {
			return "", false
		}
		return itoa(int64(t)), true
	}
	return "", false
}

func (u *UnionType[U]) decode(sc scope, path chatskema.PathRef, v any) (U, chatskema.Issues) {
	var zero U
	obj, ok := v.(*wire.Object)
	if !ok || obj == nil {
		return zero, mismatch(path, wire.TypeObject, v)
	}

	holder, discPath, skip := obj, path.Field(u.disc), u.disc
	if u.sibling {
		holder, discPath, skip = sc.parent, path, ""
	}
	raw, present := holder.Get(u.disc)
	if !present || raw == nil {
		return zero, u.siblingMark(discPath.Issue(chatskema.CodeDiscriminatorMissing, nil, "discriminator", u.disc))
	}
	tag, ok := u.tagOf(raw)
	if !ok {
		want := wire.TypeString
		if u.numeric {
			want = expectedInteger
		}
		return zero, u.siblingMark(mismatch(discPath, want, raw)[0])
	}

	i, known := u.byTag[tag]
	if !known {
		if u.fallbackDec != nil {
			return u.fallbackDec(tag, obj.Clone()), nil
		}
		return zero, chatskema.Issues{discPath.Issue(chatskema.CodeUnknownVariant, raw, "discriminator", u.disc, "tag", tag)}
	}
	vsc := sc
	vsc.parent = nil
	return u.variants[i].dec(vsc, path, obj, skip)
}

// errSiblingDiscriminator marks a discriminator issue raised by a sibling
// union. The enclosing object drops it when the discriminator field itself
// already failed.
var errSiblingDiscriminator = errors.New("sibling discriminator unusable")

func (u *UnionType[U]) siblingMark(it chatskema.Issue) chatskema.Issues {
	if u.sibling {
		it.Cause = errSiblingDiscriminator
		if it.Params == nil {
			it.Params = map[string]any{}
		}
		it.Params["discriminator"] = u.disc
	}
	return chatskema.Issues{it}
}

func (u *UnionType[U]) encode(ctx context.Context, path chatskema.PathRef, v U) (any, chatskema.Issues) {
	for _, vr := range u.variants {
		obj, ok, iss := vr.enc(ctx, path, v)
		if !ok {
			continue
		}
		if len(iss) > 0 {
			return nil, iss
		}
		if u.sibling {
			return obj, nil
		}
		out := wire.NewObject(obj.Len() + 1)
		out.Set(u.disc, u.wireTag(vr.tag))
		obj.Range(func(k string, val any) bool {
			out.Set(k, val)
			return true
		})
		return out, nil
	}
	if u.fallbackEnc != nil {
		if obj, ok := u.fallbackEnc(v); ok {
			return obj.Clone(), nil
		}
	}
	return nil, chatskema.Issues{path.Issue(chatskema.CodeUnknownVariant, nil, "discriminator", u.disc, "tag", fmt.Sprintf("%T", v))}
}

func (u *UnionType[U]) wireTag(tag string) any {
	if u.numeric {
		return wire.Number(tag)
	}
	return tag
}

func (u *UnionType[U]) jsonSchema() *js.Schema {
	out := &js.Schema{}
	for _, vr := range u.variants {
		s := vr.schema()
		if !u.sibling {
			props := make(map[string]*js.Schema, len(s.Properties)+1)
			for k, p := range s.Properties {
				props[k] = p
			}
			props[u.disc] = &js.Schema{Const: u.wireTagSchema(vr.tag)}
			s.Properties = props
			s.Required = append([]string{u.disc}, s.Required...)
		}
		out.OneOf = append(out.OneOf, s)
	}
	if u.fallbackDec != nil {
		// unrecognized tags still decode, so the closed set is only a hint
		return &js.Schema{AnyOf: []*js.Schema{out, {Type: "object", Description: "unrecognized " + u.disc}}}
	}
	return out
}

func (u *UnionType[U]) wireTagSchema(tag string) any {
	if u.numeric {
		if n, err := strconv.ParseInt(tag, 10, 64); err == nil {
			return n
		}
	}
	return tag
}
