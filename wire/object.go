// Package wire models the generic wire tree exchanged with the remote API.
//
// A tree is built from the following Go values only:
//
//	nil        JSON null
//	bool       JSON boolean
//	string     JSON string
//	Number     JSON number (exact source text)
//	float64    JSON number (NumberFloat64 mode)
//	[]any      JSON array
//	*Object    JSON object with insertion-ordered keys
//
// Key order is part of the tree so emitted payloads are deterministic and
// diffable.
package wire

// Object is a JSON object whose keys keep their insertion order.
// The zero value is an empty object ready for use.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty object with room for n keys.
func NewObject(n int) *Object {
	return &Object{keys: make([]string, 0, n), vals: make(map[string]any, n)}
}

// ObjectOf builds an object from alternating key/value pairs. It panics on an
// odd argument count or a non-string key; it is intended for literals in tests
// and fixtures.
func ObjectOf(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic("wire: ObjectOf requires key/value pairs")
	}
	o := NewObject(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("wire: ObjectOf key must be a string")
		}
		o.Set(k, kv[i+1])
	}
	return o
}

// Len reports the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a copy of the keys in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value stored under k and whether the key is present.
// A present key may hold nil (JSON null).
func (o *Object) Get(k string) (any, bool) {
	if o == nil || o.vals == nil {
		return nil, false
	}
	v, ok := o.vals[k]
	return v, ok
}

// Has reports whether k is present.
func (o *Object) Has(k string) bool {
	_, ok := o.Get(k)
	return ok
}

// Set stores v under k. A key that already exists keeps its original position.
func (o *Object) Set(k string, v any) *Object {
	if o.vals == nil {
		o.vals = make(map[string]any)
	}
	if _, exists := o.vals[k]; !exists {
		o.keys = append(o.keys, k)
	}
	o.vals[k] = v
	return o
}

// Delete removes k if present.
func (o *Object) Delete(k string) {
	if o == nil || o.vals == nil {
		return
	}
	if _, ok := o.vals[k]; !ok {
		return
	}
	delete(o.vals, k)
	for i, kk := range o.keys {
		if kk == k {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Range calls fn for each key in order until fn returns false.
func (o *Object) Range(fn func(k string, v any) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.vals[k]) {
			return
		}
	}
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	out := NewObject(len(o.keys))
	for _, k := range o.keys {
		out.Set(k, Clone(o.vals[k]))
	}
	return out
}

// MarshalJSON emits the object with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) { return Marshal(o) }

// Clone deep-copies a wire value. Scalars are returned as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Clone()
	case []any:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}
