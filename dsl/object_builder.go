package dsl

import (
	"errors"
	"fmt"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/wire"
)

// ErrInvalidSchema is returned by Build when a description is inconsistent.
var ErrInvalidSchema = errors.New("dsl: invalid schema")

// Builder collects the description of a record R. Call Build once the
// description is complete; the resulting Schema is immutable.
type Builder[R any] struct {
	name        string
	description string
	fields      []Field[R]
	unknown     chatskema.UnknownPolicy
	extra       func(*R) **wire.Object
	reconcile   []reconcileStep[R]
}

type reconcileStep[R any] struct {
	name string
	fn   func(*R)
}

// Object starts the description of record R. name is used in diagnostics
// and as the exported schema title.
func Object[R any](name string) *Builder[R] {
	return &Builder[R]{name: name}
}

// Field appends one field binding.
func (b *Builder[R]) Field(f Field[R]) *Builder[R] {
	b.fields = append(b.fields, f)
	return b
}

// Fields appends field bindings in declaration order.
func (b *Builder[R]) Fields(fs ...Field[R]) *Builder[R] {
	b.fields = append(b.fields, fs...)
	return b
}

// Describe sets the schema description.
func (b *Builder[R]) Describe(s string) *Builder[R] {
	b.description = s
	return b
}

// Strip drops unknown keys on decode. This is the default.
func (b *Builder[R]) Strip() *Builder[R] {
	b.unknown, b.extra = chatskema.UnknownStrip, nil
	return b
}

// Strict reports unknown keys as unknown_key.
func (b *Builder[R]) Strict() *Builder[R] {
	b.unknown, b.extra = chatskema.UnknownStrict, nil
	return b
}

// Passthrough keeps unknown keys in the object returned by get and emits
// them again after the known keys.
func (b *Builder[R]) Passthrough(get func(*R) **wire.Object) *Builder[R] {
	b.unknown, b.extra = chatskema.UnknownPassthrough, get
	return b
}

// Reconcile registers a step run after every successful decode, in
// registration order. Steps relate fields to each other, for example a
// deprecated field and its replacement.
func (b *Builder[R]) Reconcile(name string, fn func(*R)) *Builder[R] {
	b.reconcile = append(b.reconcile, reconcileStep[R]{name: name, fn: fn})
	return b
}

// Build validates the description and returns the immutable schema.
func (b *Builder[R]) Build() (*Schema[R], error) {
	var errs []error
	if b.unknown == chatskema.UnknownPassthrough && b.extra == nil {
		errs = append(errs, fmt.Errorf("%w: %s: passthrough accessor is nil", ErrInvalidSchema, b.name))
	}
	index := make(map[string]int, len(b.fields))
	for i, f := range b.fields {
		switch {
		case f.name == "":
			errs = append(errs, fmt.Errorf("%w: %s: field #%d has no name", ErrInvalidSchema, b.name, i))
			continue
		case f.noAccessor:
			errs = append(errs, fmt.Errorf("%w: %s.%s: nil type or accessor", ErrInvalidSchema, b.name, f.name))
		}
		if _, dup := index[f.name]; dup {
			errs = append(errs, fmt.Errorf("%w: %s.%s: duplicate wire name", ErrInvalidSchema, b.name, f.name))
			continue
		}
		index[f.name] = i
		if f.check != nil {
			if err := f.check(); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s.%s: %w", ErrInvalidSchema, b.name, f.name, err))
			}
		}
	}
	for _, st := range b.reconcile {
		if st.fn == nil {
			errs = append(errs, fmt.Errorf("%w: %s: reconcile step %q is nil", ErrInvalidSchema, b.name, st.name))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Schema[R]{
		name:        b.name,
		description: b.description,
		fields:      append([]Field[R](nil), b.fields...),
		index:       index,
		unknown:     b.unknown,
		extra:       b.extra,
		reconcile:   append([]reconcileStep[R](nil), b.reconcile...),
	}, nil
}

// MustBuild is Build that panics on an invalid description. Intended for
// package-level schema variables.
func (b *Builder[R]) MustBuild() *Schema[R] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
