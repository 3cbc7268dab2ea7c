package chatskema

import "fmt"

// Presence is the wire state of an optional field.
type Presence uint8

const (
	// PresenceAbsent means the key did not appear on the wire.
	PresenceAbsent Presence = iota
	// PresenceNull means the key appeared with a null value.
	PresenceNull
	// PresenceValue means the key appeared with a concrete value.
	PresenceValue
)

func (p Presence) String() string {
	switch p {
	case PresenceAbsent:
		return "absent"
	case PresenceNull:
		return "null"
	case PresenceValue:
		return "value"
	default:
		return fmt.Sprintf("presence(%d)", uint8(p))
	}
}

// Optional holds a field that may be absent, explicitly null, or set.
// The zero value is absent.
//
// Absent and null are different facts: a partial update that omits
// edited_timestamp leaves it untouched, one that sends null clears it.
type Optional[T any] struct {
	state Presence
	value T
}

// Absent returns an Optional that was never provided.
func Absent[T any]() Optional[T] { return Optional[T]{} }

// Null returns an Optional that was explicitly cleared.
func Null[T any]() Optional[T] { return Optional[T]{state: PresenceNull} }

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{state: PresenceValue, value: v} }

// State reports the presence state.
func (o Optional[T]) State() Presence { return o.state }

// IsAbsent reports whether the field was not provided.
func (o Optional[T]) IsAbsent() bool { return o.state == PresenceAbsent }

// IsNull reports whether the field was explicitly null.
func (o Optional[T]) IsNull() bool { return o.state == PresenceNull }

// IsSet reports whether the field holds a value.
func (o Optional[T]) IsSet() bool { return o.state == PresenceValue }

// Get returns the value and whether one is held.
func (o Optional[T]) Get() (T, bool) { return o.value, o.state == PresenceValue }

// Or returns the value, or def when none is held.
func (o Optional[T]) Or(def T) T {
	if o.state == PresenceValue {
		return o.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when none is held.
func (o Optional[T]) Ptr() *T {
	if o.state != PresenceValue {
		return nil
	}
	v := o.value
	return &v
}

func (o Optional[T]) String() string {
	if o.state == PresenceValue {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return o.state.String()
}
