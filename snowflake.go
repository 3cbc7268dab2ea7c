package chatskema

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/chatskema/wire"
)

// MaxSafeInteger is the largest integer a float64 represents exactly (2^53-1).
const MaxSafeInteger = 1<<53 - 1

// ID is a 64-bit snowflake identifier. It always travels as a wire string.
type ID uint64

// ParseID parses the decimal string form of an ID.
func ParseID(s string) (ID, error) {
	if s == "" || !isDigits(s) {
		return 0, strconv.ErrSyntax
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(u), nil
}

// MustParseID is like ParseID but panics on error.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic("chatskema: invalid ID " + strconv.Quote(s))
	}
	return id
}

func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == 0 }

// MarshalJSON emits the quoted decimal form.
func (id ID) MarshalJSON() ([]byte, error) { return []byte(strconv.Quote(id.String())), nil }

// UnmarshalJSON accepts the string form or a JSON number.
func (id *ID) UnmarshalJSON(b []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if n, ok := raw.(json.Number); ok {
		raw = wire.Number(n)
	}
	v, iss := DecodeID(raw)
	if iss != nil {
		return Issues{*iss}
	}
	*id = v
	return nil
}

// DecodeID converts a wire value into an ID.
//
// Strings must be all digits. Numbers are accepted for older payloads: exact
// number text must fit in 64 bits, while float64 numbers (already rounded by
// the reader) must be integral and within MaxSafeInteger. Other wire types
// are a type mismatch.
func DecodeID(v any) (ID, *Issue) {
	switch t := v.(type) {
	case string:
		id, err := ParseID(t)
		if err != nil {
			return 0, invalidID(v)
		}
		return id, nil
	case wire.Number:
		if !isDigits(string(t)) {
			return 0, invalidID(v)
		}
		u, err := t.Uint64()
		if err != nil {
			return 0, invalidID(v)
		}
		return ID(u), nil
	case float64:
		if t < 0 || t > MaxSafeInteger || t != math.Trunc(t) {
			return 0, invalidID(v)
		}
		return ID(uint64(t)), nil
	default:
		it := NewIssue("", CodeTypeMismatch, v, map[string]any{"expected": "snowflake", "actual": wire.TypeName(v)})
		return 0, &it
	}
}

// EncodeID returns the wire form of id.
func EncodeID(id ID) any { return id.String() }

func invalidID(v any) *Issue {
	it := NewIssue("", CodeInvalidIdentifierFormat, v, nil)
	return &it
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
