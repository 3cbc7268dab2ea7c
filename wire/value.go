package wire

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// Number is a JSON number kept as its exact source text.
type Number string

func (n Number) String() string { return string(n) }

// Int64 parses the number as a base-10 integer.
func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Uint64 parses the number as a base-10 unsigned integer.
func (n Number) Uint64() (uint64, error) { return strconv.ParseUint(string(n), 10, 64) }

// Float64 parses the number as a float64.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

// Wire type names used in diagnostics.
const (
	TypeNull    = "null"
	TypeBool    = "boolean"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeInvalid = "invalid"
)

// TypeName returns the wire type name of v.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBool
	case string:
		return TypeString
	case Number, float64:
		return TypeNumber
	case []any:
		return TypeArray
	case *Object:
		return TypeObject
	default:
		return TypeInvalid
	}
}

// IntNumber returns the Number for i.
func IntNumber(i int64) Number { return Number(strconv.FormatInt(i, 10)) }

// FloatNumber returns the shortest Number representing f.
func FloatNumber(f float64) Number { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// FromGo converts plain Go values (map[string]any, []any, numeric kinds) into
// a wire tree. Map keys are sorted because Go maps carry no order.
func FromGo(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, Number, *Object:
		return t, nil
	case json.Number:
		return Number(t), nil
	case float64:
		return FloatNumber(t), nil
	case float32:
		return FloatNumber(float64(t)), nil
	case int:
		return IntNumber(int64(t)), nil
	case int32:
		return IntNumber(int64(t)), nil
	case int64:
		return IntNumber(t), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			c, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject(len(keys))
		for _, k := range keys {
			c, err := FromGo(t[k])
			if err != nil {
				return nil, err
			}
			o.Set(k, c)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("wire: unsupported Go value %T", v)
	}
}

// Equal reports whether two wire trees are equal. Object key order is
// significant; numbers compare by value.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case Number, float64:
		return numbersEqual(x, b)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !Equal(x.vals[k], y.vals[k]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numbersEqual(a, b any) bool {
	if na, ok := a.(Number); ok {
		if nb, ok := b.(Number); ok && na == nb {
			return true
		}
	}
	fa, ok1 := asFloat(a)
	fb, ok2 := asFloat(b)
	return ok1 && ok2 && fa == fb
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, !math.IsNaN(t)
	default:
		return 0, false
	}
}
