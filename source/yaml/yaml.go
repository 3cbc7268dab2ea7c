// Package yaml converts YAML documents into wire trees so fixtures and CLI
// input can be authored in YAML. Mapping order is preserved.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/chatskema/wire"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	// Path is the dotted path of the duplicated key (author.id, embeds[0].title).
	Path      string
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Options adjusts how a document becomes a wire tree.
type Options struct {
	// OnDuplicate receives each duplicate mapping key; decoding then goes on
	// with the last value winning. When nil a duplicate key is an error.
	OnDuplicate func(*DuplicateKeyError)
	// Float64 rounds every number to float64, like the JSON reader's float64
	// number mode.
	Float64 bool
}

// Reader decodes a multi-document YAML stream into wire trees.
type Reader struct {
	dec *yaml.Decoder
}

// NewReader constructs a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: yaml.NewDecoder(r)}
}

// Next returns the next document as a wire tree, or io.EOF when the stream is
// exhausted. Duplicate keys cause an error.
func (r *Reader) Next() (any, error) {
	var root yaml.Node
	if err := r.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return Options{}.toWire(&root, "")
}

// ReadAll reads every document in the stream.
func (r *Reader) ReadAll() ([]any, error) {
	var out []any
	for {
		v, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// Decode converts the first YAML document in data.
func Decode(data []byte) (any, error) { return DecodeWith(data, Options{}) }

// DecodeWith converts the first YAML document in data using opt.
func DecodeWith(data []byte, opt Options) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return opt.toWire(&root, "")
}

func (o Options) toWire(n *yaml.Node, path string) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return o.toWire(n.Content[0], path)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		return o.toWire(n.Alias, path)
	case yaml.MappingNode:
		obj := wire.NewObject(len(n.Content) / 2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			kp := k.Value
			if path != "" {
				kp = path + "." + k.Value
			}
			if pos, dup := first[k.Value]; dup {
				de := &DuplicateKeyError{Path: kp, Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
				if o.OnDuplicate == nil {
					return nil, de
				}
				o.OnDuplicate(de)
			} else {
				first[k.Value] = [2]int{k.Line, k.Column}
			}
			val, err := o.toWire(v, kp)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := o.toWire(c, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		v, err := scalar(n)
		if num, ok := v.(wire.Number); ok && err == nil && o.Float64 {
			return num.Float64()
		}
		return v, err
	default:
		return nil, nil
	}
}

func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		if u, err := strconv.ParseUint(n.Value, 10, 64); err == nil {
			return wire.Number(strconv.FormatUint(u, 10)), nil
		}
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: integer %q: %w", n.Line, n.Value, err)
		}
		return wire.IntNumber(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: float %q is not representable in JSON", n.Line, n.Value)
		}
		return wire.FloatNumber(f), nil
	default:
		return n.Value, nil
	}
}
