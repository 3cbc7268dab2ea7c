package chatskema

import (
	"strconv"
	"strings"
)

// PathRef builds field paths in a chain-safe way and creates Issues.
// Paths render dotted (author.id) with bracketed indexes (embeds[0].title).
type PathRef struct {
	parts []pathPart
}

type pathPart struct {
	name  string
	index int
	isIdx bool
}

// Root returns the empty path.
func Root() PathRef { return PathRef{} }

// Field returns the path extended by a field name.
func (p PathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return PathRef{parts: append(p.clone(), pathPart{name: name})}
}

// Index returns the path extended by an array index.
func (p PathRef) Index(i int) PathRef {
	return PathRef{parts: append(p.clone(), pathPart{index: i, isIdx: true})}
}

func (p PathRef) clone() []pathPart {
	out := make([]pathPart, len(p.parts), len(p.parts)+1)
	copy(out, p.parts)
	return out
}

// String renders the dotted form; the root renders as "".
func (p PathRef) String() string {
	var b strings.Builder
	for i, part := range p.parts {
		if part.isIdx {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(part.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part.name)
	}
	return b.String()
}

// Issue creates an Issue at this path with a localized message.
func (p PathRef) Issue(code string, value any, kv ...any) Issue {
	var params map[string]any
	if len(kv) > 1 {
		params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			k, _ := kv[i].(string)
			params[k] = kv[i+1]
		}
	}
	return NewIssue(p.String(), code, value, params)
}
