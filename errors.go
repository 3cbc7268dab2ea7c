package chatskema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/chatskema/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingRequiredField    = "missing_required_field"
	CodeUnexpectedNull          = "unexpected_null"
	CodeTypeMismatch            = "type_mismatch"
	CodeUnknownVariant          = "unknown_variant"
	CodeInvalidIdentifierFormat = "invalid_identifier_format"
	CodeInvalidTimestampFormat  = "invalid_timestamp_format"
	CodeDiscriminatorMissing    = "discriminator_missing"
	CodeUnknownKey              = "unknown_key"
	// Raised while reading bytes into a wire tree.
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dotted field path (for example: author.id, embeds[2].title).
	Code    string // One of the codes listed above.
	Message string
	// Value is the offending raw wire value, when there is one.
	Value any
	// Params carries structured parameters (e.g., {"expected":"string","actual":"number"})
	// for i18n and observability.
	Params map[string]any
	Cause  error // Optional: underlying error.
}

// NewIssue builds an Issue with a localized message for code.
func NewIssue(path, code string, value any, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: i18n.T(code, stringParams(params)), Value: value, Params: params}
}

func (it Issue) String() string {
	p := it.Path
	if p == "" {
		p = "<root>"
	}
	if it.Message == "" || it.Message == it.Code {
		return fmt.Sprintf("%s at %s", it.Code, p)
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, p, it.Message)
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. type_mismatch at author.id
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// Has reports whether any issue carries code.
func (iss Issues) Has(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// At returns the issues recorded for path.
func (iss Issues) At(path string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Path == path {
			out = append(out, it)
		}
	}
	return out
}

// Rebase prefixes every path with base, joining the way nested fields are
// rendered (base.field, base[0]).
func (iss Issues) Rebase(base string) Issues {
	if base == "" || len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		switch {
		case it.Path == "":
			it.Path = base
		case strings.HasPrefix(it.Path, "["):
			it.Path = base + it.Path
		default:
			it.Path = base + "." + it.Path
		}
		out[i] = it
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ToIssues converts any error into Issues, wrapping foreign errors as
// parse_error at the root.
func ToIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{Code: CodeParseError, Message: err.Error(), Cause: err}}
}

func stringParams(p map[string]any) map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = fmt.Sprint(v)
	}
	return out
}
