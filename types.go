package chatskema

import "go.uber.org/zap"

// Policy is the presence policy of a field.
type Policy int

const (
	// PolicyRequired fields must be present with a non-null value.
	PolicyRequired Policy = iota
	// PolicyOptional fields may be absent but never null.
	PolicyOptional
	// PolicyOptionalNullable fields may be absent, null, or set.
	PolicyOptionalNullable
)

func (p Policy) String() string {
	switch p {
	case PolicyRequired:
		return "required"
	case PolicyOptional:
		return "optional"
	case PolicyOptionalNullable:
		return "optional-nullable"
	default:
		return "unknown"
	}
}

// UnknownPolicy controls how keys missing from a schema are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (default).
	UnknownPassthrough                      // Keep unknown keys on the record and re-emit them.
	UnknownStrict                           // Report unknown keys as unknown_key.
)

// NumberMode dictates how numbers are read into the wire tree.
type NumberMode int

const (
	NumberExact   NumberMode = iota // Keep the source text (wire.Number).
	NumberFloat64                   // Round to float64.
)

// Severity expresses the severity level for reader-level issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOpt bundles options for byte-level decoding.
type DecodeOpt struct {
	OnDuplicateKey Severity
	MaxDepth       int
	MaxBytes       int64
	NumberMode     NumberMode
	// FailFast stops at the first field-level issue instead of aggregating.
	FailFast bool
	// Logger receives warnings (duplicate keys in Warn mode). Nil disables logging.
	Logger *zap.Logger
	// OnWarning, when set, also receives warnings.
	OnWarning func(Issue)
}

func (o DecodeOpt) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
