// Package registry maps gateway event names to record schemas, so payloads
// can be decoded when their type is only known at runtime.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/discord"
	js "github.com/reoring/chatskema/jsonschema"
	"github.com/reoring/chatskema/wire"
)

var (
	// ErrUnknownEvent is returned for event names without a registered schema.
	ErrUnknownEvent = errors.New("registry: unknown event")
	// ErrDuplicateEvent is returned when an event name is registered twice.
	ErrDuplicateEvent = errors.New("registry: duplicate event")
	// ErrRecordType is returned by Encode when the record does not match the
	// event's schema.
	ErrRecordType = errors.New("registry: record type does not match event")
)

// Entry is a type-erased schema bound to an event name.
type Entry struct {
	Event  string
	Record string

	decode func(ctx context.Context, tree any) (any, error)
	encode func(ctx context.Context, rec any) (*wire.Object, error)
	schema func() (*js.Schema, error)
}

// Bind erases the record type of s so it can live in a Registry.
func Bind[R any](event string, s chatskema.Schema[R]) Entry {
	return Entry{
		Event:  event,
		Record: s.Name(),
		decode: func(ctx context.Context, tree any) (any, error) {
			return chatskema.DecodeValue(ctx, s, tree)
		},
		encode: func(ctx context.Context, rec any) (*wire.Object, error) {
			r, ok := rec.(R)
			if !ok {
				if p, isPtr := rec.(*R); isPtr && p != nil {
					r, ok = *p, true
				}
			}
			if !ok {
				return nil, fmt.Errorf("%w: %s wants %s, got %T", ErrRecordType, event, s.Name(), rec)
			}
			return s.EncodeObject(ctx, r)
		},
		schema: s.JSONSchema,
	}
}

// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	log     *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{entries: map[string]Entry{}, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register adds entries. It stops at the first empty or duplicate name.
func (r *Registry) Register(entries ...Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		if e.Event == "" || e.decode == nil {
			return fmt.Errorf("registry: invalid entry %q", e.Event)
		}
		if _, dup := r.entries[e.Event]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEvent, e.Event)
		}
		r.entries[e.Event] = e
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(entries ...Entry) *Registry {
	if err := r.Register(entries...); err != nil {
		panic(err)
	}
	return r
}

// Names lists the registered event names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for n := range r.entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the entry for an event name.
func (r *Registry) Lookup(event string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[event]
	return e, ok
}

func (r *Registry) entry(event string) (Entry, error) {
	e, ok := r.Lookup(event)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return e, nil
}

// Decode decodes a wire tree as the record registered for event. The result
// holds the record by value (for example discord.Message).
func (r *Registry) Decode(ctx context.Context, event string, tree any) (any, error) {
	e, err := r.entry(event)
	if err != nil {
		return nil, err
	}
	return e.decode(ctx, tree)
}

// Encode encodes rec, which must be the record type registered for event or
// a pointer to it.
func (r *Registry) Encode(ctx context.Context, event string, rec any) (*wire.Object, error) {
	e, err := r.entry(event)
	if err != nil {
		return nil, err
	}
	return e.encode(ctx, rec)
}

// JSONSchema exports the schema registered for event.
func (r *Registry) JSONSchema(event string) (*js.Schema, error) {
	e, err := r.entry(event)
	if err != nil {
		return nil, err
	}
	return e.schema()
}

// Dispatch is a decoded gateway frame.
type Dispatch struct {
	Payload discord.GatewayPayload
	// Event is empty for frames other than dispatches.
	Event string
	// Record is the decoded d payload of a dispatch, nil otherwise.
	Record any
}

// DecodeDispatch decodes a gateway frame and, for dispatches, its payload
// using the schema registered for the t field. Payload issues are reported
// under d.
func (r *Registry) DecodeDispatch(ctx context.Context, frame any) (Dispatch, error) {
	p, err := chatskema.DecodeValue(ctx, discord.GatewayPayloadSchema, frame)
	if err != nil {
		return Dispatch{}, err
	}
	out := Dispatch{Payload: p}
	if !p.IsDispatch() {
		r.log.Debug("gateway frame", zap.Int("op", int(p.Op)))
		return out, nil
	}
	out.Event, _ = p.T.Get()
	e, err := r.entry(out.Event)
	if err != nil {
		r.log.Warn("no schema for dispatch", zap.String("event", out.Event), zap.Int64("seq", p.S.Or(0)))
		return out, err
	}
	d, _ := p.D.Get()
	rec, err := e.decode(ctx, d)
	if err != nil {
		if iss, ok := chatskema.AsIssues(err); ok {
			err = iss.Rebase("d")
		}
		r.log.Debug("dispatch rejected", zap.String("event", out.Event), zap.Error(err))
		return out, err
	}
	out.Record = rec
	r.log.Debug("dispatch decoded", zap.String("event", out.Event), zap.String("record", e.Record))
	return out, nil
}
