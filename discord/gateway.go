package discord

import (
	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/dsl"
)

// GatewayPayload is the envelope of every gateway frame. S and T are null
// for frames other than dispatches; D is the raw event payload.
type GatewayPayload struct {
	Op GatewayOpcode
	D  chatskema.Optional[any]
	S  chatskema.Optional[int64]
	T  chatskema.Optional[string]
}

// IsDispatch reports whether the frame carries a named event.
func (p GatewayPayload) IsDispatch() bool { return p.Op == OpDispatch && p.T.IsSet() }

var GatewayPayloadSchema = dsl.Object[GatewayPayload]("GatewayPayload").
	Fields(
		dsl.Req("op", dsl.IntOf[GatewayOpcode](), func(p *GatewayPayload) *GatewayOpcode { return &p.Op }),
		dsl.Nullable("d", dsl.Raw(), func(p *GatewayPayload) *chatskema.Optional[any] { return &p.D }),
		dsl.Nullable("s", dsl.IntOf[int64](), func(p *GatewayPayload) *chatskema.Optional[int64] { return &p.S }),
		dsl.Nullable("t", dsl.String(), func(p *GatewayPayload) *chatskema.Optional[string] { return &p.T }),
	).
	MustBuild()
