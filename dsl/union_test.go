package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatskema "github.com/reoring/chatskema"
	g "github.com/reoring/chatskema/dsl"
	"github.com/reoring/chatskema/wire"
)

type widget interface{ isWidget() }

type button struct{ Label string }
type slider struct{ Max int }
type otherWidget struct {
	Kind string
	Raw  *wire.Object
}

func (button) isWidget()      {}
func (slider) isWidget()      {}
func (otherWidget) isWidget() {}

var (
	buttonSchema = g.Object[button]("Button").
			Field(g.Req("label", g.String(), func(b *button) *string { return &b.Label })).
			Strict().
			MustBuild()
	sliderSchema = g.Object[slider]("Slider").
			Field(g.Req("max", g.Int(), func(s *slider) *int { return &s.Max })).
			MustBuild()
)

type panel struct {
	Widgets []widget
}

func panelSchema(forward bool) *g.Schema[panel] {
	u := g.Union[widget]("type",
		g.Case[widget]("1", buttonSchema),
		g.Case[widget]("2", sliderSchema),
	).NumericTag()
	if forward {
		u = u.Fallback(
			func(tag string, raw *wire.Object) widget { return otherWidget{Kind: tag, Raw: raw} },
			func(w widget) (*wire.Object, bool) {
				o, ok := w.(otherWidget)
				return o.Raw, ok
			},
		)
	}
	return g.Object[panel]("Panel").
		Field(g.Req("widgets", g.ArrayOf[widget](u), func(p *panel) *[]widget { return &p.Widgets })).
		MustBuild()
}

func TestUnion_DecodeEncodeVariants(t *testing.T) {
	s := panelSchema(false)
	doc := `{"widgets":[{"type":1,"label":"ok"},{"max":10,"type":2}]}`

	p, err := decodeJSON(t, s, doc)
	require.NoError(t, err)
	require.Len(t, p.Widgets, 2)
	assert.Equal(t, button{Label: "ok"}, p.Widgets[0])
	assert.Equal(t, slider{Max: 10}, p.Widgets[1])

	b, err := chatskema.EncodeJSON(context.Background(), s, p)
	require.NoError(t, err)
	// discriminator is emitted first
	assert.Equal(t, `{"widgets":[{"type":1,"label":"ok"},{"type":2,"max":10}]}`, string(b))
}

func TestUnion_UnknownVariant(t *testing.T) {
	_, err := decodeJSON(t, panelSchema(false), `{"widgets":[{"type":9}]}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeUnknownVariant, iss[0].Code)
	assert.Equal(t, "widgets[0].type", iss[0].Path)
	assert.Equal(t, "9", iss[0].Params["tag"])
}

func TestUnion_ForwardCompatibleKeepsRaw(t *testing.T) {
	s := panelSchema(true)
	doc := `{"widgets":[{"type":9,"color":"red"},{"type":1,"label":"x"}]}`

	p, err := decodeJSON(t, s, doc)
	require.NoError(t, err)
	other, ok := p.Widgets[0].(otherWidget)
	require.True(t, ok)
	assert.Equal(t, "9", other.Kind)
	assert.Equal(t, []string{"type", "color"}, other.Raw.Keys())

	b, err := chatskema.EncodeJSON(context.Background(), s, p)
	require.NoError(t, err)
	assert.Equal(t, doc, string(b))
}

func TestUnion_DiscriminatorMissingAndMistyped(t *testing.T) {
	_, err := decodeJSON(t, panelSchema(true), `{"widgets":[{"label":"x"},{"type":"1"}]}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, chatskema.CodeDiscriminatorMissing, iss[0].Code)
	assert.Equal(t, "widgets[0].type", iss[0].Path)
	assert.Equal(t, chatskema.CodeTypeMismatch, iss[1].Code)
	assert.Equal(t, "widgets[1].type", iss[1].Path)
}

func TestUnion_VariantErrorsKeepPath(t *testing.T) {
	_, err := decodeJSON(t, panelSchema(false), `{"widgets":[{"type":1,"label":"x","extra":1}]}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	// the discriminator is owned by the union, not an unknown key
	assert.Equal(t, chatskema.CodeUnknownKey, iss[0].Code)
	assert.Equal(t, "widgets[0].extra", iss[0].Path)
}

type event struct {
	Kind string
	Data widget
}

func TestSiblingUnion_ReadsEnclosingDiscriminator(t *testing.T) {
	u := g.SiblingUnion[widget]("kind",
		g.Case[widget]("button", buttonSchema),
		g.Case[widget]("slider", sliderSchema),
	)
	s := g.Object[event]("Event").
		Fields(
			g.Req("kind", g.String(), func(e *event) *string { return &e.Kind }),
			g.Req("data", u, func(e *event) *widget { return &e.Data }),
		).
		MustBuild()

	e, err := decodeJSON(t, s, `{"kind":"slider","data":{"max":3}}`)
	require.NoError(t, err)
	assert.Equal(t, slider{Max: 3}, e.Data)

	b, err := chatskema.EncodeJSON(context.Background(), s, e)
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"slider","data":{"max":3}}`, string(b))

	_, err = decodeJSON(t, s, `{"kind":"dial","data":{}}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeUnknownVariant, iss[0].Code)
	assert.Equal(t, "data", iss[0].Path)
}

func TestSiblingUnion_DiscriminatorIssues(t *testing.T) {
	u := g.SiblingUnion[widget]("kind",
		g.Case[widget]("button", buttonSchema),
	)
	bound := g.Object[event]("Event").
		Fields(
			g.Req("kind", g.String(), func(e *event) *string { return &e.Kind }),
			g.Req("data", u, func(e *event) *widget { return &e.Data }),
		).
		MustBuild()
	unbound := g.Object[event]("Event").
		Field(g.Req("data", u, func(e *event) *widget { return &e.Data })).
		MustBuild()

	_, err := decodeJSON(t, bound, `{"kind":7,"data":{"label":"x"}}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "kind", iss[0].Path)
	assert.Equal(t, chatskema.CodeTypeMismatch, iss[0].Code)

	_, err = decodeJSON(t, unbound, `{"data":{"label":"x"}}`)
	iss = issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "data", iss[0].Path)
	assert.Equal(t, chatskema.CodeDiscriminatorMissing, iss[0].Code)
}

func TestUnion_BuildValidatesWrappedUnions(t *testing.T) {
	type notAWidget struct{ Label string }
	bad := g.Object[notAWidget]("NotAWidget").
		Field(g.Req("label", g.String(), func(n *notAWidget) *string { return &n.Label })).
		MustBuild()
	u := g.Union[widget]("type", g.Case[widget]("x", bad))

	_, err := g.Object[panel]("Panel").
		Field(g.Req("widgets", g.ArrayOf[widget](u), func(p *panel) *[]widget { return &p.Widgets })).
		Build()
	require.ErrorIs(t, err, g.ErrInvalidSchema)
	assert.Contains(t, err.Error(), "does not implement")

	type holder struct{ W *widget }
	_, err = g.Object[holder]("Holder").
		Field(g.Req("w", g.PtrTo[widget](u), func(h *holder) **widget { return &h.W })).
		Build()
	require.ErrorIs(t, err, g.ErrInvalidSchema)
}

func TestUnion_BuildValidatesVariants(t *testing.T) {
	type holder struct{ W widget }
	type notAWidget struct{ Label string }
	bad := g.Object[notAWidget]("NotAWidget").
		Field(g.Req("label", g.String(), func(n *notAWidget) *string { return &n.Label })).
		MustBuild()

	_, err := g.Object[holder]("Holder").
		Field(g.Req("w", g.Union[widget]("type", g.Case[widget]("x", bad)), func(h *holder) *widget { return &h.W })).
		Build()
	require.ErrorIs(t, err, g.ErrInvalidSchema)
	assert.Contains(t, err.Error(), "does not implement")

	_, err = g.Object[holder]("Holder").
		Field(g.Req("w", g.Union[widget]("type",
			g.Case[widget]("x", buttonSchema),
			g.Case[widget]("x", sliderSchema),
		), func(h *holder) *widget { return &h.W })).
		Build()
	require.ErrorIs(t, err, g.ErrInvalidSchema)
	assert.Contains(t, err.Error(), "duplicate tag")
}

func TestUnion_JSONSchema(t *testing.T) {
	s, err := panelSchema(false).JSONSchema()
	require.NoError(t, err)
	items := s.Properties["widgets"].Items
	require.Len(t, items.OneOf, 2)
	assert.Equal(t, int64(1), items.OneOf[0].Properties["type"].Const)
	assert.Equal(t, "type", items.OneOf[0].Required[0])
	assert.Equal(t, false, items.OneOf[0].AdditionalProperties)
}
