package discord

import (
	"strconv"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/dsl"
	"github.com/reoring/chatskema/wire"
)

// Component is an interactive message component. The concrete types are
// ActionRow, Button, StringSelect, TextInput and UnknownComponent.
type Component interface {
	Type() ComponentType
}

// ActionRow groups other components.
type ActionRow struct {
	Components []Component
}

// Button is a clickable button.
type Button struct {
	Style    ButtonStyle
	Label    chatskema.Optional[string]
	Emoji    chatskema.Optional[Emoji]
	CustomID chatskema.Optional[string]
	URL      chatskema.Optional[string]
	Disabled chatskema.Optional[bool]
}

// SelectOption is one choice of a StringSelect.
type SelectOption struct {
	Label       string
	Value       string
	Description chatskema.Optional[string]
	Emoji       chatskema.Optional[Emoji]
	Default     chatskema.Optional[bool]
}

// StringSelect is a drop-down of predefined text options.
type StringSelect struct {
	CustomID    string
	Options     []SelectOption
	Placeholder chatskema.Optional[string]
	MinValues   chatskema.Optional[int]
	MaxValues   chatskema.Optional[int]
	Disabled    chatskema.Optional[bool]
}

// TextInput is a free-text field, only valid inside modals.
type TextInput struct {
	CustomID    string
	Style       TextInputStyle
	Label       string
	MinLength   chatskema.Optional[int]
	MaxLength   chatskema.Optional[int]
	Required    chatskema.Optional[bool]
	Value       chatskema.Optional[string]
	Placeholder chatskema.Optional[string]
}

// UnknownComponent holds a component whose type this package does not know.
// Raw is the complete wire object, including its type key.
type UnknownComponent struct {
	Kind ComponentType
	Raw  *wire.Object
}

func (ActionRow) Type() ComponentType          { return ComponentActionRow }
func (Button) Type() ComponentType             { return ComponentButton }
func (StringSelect) Type() ComponentType       { return ComponentStringSelect }
func (TextInput) Type() ComponentType          { return ComponentTextInput }
func (c UnknownComponent) Type() ComponentType { return c.Kind }

// selfComponent resolves the component union from inside action rows.
var selfComponent dsl.Type[Component]

var ActionRowSchema = dsl.Object[ActionRow]("ActionRow").
	Field(dsl.Req("components", dsl.ArrayOf(dsl.Lazy(func() dsl.Type[Component] { return selfComponent })),
		func(a *ActionRow) *[]Component { return &a.Components })).
	MustBuild()

var ButtonSchema = dsl.Object[Button]("Button").
	Fields(
		dsl.Req("style", dsl.Enum(ButtonPrimary, ButtonSecondary, ButtonSuccess, ButtonDanger, ButtonLink),
			func(b *Button) *ButtonStyle { return &b.Style }),
		dsl.Opt("label", dsl.String(), func(b *Button) *chatskema.Optional[string] { return &b.Label }),
		dsl.Opt("emoji", dsl.Record(EmojiSchema), func(b *Button) *chatskema.Optional[Emoji] { return &b.Emoji }),
		dsl.Opt("custom_id", dsl.String(), func(b *Button) *chatskema.Optional[string] { return &b.CustomID }),
		dsl.Opt("url", dsl.String(), func(b *Button) *chatskema.Optional[string] { return &b.URL }),
		dsl.Opt("disabled", dsl.Bool(), func(b *Button) *chatskema.Optional[bool] { return &b.Disabled }),
	).
	MustBuild()

var SelectOptionSchema = dsl.Object[SelectOption]("SelectOption").
	Fields(
		dsl.Req("label", dsl.String(), func(o *SelectOption) *string { return &o.Label }),
		dsl.Req("value", dsl.String(), func(o *SelectOption) *string { return &o.Value }),
		dsl.Opt("description", dsl.String(), func(o *SelectOption) *chatskema.Optional[string] { return &o.Description }),
		dsl.Opt("emoji", dsl.Record(EmojiSchema), func(o *SelectOption) *chatskema.Optional[Emoji] { return &o.Emoji }),
		dsl.Opt("default", dsl.Bool(), func(o *SelectOption) *chatskema.Optional[bool] { return &o.Default }),
	).
	MustBuild()

var StringSelectSchema = dsl.Object[StringSelect]("StringSelect").
	Fields(
		dsl.Req("custom_id", dsl.String(), func(s *StringSelect) *string { return &s.CustomID }),
		dsl.Req("options", dsl.ArrayOf(dsl.Record(SelectOptionSchema)), func(s *StringSelect) *[]SelectOption { return &s.Options }),
		dsl.Opt("placeholder", dsl.String(), func(s *StringSelect) *chatskema.Optional[string] { return &s.Placeholder }),
		dsl.Opt("min_values", dsl.Int(), func(s *StringSelect) *chatskema.Optional[int] { return &s.MinValues }),
		dsl.Opt("max_values", dsl.Int(), func(s *StringSelect) *chatskema.Optional[int] { return &s.MaxValues }),
		dsl.Opt("disabled", dsl.Bool(), func(s *StringSelect) *chatskema.Optional[bool] { return &s.Disabled }),
	).
	MustBuild()

var TextInputSchema = dsl.Object[TextInput]("TextInput").
	Fields(
		dsl.Req("custom_id", dsl.String(), func(t *TextInput) *string { return &t.CustomID }),
		dsl.Req("style", dsl.Enum(TextInputShort, TextInputParagraph), func(t *TextInput) *TextInputStyle { return &t.Style }),
		dsl.Req("label", dsl.String(), func(t *TextInput) *string { return &t.Label }),
		dsl.Opt("min_length", dsl.Int(), func(t *TextInput) *chatskema.Optional[int] { return &t.MinLength }),
		dsl.Opt("max_length", dsl.Int(), func(t *TextInput) *chatskema.Optional[int] { return &t.MaxLength }),
		dsl.Opt("required", dsl.Bool(), func(t *TextInput) *chatskema.Optional[bool] { return &t.Required }),
		dsl.Opt("value", dsl.String(), func(t *TextInput) *chatskema.Optional[string] { return &t.Value }),
		dsl.Opt("placeholder", dsl.String(), func(t *TextInput) *chatskema.Optional[string] { return &t.Placeholder }),
	).
	MustBuild()

// ComponentUnion selects a component record by its numeric type key. Unknown
// types decode to UnknownComponent.
var ComponentUnion = dsl.Union[Component]("type",
	dsl.Case[Component](tag(ComponentActionRow), ActionRowSchema),
	dsl.Case[Component](tag(ComponentButton), ButtonSchema),
	dsl.Case[Component](tag(ComponentStringSelect), StringSelectSchema),
	dsl.Case[Component](tag(ComponentTextInput), TextInputSchema),
).
	NumericTag().
	Fallback(
		func(t string, raw *wire.Object) Component {
			n, _ := strconv.Atoi(t)
			return UnknownComponent{Kind: ComponentType(n), Raw: raw}
		},
		func(c Component) (*wire.Object, bool) {
			u, ok := c.(UnknownComponent)
			if !ok || u.Raw == nil {
				return nil, false
			}
			return u.Raw, true
		},
	)

func tag(t ComponentType) string { return strconv.Itoa(int(t)) }

func init() { selfComponent = ComponentUnion }
