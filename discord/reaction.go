package discord

import (
	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/dsl"
)

// Emoji is a custom or unicode emoji. Unicode emoji have a null ID; deleted
// custom emoji in reactions have a null name.
type Emoji struct {
	ID       chatskema.Optional[chatskema.ID]
	Name     chatskema.Optional[string]
	Animated chatskema.Optional[bool]
}

// APIName returns the form used in reaction endpoints: name:id for custom
// emoji, the bare name for unicode emoji.
func (e Emoji) APIName() string {
	name := e.Name.Or("")
	if id, ok := e.ID.Get(); ok {
		return name + ":" + id.String()
	}
	return name
}

var EmojiSchema = dsl.Object[Emoji]("Emoji").
	Fields(
		dsl.Nullable("id", dsl.Snowflake(), func(e *Emoji) *chatskema.Optional[chatskema.ID] { return &e.ID }),
		dsl.Nullable("name", dsl.String(), func(e *Emoji) *chatskema.Optional[string] { return &e.Name }),
		dsl.Opt("animated", dsl.Bool(), func(e *Emoji) *chatskema.Optional[bool] { return &e.Animated }),
	).
	MustBuild()

// Reaction is the aggregated reaction count of one emoji on a message.
type Reaction struct {
	Count int
	Me    bool
	Emoji Emoji
}

var ReactionSchema = dsl.Object[Reaction]("Reaction").
	Fields(
		dsl.Req("count", dsl.Int(), func(r *Reaction) *int { return &r.Count }),
		dsl.Req("me", dsl.Bool(), func(r *Reaction) *bool { return &r.Me }),
		dsl.Req("emoji", dsl.Record(EmojiSchema), func(r *Reaction) *Emoji { return &r.Emoji }),
	).
	MustBuild()
