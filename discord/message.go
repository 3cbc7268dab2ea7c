package discord

import (
	"time"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/dsl"
	"github.com/reoring/chatskema/wire"
)

// MessageReference points at the message a reply, crosspost or pin notice
// refers to.
type MessageReference struct {
	Type            chatskema.Optional[int]
	MessageID       chatskema.Optional[chatskema.ID]
	ChannelID       chatskema.Optional[chatskema.ID]
	GuildID         chatskema.Optional[chatskema.ID]
	FailIfNotExists chatskema.Optional[bool]
}

var MessageReferenceSchema = dsl.Object[MessageReference]("MessageReference").
	Fields(
		dsl.Opt("type", dsl.Int(), func(r *MessageReference) *chatskema.Optional[int] { return &r.Type }),
		dsl.Opt("message_id", dsl.Snowflake(), func(r *MessageReference) *chatskema.Optional[chatskema.ID] { return &r.MessageID }),
		dsl.Opt("channel_id", dsl.Snowflake(), func(r *MessageReference) *chatskema.Optional[chatskema.ID] { return &r.ChannelID }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(r *MessageReference) *chatskema.Optional[chatskema.ID] { return &r.GuildID }),
		dsl.Opt("fail_if_not_exists", dsl.Bool(), func(r *MessageReference) *chatskema.Optional[bool] { return &r.FailIfNotExists }),
	).
	MustBuild()

// ChannelMention is a channel mentioned in a crossposted message.
type ChannelMention struct {
	ID      chatskema.ID
	GuildID chatskema.ID
	Type    int
	Name    string
}

var ChannelMentionSchema = dsl.Object[ChannelMention]("ChannelMention").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(c *ChannelMention) *chatskema.ID { return &c.ID }),
		dsl.Req("guild_id", dsl.Snowflake(), func(c *ChannelMention) *chatskema.ID { return &c.GuildID }),
		dsl.Req("type", dsl.Int(), func(c *ChannelMention) *int { return &c.Type }),
		dsl.Req("name", dsl.String(), func(c *ChannelMention) *string { return &c.Name }),
	).
	MustBuild()

// MessageInteraction is the legacy description of the interaction a message
// answers. Superseded by InteractionMetadata.
type MessageInteraction struct {
	ID     chatskema.ID
	Type   InteractionType
	Name   string
	User   User
	Member chatskema.Optional[Member]
}

var MessageInteractionSchema = dsl.Object[MessageInteraction]("MessageInteraction").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(i *MessageInteraction) *chatskema.ID { return &i.ID }),
		dsl.Req("type", dsl.IntOf[InteractionType](), func(i *MessageInteraction) *InteractionType { return &i.Type }),
		dsl.Req("name", dsl.String(), func(i *MessageInteraction) *string { return &i.Name }),
		dsl.Req("user", dsl.Record(UserSchema), func(i *MessageInteraction) *User { return &i.User }),
		dsl.Opt("member", dsl.Record(MemberSchema), func(i *MessageInteraction) *chatskema.Optional[Member] { return &i.Member }),
	).
	MustBuild()

// InteractionMetadata describes the interaction a message answers.
type InteractionMetadata struct {
	ID                           chatskema.ID
	Type                         InteractionType
	User                         User
	AuthorizingIntegrationOwners chatskema.Optional[*wire.Object]
	OriginalResponseMessageID    chatskema.Optional[chatskema.ID]
	InteractedMessageID          chatskema.Optional[chatskema.ID]
}

var InteractionMetadataSchema = dsl.Object[InteractionMetadata]("InteractionMetadata").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(i *InteractionMetadata) *chatskema.ID { return &i.ID }),
		dsl.Req("type", dsl.IntOf[InteractionType](), func(i *InteractionMetadata) *InteractionType { return &i.Type }),
		dsl.Req("user", dsl.Record(UserSchema), func(i *InteractionMetadata) *User { return &i.User }),
		dsl.Opt("authorizing_integration_owners", dsl.RawObject(),
			func(i *InteractionMetadata) *chatskema.Optional[*wire.Object] { return &i.AuthorizingIntegrationOwners }),
		dsl.Opt("original_response_message_id", dsl.Snowflake(),
			func(i *InteractionMetadata) *chatskema.Optional[chatskema.ID] { return &i.OriginalResponseMessageID }),
		dsl.Opt("interacted_message_id", dsl.Snowflake(),
			func(i *InteractionMetadata) *chatskema.Optional[chatskema.ID] { return &i.InteractedMessageID }),
	).
	MustBuild()

// Message is a message sent in a channel. It is also the payload of
// MESSAGE_CREATE, where GuildID and Member are filled for guild messages.
type Message struct {
	ID                  chatskema.ID
	ChannelID           chatskema.ID
	GuildID             chatskema.Optional[chatskema.ID]
	Author              User
	Member              chatskema.Optional[Member]
	Content             string
	Timestamp           time.Time
	EditedTimestamp     chatskema.Optional[time.Time]
	TTS                 bool
	MentionEveryone     bool
	Mentions            []User
	MentionRoles        []chatskema.ID
	MentionChannels     chatskema.Optional[[]ChannelMention]
	Attachments         []Attachment
	Embeds              []Embed
	Reactions           chatskema.Optional[[]Reaction]
	Nonce               chatskema.Optional[any]
	Pinned              bool
	WebhookID           chatskema.Optional[chatskema.ID]
	Type                MessageType
	ApplicationID       chatskema.Optional[chatskema.ID]
	MessageReference    chatskema.Optional[MessageReference]
	Flags               chatskema.Optional[MessageFlags]
	ReferencedMessage   chatskema.Optional[*Message]
	InteractionMetadata chatskema.Optional[InteractionMetadata]
	// Interaction is deprecated upstream; see ReconcileInteractionMetadata.
	Interaction         chatskema.Optional[MessageInteraction]
	Components          chatskema.Optional[[]Component]
	Position            chatskema.Optional[int]
	// Extra holds keys not described above, in wire order.
	Extra               *wire.Object
}

// IsReply reports whether the message replies to another message.
func (m Message) IsReply() bool { return m.Type == MessageTypeReply && m.MessageReference.IsSet() }

// ReconcileInteractionMetadata relates the deprecated interaction field to
// interaction_metadata. When interaction_metadata is present, as a value or
// as null, it wins and interaction is left as received. When it is absent and
// interaction holds a value, interaction_metadata is derived from it.
func ReconcileInteractionMetadata(m *Message) {
	if !m.InteractionMetadata.IsAbsent() {
		return
	}
	legacy, ok := m.Interaction.Get()
	if !ok {
		return
	}
	m.InteractionMetadata = chatskema.Some(InteractionMetadata{
		ID:   legacy.ID,
		Type: legacy.Type,
		User: legacy.User,
	})
}

// selfMessage resolves referenced_message, which is itself a message.
var selfMessage *dsl.Schema[Message]

// MessageSchema describes a message. Decoding runs
// ReconcileInteractionMetadata, so a payload carrying only the legacy
// interaction key re-encodes with a derived interaction_metadata as well;
// such payloads are not byte-stable across a round-trip.
var MessageSchema = dsl.Object[Message]("Message").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(m *Message) *chatskema.ID { return &m.ID }),
		dsl.Req("channel_id", dsl.Snowflake(), func(m *Message) *chatskema.ID { return &m.ChannelID }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(m *Message) *chatskema.Optional[chatskema.ID] { return &m.GuildID }),
		dsl.Req("author", dsl.Record(UserSchema), func(m *Message) *User { return &m.Author }),
		dsl.Opt("member", dsl.Record(MemberSchema), func(m *Message) *chatskema.Optional[Member] { return &m.Member }),
		dsl.Req("content", dsl.String(), func(m *Message) *string { return &m.Content }),
		dsl.Req("timestamp", dsl.Timestamp(), func(m *Message) *time.Time { return &m.Timestamp }),
		dsl.Nullable("edited_timestamp", dsl.Timestamp(), func(m *Message) *chatskema.Optional[time.Time] { return &m.EditedTimestamp }),
		dsl.Req("tts", dsl.Bool(), func(m *Message) *bool { return &m.TTS }),
		dsl.Req("mention_everyone", dsl.Bool(), func(m *Message) *bool { return &m.MentionEveryone }),
		dsl.Req("mentions", dsl.ArrayOf(dsl.Record(UserSchema)), func(m *Message) *[]User { return &m.Mentions }),
		dsl.Req("mention_roles", dsl.ArrayOf(dsl.Snowflake()), func(m *Message) *[]chatskema.ID { return &m.MentionRoles }),
		dsl.Opt("mention_channels", dsl.ArrayOf(dsl.Record(ChannelMentionSchema)),
			func(m *Message) *chatskema.Optional[[]ChannelMention] { return &m.MentionChannels }),
		dsl.Req("attachments", dsl.ArrayOf(dsl.Record(AttachmentSchema)), func(m *Message) *[]Attachment { return &m.Attachments }),
		dsl.Req("embeds", dsl.ArrayOf(dsl.Record(EmbedSchema)), func(m *Message) *[]Embed { return &m.Embeds }),
		dsl.Opt("reactions", dsl.ArrayOf(dsl.Record(ReactionSchema)), func(m *Message) *chatskema.Optional[[]Reaction] { return &m.Reactions }),
		dsl.Opt("nonce", dsl.Raw(), func(m *Message) *chatskema.Optional[any] { return &m.Nonce }),
		dsl.Req("pinned", dsl.Bool(), func(m *Message) *bool { return &m.Pinned }),
		dsl.Opt("webhook_id", dsl.Snowflake(), func(m *Message) *chatskema.Optional[chatskema.ID] { return &m.WebhookID }),
		dsl.Req("type", dsl.IntOf[MessageType](), func(m *Message) *MessageType { return &m.Type }),
		dsl.Opt("application_id", dsl.Snowflake(), func(m *Message) *chatskema.Optional[chatskema.ID] { return &m.ApplicationID }),
		dsl.Opt("message_reference", dsl.Record(MessageReferenceSchema),
			func(m *Message) *chatskema.Optional[MessageReference] { return &m.MessageReference }),
		dsl.Opt("flags", dsl.IntOf[MessageFlags](), func(m *Message) *chatskema.Optional[MessageFlags] { return &m.Flags }),
		dsl.Nullable("referenced_message", dsl.PtrTo(dsl.Lazy(func() dsl.Type[Message] { return selfMessage })),
			func(m *Message) *chatskema.Optional[*Message] { return &m.ReferencedMessage }),
		dsl.Nullable("interaction_metadata", dsl.Record(InteractionMetadataSchema),
			func(m *Message) *chatskema.Optional[InteractionMetadata] { return &m.InteractionMetadata }),
		dsl.Opt("interaction", dsl.Record(MessageInteractionSchema),
			func(m *Message) *chatskema.Optional[MessageInteraction] { return &m.Interaction }).
			Deprecated().
			Describe("Deprecated in favor of interaction_metadata."),
		dsl.Opt("components", dsl.ArrayOf[Component](ComponentUnion), func(m *Message) *chatskema.Optional[[]Component] { return &m.Components }),
		dsl.Opt("position", dsl.Int(), func(m *Message) *chatskema.Optional[int] { return &m.Position }),
	).
	Passthrough(func(m *Message) **wire.Object { return &m.Extra }).
	Reconcile("interaction-metadata", ReconcileInteractionMetadata).
	MustBuild()

func init() { selfMessage = MessageSchema }
