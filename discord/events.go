package discord

import (
	"strconv"
	"time"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/dsl"
	"github.com/reoring/chatskema/wire"
)

// Gateway dispatch event names (the t field of a dispatch payload).
const (
	EventMessageCreate         = "MESSAGE_CREATE"
	EventMessageUpdate         = "MESSAGE_UPDATE"
	EventMessageDelete         = "MESSAGE_DELETE"
	EventMessageDeleteBulk     = "MESSAGE_DELETE_BULK"
	EventMessageReactionAdd    = "MESSAGE_REACTION_ADD"
	EventMessageReactionRemove = "MESSAGE_REACTION_REMOVE"
	EventChannelPinsUpdate     = "CHANNEL_PINS_UPDATE"
	EventTypingStart           = "TYPING_START"
	EventInteractionCreate     = "INTERACTION_CREATE"
)

// MessageUpdate is a partial message: only id and channel_id are guaranteed,
// every other key is present only when it changed.
type MessageUpdate struct {
	ID              chatskema.ID
	ChannelID       chatskema.ID
	GuildID         chatskema.Optional[chatskema.ID]
	Author          chatskema.Optional[User]
	Content         chatskema.Optional[string]
	EditedTimestamp chatskema.Optional[time.Time]
	Mentions        chatskema.Optional[[]User]
	Attachments     chatskema.Optional[[]Attachment]
	Embeds          chatskema.Optional[[]Embed]
	Components      chatskema.Optional[[]Component]
	Pinned          chatskema.Optional[bool]
	Flags           chatskema.Optional[MessageFlags]
	Extra           *wire.Object
}

var MessageUpdateSchema = dsl.Object[MessageUpdate]("MessageUpdate").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(m *MessageUpdate) *chatskema.ID { return &m.ID }),
		dsl.Req("channel_id", dsl.Snowflake(), func(m *MessageUpdate) *chatskema.ID { return &m.ChannelID }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(m *MessageUpdate) *chatskema.Optional[chatskema.ID] { return &m.GuildID }),
		dsl.Opt("author", dsl.Record(UserSchema), func(m *MessageUpdate) *chatskema.Optional[User] { return &m.Author }),
		dsl.Opt("content", dsl.String(), func(m *MessageUpdate) *chatskema.Optional[string] { return &m.Content }),
		dsl.Nullable("edited_timestamp", dsl.Timestamp(), func(m *MessageUpdate) *chatskema.Optional[time.Time] { return &m.EditedTimestamp }),
		dsl.Opt("mentions", dsl.ArrayOf(dsl.Record(UserSchema)), func(m *MessageUpdate) *chatskema.Optional[[]User] { return &m.Mentions }),
		dsl.Opt("attachments", dsl.ArrayOf(dsl.Record(AttachmentSchema)),
			func(m *MessageUpdate) *chatskema.Optional[[]Attachment] { return &m.Attachments }),
		dsl.Opt("embeds", dsl.ArrayOf(dsl.Record(EmbedSchema)), func(m *MessageUpdate) *chatskema.Optional[[]Embed] { return &m.Embeds }),
		dsl.Opt("components", dsl.ArrayOf[Component](ComponentUnion),
			func(m *MessageUpdate) *chatskema.Optional[[]Component] { return &m.Components }),
		dsl.Opt("pinned", dsl.Bool(), func(m *MessageUpdate) *chatskema.Optional[bool] { return &m.Pinned }),
		dsl.Opt("flags", dsl.IntOf[MessageFlags](), func(m *MessageUpdate) *chatskema.Optional[MessageFlags] { return &m.Flags }),
	).
	Passthrough(func(m *MessageUpdate) **wire.Object { return &m.Extra }).
	MustBuild()

// MessageDelete is sent when a message is deleted.
type MessageDelete struct {
	ID        chatskema.ID
	ChannelID chatskema.ID
	GuildID   chatskema.Optional[chatskema.ID]
}

var MessageDeleteSchema = dsl.Object[MessageDelete]("MessageDelete").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(m *MessageDelete) *chatskema.ID { return &m.ID }),
		dsl.Req("channel_id", dsl.Snowflake(), func(m *MessageDelete) *chatskema.ID { return &m.ChannelID }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(m *MessageDelete) *chatskema.Optional[chatskema.ID] { return &m.GuildID }),
	).
	MustBuild()

// MessageDeleteBulk is sent when several messages are deleted at once.
type MessageDeleteBulk struct {
	IDs       []chatskema.ID
	ChannelID chatskema.ID
	GuildID   chatskema.Optional[chatskema.ID]
}

var MessageDeleteBulkSchema = dsl.Object[MessageDeleteBulk]("MessageDeleteBulk").
	Fields(
		dsl.Req("ids", dsl.ArrayOf(dsl.Snowflake()), func(m *MessageDeleteBulk) *[]chatskema.ID { return &m.IDs }),
		dsl.Req("channel_id", dsl.Snowflake(), func(m *MessageDeleteBulk) *chatskema.ID { return &m.ChannelID }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(m *MessageDeleteBulk) *chatskema.Optional[chatskema.ID] { return &m.GuildID }),
	).
	MustBuild()

// MessageReactionAdd is sent when a user reacts to a message.
type MessageReactionAdd struct {
	UserID          chatskema.ID
	ChannelID       chatskema.ID
	MessageID       chatskema.ID
	GuildID         chatskema.Optional[chatskema.ID]
	Member          chatskema.Optional[Member]
	Emoji           Emoji
	MessageAuthorID chatskema.Optional[chatskema.ID]
	Burst           chatskema.Optional[bool]
	Type            chatskema.Optional[int]
}

var MessageReactionAddSchema = dsl.Object[MessageReactionAdd]("MessageReactionAdd").
	Fields(
		dsl.Req("user_id", dsl.Snowflake(), func(r *MessageReactionAdd) *chatskema.ID { return &r.UserID }),
		dsl.Req("channel_id", dsl.Snowflake(), func(r *MessageReactionAdd) *chatskema.ID { return &r.ChannelID }),
		dsl.Req("message_id", dsl.Snowflake(), func(r *MessageReactionAdd) *chatskema.ID { return &r.MessageID }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(r *MessageReactionAdd) *chatskema.Optional[chatskema.ID] { return &r.GuildID }),
		dsl.Opt("member", dsl.Record(MemberSchema), func(r *MessageReactionAdd) *chatskema.Optional[Member] { return &r.Member }),
		dsl.Req("emoji", dsl.Record(EmojiSchema), func(r *MessageReactionAdd) *Emoji { return &r.Emoji }),
		dsl.Opt("message_author_id", dsl.Snowflake(),
			func(r *MessageReactionAdd) *chatskema.Optional[chatskema.ID] { return &r.MessageAuthorID }),
		dsl.Opt("burst", dsl.Bool(), func(r *MessageReactionAdd) *chatskema.Optional[bool] { return &r.Burst }),
		dsl.Opt("type", dsl.Int(), func(r *MessageReactionAdd) *chatskema.Optional[int] { return &r.Type }),
	).
	MustBuild()

// MessageReactionRemove is sent when a user removes a reaction.
type MessageReactionRemove struct {
	UserID    chatskema.ID
	ChannelID chatskema.ID
	MessageID chatskema.ID
	GuildID   chatskema.Optional[chatskema.ID]
	Emoji     Emoji
	Burst     chatskema.Optional[bool]
	Type      chatskema.Optional[int]
}

var MessageReactionRemoveSchema = dsl.Object[MessageReactionRemove]("MessageReactionRemove").
	Fields(
		dsl.Req("user_id", dsl.Snowflake(), func(r *MessageReactionRemove) *chatskema.ID { return &r.UserID }),
		dsl.Req("channel_id", dsl.Snowflake(), func(r *MessageReactionRemove) *chatskema.ID { return &r.ChannelID }),
		dsl.Req("message_id", dsl.Snowflake(), func(r *MessageReactionRemove) *chatskema.ID { return &r.MessageID }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(r *MessageReactionRemove) *chatskema.Optional[chatskema.ID] { return &r.GuildID }),
		dsl.Req("emoji", dsl.Record(EmojiSchema), func(r *MessageReactionRemove) *Emoji { return &r.Emoji }),
		dsl.Opt("burst", dsl.Bool(), func(r *MessageReactionRemove) *chatskema.Optional[bool] { return &r.Burst }),
		dsl.Opt("type", dsl.Int(), func(r *MessageReactionRemove) *chatskema.Optional[int] { return &r.Type }),
	).
	MustBuild()

// ChannelPinsUpdate is sent when a message is pinned or unpinned.
// LastPinTimestamp is null when the channel no longer has pins.
type ChannelPinsUpdate struct {
	GuildID          chatskema.Optional[chatskema.ID]
	ChannelID        chatskema.ID
	LastPinTimestamp chatskema.Optional[time.Time]
}

var ChannelPinsUpdateSchema = dsl.Object[ChannelPinsUpdate]("ChannelPinsUpdate").
	Fields(
		dsl.Opt("guild_id", dsl.Snowflake(), func(c *ChannelPinsUpdate) *chatskema.Optional[chatskema.ID] { return &c.GuildID }),
		dsl.Req("channel_id", dsl.Snowflake(), func(c *ChannelPinsUpdate) *chatskema.ID { return &c.ChannelID }),
		dsl.Nullable("last_pin_timestamp", dsl.Timestamp(),
			func(c *ChannelPinsUpdate) *chatskema.Optional[time.Time] { return &c.LastPinTimestamp }),
	).
	MustBuild()

// TypingStart is sent when a user starts typing. Timestamp is in unix seconds.
type TypingStart struct {
	ChannelID chatskema.ID
	GuildID   chatskema.Optional[chatskema.ID]
	UserID    chatskema.ID
	Timestamp int64
	Member    chatskema.Optional[Member]
}

// Time returns Timestamp as a time.Time in UTC.
func (t TypingStart) Time() time.Time { return time.Unix(t.Timestamp, 0).UTC() }

var TypingStartSchema = dsl.Object[TypingStart]("TypingStart").
	Fields(
		dsl.Req("channel_id", dsl.Snowflake(), func(t *TypingStart) *chatskema.ID { return &t.ChannelID }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(t *TypingStart) *chatskema.Optional[chatskema.ID] { return &t.GuildID }),
		dsl.Req("user_id", dsl.Snowflake(), func(t *TypingStart) *chatskema.ID { return &t.UserID }),
		dsl.Req("timestamp", dsl.IntOf[int64](), func(t *TypingStart) *int64 { return &t.Timestamp }),
		dsl.Opt("member", dsl.Record(MemberSchema), func(t *TypingStart) *chatskema.Optional[Member] { return &t.Member }),
	).
	MustBuild()

// InteractionData is the data of an interaction; its shape depends on the
// interaction type. The concrete types are ApplicationCommandData,
// MessageComponentData, ModalSubmitData and UnknownInteractionData.
type InteractionData interface {
	InteractionType() InteractionType
}

// CommandOption is an option value passed to an application command.
// Subcommands carry nested Options instead of a Value.
type CommandOption struct {
	Name    string
	Type    int
	Value   chatskema.Optional[any]
	Options chatskema.Optional[[]CommandOption]
	Focused chatskema.Optional[bool]
}

// selfOption resolves nested subcommand options.
var selfOption *dsl.Schema[CommandOption]

var CommandOptionSchema = dsl.Object[CommandOption]("CommandOption").
	Fields(
		dsl.Req("name", dsl.String(), func(o *CommandOption) *string { return &o.Name }),
		dsl.Req("type", dsl.Int(), func(o *CommandOption) *int { return &o.Type }),
		dsl.Opt("value", dsl.Raw(), func(o *CommandOption) *chatskema.Optional[any] { return &o.Value }),
		dsl.Opt("options", dsl.ArrayOf(dsl.Lazy(func() dsl.Type[CommandOption] { return selfOption })),
			func(o *CommandOption) *chatskema.Optional[[]CommandOption] { return &o.Options }),
		dsl.Opt("focused", dsl.Bool(), func(o *CommandOption) *chatskema.Optional[bool] { return &o.Focused }),
	).
	MustBuild()

// ApplicationCommandData is the data of slash, user and message commands and
// of autocomplete requests.
type ApplicationCommandData struct {
	ID       chatskema.ID
	Name     string
	Type     int
	Options  chatskema.Optional[[]CommandOption]
	GuildID  chatskema.Optional[chatskema.ID]
	TargetID chatskema.Optional[chatskema.ID]
}

func (ApplicationCommandData) InteractionType() InteractionType { return InteractionApplicationCommand }

var ApplicationCommandDataSchema = dsl.Object[ApplicationCommandData]("ApplicationCommandData").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(d *ApplicationCommandData) *chatskema.ID { return &d.ID }),
		dsl.Req("name", dsl.String(), func(d *ApplicationCommandData) *string { return &d.Name }),
		dsl.Req("type", dsl.Int(), func(d *ApplicationCommandData) *int { return &d.Type }),
		dsl.Opt("options", dsl.ArrayOf(dsl.Record(CommandOptionSchema)),
			func(d *ApplicationCommandData) *chatskema.Optional[[]CommandOption] { return &d.Options }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(d *ApplicationCommandData) *chatskema.Optional[chatskema.ID] { return &d.GuildID }),
		dsl.Opt("target_id", dsl.Snowflake(), func(d *ApplicationCommandData) *chatskema.Optional[chatskema.ID] { return &d.TargetID }),
	).
	MustBuild()

// MessageComponentData is the data of a button click or select.
type MessageComponentData struct {
	CustomID      string
	ComponentType ComponentType
	Values        chatskema.Optional[[]string]
}

func (MessageComponentData) InteractionType() InteractionType { return InteractionMessageComponent }

var MessageComponentDataSchema = dsl.Object[MessageComponentData]("MessageComponentData").
	Fields(
		dsl.Req("custom_id", dsl.String(), func(d *MessageComponentData) *string { return &d.CustomID }),
		dsl.Req("component_type", dsl.IntOf[ComponentType](), func(d *MessageComponentData) *ComponentType { return &d.ComponentType }),
		dsl.Opt("values", dsl.ArrayOf(dsl.String()), func(d *MessageComponentData) *chatskema.Optional[[]string] { return &d.Values }),
	).
	MustBuild()

// ModalSubmitData is the data of a submitted modal.
type ModalSubmitData struct {
	CustomID   string
	Components []Component
}

func (ModalSubmitData) InteractionType() InteractionType { return InteractionModalSubmit }

var ModalSubmitDataSchema = dsl.Object[ModalSubmitData]("ModalSubmitData").
	Fields(
		dsl.Req("custom_id", dsl.String(), func(d *ModalSubmitData) *string { return &d.CustomID }),
		dsl.Req("components", dsl.ArrayOf[Component](ComponentUnion), func(d *ModalSubmitData) *[]Component { return &d.Components }),
	).
	MustBuild()

// UnknownInteractionData keeps the data of an interaction type this package
// does not know.
type UnknownInteractionData struct {
	Kind InteractionType
	Raw  *wire.Object
}

func (d UnknownInteractionData) InteractionType() InteractionType { return d.Kind }

// InteractionDataUnion selects the data shape from the type key of the
// enclosing interaction.
var InteractionDataUnion = dsl.SiblingUnion[InteractionData]("type",
	dsl.Case[InteractionData](strconv.Itoa(int(InteractionApplicationCommand)), ApplicationCommandDataSchema),
	dsl.Case[InteractionData](strconv.Itoa(int(InteractionMessageComponent)), MessageComponentDataSchema),
	dsl.Case[InteractionData](strconv.Itoa(int(InteractionApplicationCommandAutocomplete)), ApplicationCommandDataSchema),
	dsl.Case[InteractionData](strconv.Itoa(int(InteractionModalSubmit)), ModalSubmitDataSchema),
).
	NumericTag().
	Fallback(
		func(t string, raw *wire.Object) InteractionData {
			n, _ := strconv.Atoi(t)
			return UnknownInteractionData{Kind: InteractionType(n), Raw: raw}
		},
		func(d InteractionData) (*wire.Object, bool) {
			u, ok := d.(UnknownInteractionData)
			if !ok || u.Raw == nil {
				return nil, false
			}
			return u.Raw, true
		},
	)

// InteractionCreate is sent when a user uses an application command or a
// message component.
type InteractionCreate struct {
	ID             chatskema.ID
	ApplicationID  chatskema.ID
	Type           InteractionType
	Data           chatskema.Optional[InteractionData]
	GuildID        chatskema.Optional[chatskema.ID]
	ChannelID      chatskema.Optional[chatskema.ID]
	Member         chatskema.Optional[Member]
	User           chatskema.Optional[User]
	Token          string
	Version        int
	Message        chatskema.Optional[Message]
	AppPermissions chatskema.Optional[string]
	Locale         chatskema.Optional[string]
	GuildLocale    chatskema.Optional[string]
}

// Invoker returns the user behind the interaction: the member's user in
// guilds, the user field in DMs.
func (i InteractionCreate) Invoker() (User, bool) {
	if m, ok := i.Member.Get(); ok {
		if u, ok := m.User.Get(); ok {
			return u, true
		}
	}
	return i.User.Get()
}

var InteractionCreateSchema = dsl.Object[InteractionCreate]("InteractionCreate").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(i *InteractionCreate) *chatskema.ID { return &i.ID }),
		dsl.Req("application_id", dsl.Snowflake(), func(i *InteractionCreate) *chatskema.ID { return &i.ApplicationID }),
		dsl.Req("type", dsl.IntOf[InteractionType](), func(i *InteractionCreate) *InteractionType { return &i.Type }),
		dsl.Opt("data", InteractionDataUnion, func(i *InteractionCreate) *chatskema.Optional[InteractionData] { return &i.Data }),
		dsl.Opt("guild_id", dsl.Snowflake(), func(i *InteractionCreate) *chatskema.Optional[chatskema.ID] { return &i.GuildID }),
		dsl.Opt("channel_id", dsl.Snowflake(), func(i *InteractionCreate) *chatskema.Optional[chatskema.ID] { return &i.ChannelID }),
		dsl.Opt("member", dsl.Record(MemberSchema), func(i *InteractionCreate) *chatskema.Optional[Member] { return &i.Member }),
		dsl.Opt("user", dsl.Record(UserSchema), func(i *InteractionCreate) *chatskema.Optional[User] { return &i.User }),
		dsl.Req("token", dsl.String(), func(i *InteractionCreate) *string { return &i.Token }),
		dsl.Req("version", dsl.Int(), func(i *InteractionCreate) *int { return &i.Version }),
		dsl.Opt("message", dsl.Record(MessageSchema), func(i *InteractionCreate) *chatskema.Optional[Message] { return &i.Message }),
		dsl.Opt("app_permissions", dsl.String(), func(i *InteractionCreate) *chatskema.Optional[string] { return &i.AppPermissions }),
		dsl.Opt("locale", dsl.String(), func(i *InteractionCreate) *chatskema.Optional[string] { return &i.Locale }),
		dsl.Opt("guild_locale", dsl.String(), func(i *InteractionCreate) *chatskema.Optional[string] { return &i.GuildLocale }),
	).
	MustBuild()

func init() { selfOption = CommandOptionSchema }
