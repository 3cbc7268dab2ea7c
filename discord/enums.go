package discord

// MessageType is the type of a message.
type MessageType int

const (
	MessageTypeDefault                  MessageType = 0
	MessageTypeRecipientAdd             MessageType = 1
	MessageTypeRecipientRemove          MessageType = 2
	MessageTypeCall                     MessageType = 3
	MessageTypeChannelNameChange        MessageType = 4
	MessageTypeChannelIconChange        MessageType = 5
	MessageTypeChannelPinnedMessage     MessageType = 6
	MessageTypeUserJoin                 MessageType = 7
	MessageTypeReply                    MessageType = 19
	MessageTypeChatInputCommand         MessageType = 20
	MessageTypeThreadStarterMessage     MessageType = 21
	MessageTypeContextMenuCommand       MessageType = 23
	MessageTypeAutoModerationAction     MessageType = 24
	MessageTypeInteractionPremiumUpsell MessageType = 26
)

// MessageFlags is a bit set of message flags.
type MessageFlags int

const (
	MessageFlagCrossposted           MessageFlags = 1 << 0
	MessageFlagIsCrosspost           MessageFlags = 1 << 1
	MessageFlagSuppressEmbeds        MessageFlags = 1 << 2
	MessageFlagUrgent                MessageFlags = 1 << 4
	MessageFlagHasThread             MessageFlags = 1 << 5
	MessageFlagEphemeral             MessageFlags = 1 << 6
	MessageFlagLoading               MessageFlags = 1 << 7
	MessageFlagSuppressNotifications MessageFlags = 1 << 12
	MessageFlagIsVoiceMessage        MessageFlags = 1 << 13
)

// Has reports whether every bit of f is set.
func (m MessageFlags) Has(f MessageFlags) bool { return m&f == f }

// InteractionType is the type of an interaction.
type InteractionType int

const (
	InteractionPing                           InteractionType = 1
	InteractionApplicationCommand             InteractionType = 2
	InteractionMessageComponent               InteractionType = 3
	InteractionApplicationCommandAutocomplete InteractionType = 4
	InteractionModalSubmit                    InteractionType = 5
)

// ComponentType is the type of a message component.
type ComponentType int

const (
	ComponentActionRow    ComponentType = 1
	ComponentButton       ComponentType = 2
	ComponentStringSelect ComponentType = 3
	ComponentTextInput    ComponentType = 4
)

// ButtonStyle is the style of a button component.
type ButtonStyle int

const (
	ButtonPrimary   ButtonStyle = 1
	ButtonSecondary ButtonStyle = 2
	ButtonSuccess   ButtonStyle = 3
	ButtonDanger    ButtonStyle = 4
	ButtonLink      ButtonStyle = 5
)

// TextInputStyle is the style of a text input component.
type TextInputStyle int

const (
	TextInputShort     TextInputStyle = 1
	TextInputParagraph TextInputStyle = 2
)

// EmbedType is the type of an embed. Always "rich" for webhook and bot embeds.
type EmbedType string

const (
	EmbedTypeRich    EmbedType = "rich"
	EmbedTypeImage   EmbedType = "image"
	EmbedTypeVideo   EmbedType = "video"
	EmbedTypeGifv    EmbedType = "gifv"
	EmbedTypeArticle EmbedType = "article"
	EmbedTypeLink    EmbedType = "link"
)

// GatewayOpcode is the op field of a gateway payload.
type GatewayOpcode int

const (
	OpDispatch            GatewayOpcode = 0
	OpHeartbeat           GatewayOpcode = 1
	OpIdentify            GatewayOpcode = 2
	OpPresenceUpdate      GatewayOpcode = 3
	OpVoiceStateUpdate    GatewayOpcode = 4
	OpResume              GatewayOpcode = 6
	OpReconnect           GatewayOpcode = 7
	OpRequestGuildMembers GatewayOpcode = 8
	OpInvalidSession      GatewayOpcode = 9
	OpHello               GatewayOpcode = 10
	OpHeartbeatAck        GatewayOpcode = 11
)
