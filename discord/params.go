package discord

import (
	"strings"

	"github.com/google/uuid"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/dsl"
)

// MaxNonceLength is the longest nonce Discord accepts.
const MaxNonceLength = 25

// NewNonce returns a random nonce for CreateMessageParams.Nonce.
func NewNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:MaxNonceLength]
}

// AllowedMentions restricts which mentions in a message notify anyone.
type AllowedMentions struct {
	Parse       chatskema.Optional[[]string]
	Roles       chatskema.Optional[[]chatskema.ID]
	Users       chatskema.Optional[[]chatskema.ID]
	RepliedUser chatskema.Optional[bool]
}

var AllowedMentionsSchema = dsl.Object[AllowedMentions]("AllowedMentions").
	Fields(
		dsl.Opt("parse", dsl.ArrayOf(dsl.String()), func(a *AllowedMentions) *chatskema.Optional[[]string] { return &a.Parse }),
		dsl.Opt("roles", dsl.ArrayOf(dsl.Snowflake()), func(a *AllowedMentions) *chatskema.Optional[[]chatskema.ID] { return &a.Roles }),
		dsl.Opt("users", dsl.ArrayOf(dsl.Snowflake()), func(a *AllowedMentions) *chatskema.Optional[[]chatskema.ID] { return &a.Users }),
		dsl.Opt("replied_user", dsl.Bool(), func(a *AllowedMentions) *chatskema.Optional[bool] { return &a.RepliedUser }),
	).
	Strict().
	MustBuild()

// CreateMessageParams is the body of a create-message request.
type CreateMessageParams struct {
	Content          chatskema.Optional[string]
	Nonce            chatskema.Optional[string]
	TTS              chatskema.Optional[bool]
	Embeds           chatskema.Optional[[]Embed]
	AllowedMentions  chatskema.Optional[AllowedMentions]
	MessageReference chatskema.Optional[MessageReference]
	Components       chatskema.Optional[[]Component]
	StickerIDs       chatskema.Optional[[]chatskema.ID]
	Flags            chatskema.Optional[MessageFlags]
	EnforceNonce     chatskema.Optional[bool]
}

var CreateMessageParamsSchema = dsl.Object[CreateMessageParams]("CreateMessageParams").
	Fields(
		dsl.Opt("content", dsl.String(), func(p *CreateMessageParams) *chatskema.Optional[string] { return &p.Content }),
		dsl.Opt("nonce", dsl.String(), func(p *CreateMessageParams) *chatskema.Optional[string] { return &p.Nonce }),
		dsl.Opt("tts", dsl.Bool(), func(p *CreateMessageParams) *chatskema.Optional[bool] { return &p.TTS }),
		dsl.Opt("embeds", dsl.ArrayOf(dsl.Record(EmbedSchema)), func(p *CreateMessageParams) *chatskema.Optional[[]Embed] { return &p.Embeds }),
		dsl.Opt("allowed_mentions", dsl.Record(AllowedMentionsSchema),
			func(p *CreateMessageParams) *chatskema.Optional[AllowedMentions] { return &p.AllowedMentions }),
		dsl.Opt("message_reference", dsl.Record(MessageReferenceSchema),
			func(p *CreateMessageParams) *chatskema.Optional[MessageReference] { return &p.MessageReference }),
		dsl.Opt("components", dsl.ArrayOf[Component](ComponentUnion),
			func(p *CreateMessageParams) *chatskema.Optional[[]Component] { return &p.Components }),
		dsl.Opt("sticker_ids", dsl.ArrayOf(dsl.Snowflake()),
			func(p *CreateMessageParams) *chatskema.Optional[[]chatskema.ID] { return &p.StickerIDs }),
		dsl.Opt("flags", dsl.IntOf[MessageFlags](), func(p *CreateMessageParams) *chatskema.Optional[MessageFlags] { return &p.Flags }),
		dsl.Opt("enforce_nonce", dsl.Bool(), func(p *CreateMessageParams) *chatskema.Optional[bool] { return &p.EnforceNonce }),
	).
	Strict().
	MustBuild()

// EditMessageParams is the body of an edit-message request. Every field is a
// partial update: absent leaves the value unchanged, null clears it.
type EditMessageParams struct {
	Content         chatskema.Optional[string]
	Embeds          chatskema.Optional[[]Embed]
	Flags           chatskema.Optional[MessageFlags]
	AllowedMentions chatskema.Optional[AllowedMentions]
	Components      chatskema.Optional[[]Component]
	Attachments     chatskema.Optional[[]Attachment]
}

var EditMessageParamsSchema = dsl.Object[EditMessageParams]("EditMessageParams").
	Fields(
		dsl.Nullable("content", dsl.String(), func(p *EditMessageParams) *chatskema.Optional[string] { return &p.Content }),
		dsl.Nullable("embeds", dsl.ArrayOf(dsl.Record(EmbedSchema)), func(p *EditMessageParams) *chatskema.Optional[[]Embed] { return &p.Embeds }),
		dsl.Nullable("flags", dsl.IntOf[MessageFlags](), func(p *EditMessageParams) *chatskema.Optional[MessageFlags] { return &p.Flags }),
		dsl.Nullable("allowed_mentions", dsl.Record(AllowedMentionsSchema),
			func(p *EditMessageParams) *chatskema.Optional[AllowedMentions] { return &p.AllowedMentions }),
		dsl.Nullable("components", dsl.ArrayOf[Component](ComponentUnion),
			func(p *EditMessageParams) *chatskema.Optional[[]Component] { return &p.Components }),
		dsl.Nullable("attachments", dsl.ArrayOf(dsl.Record(AttachmentSchema)),
			func(p *EditMessageParams) *chatskema.Optional[[]Attachment] { return &p.Attachments }),
	).
	Strict().
	MustBuild()
