package discord

import (
	"time"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/dsl"
)

// Attachment is a file attached to a message.
type Attachment struct {
	ID           chatskema.ID
	Filename     string
	Description  chatskema.Optional[string]
	ContentType  chatskema.Optional[string]
	Size         int
	URL          string
	ProxyURL     string
	Height       chatskema.Optional[int]
	Width        chatskema.Optional[int]
	Ephemeral    chatskema.Optional[bool]
	DurationSecs chatskema.Optional[float64]
	Waveform     chatskema.Optional[string]
	Flags        chatskema.Optional[int]
}

var AttachmentSchema = dsl.Object[Attachment]("Attachment").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(a *Attachment) *chatskema.ID { return &a.ID }),
		dsl.Req("filename", dsl.String(), func(a *Attachment) *string { return &a.Filename }),
		dsl.Opt("description", dsl.String(), func(a *Attachment) *chatskema.Optional[string] { return &a.Description }),
		dsl.Opt("content_type", dsl.String(), func(a *Attachment) *chatskema.Optional[string] { return &a.ContentType }),
		dsl.Req("size", dsl.Int(), func(a *Attachment) *int { return &a.Size }),
		dsl.Req("url", dsl.String(), func(a *Attachment) *string { return &a.URL }),
		dsl.Req("proxy_url", dsl.String(), func(a *Attachment) *string { return &a.ProxyURL }),
		dsl.Nullable("height", dsl.Int(), func(a *Attachment) *chatskema.Optional[int] { return &a.Height }),
		dsl.Nullable("width", dsl.Int(), func(a *Attachment) *chatskema.Optional[int] { return &a.Width }),
		dsl.Opt("ephemeral", dsl.Bool(), func(a *Attachment) *chatskema.Optional[bool] { return &a.Ephemeral }),
		dsl.Opt("duration_secs", dsl.Float(), func(a *Attachment) *chatskema.Optional[float64] { return &a.DurationSecs }),
		dsl.Opt("waveform", dsl.String(), func(a *Attachment) *chatskema.Optional[string] { return &a.Waveform }),
		dsl.Opt("flags", dsl.Int(), func(a *Attachment) *chatskema.Optional[int] { return &a.Flags }),
	).
	MustBuild()

// EmbedFooter is the footer of an embed.
type EmbedFooter struct {
	Text         string
	IconURL      chatskema.Optional[string]
	ProxyIconURL chatskema.Optional[string]
}

var EmbedFooterSchema = dsl.Object[EmbedFooter]("EmbedFooter").
	Fields(
		dsl.Req("text", dsl.String(), func(f *EmbedFooter) *string { return &f.Text }),
		dsl.Opt("icon_url", dsl.String(), func(f *EmbedFooter) *chatskema.Optional[string] { return &f.IconURL }),
		dsl.Opt("proxy_icon_url", dsl.String(), func(f *EmbedFooter) *chatskema.Optional[string] { return &f.ProxyIconURL }),
	).
	MustBuild()

// EmbedMedia is an embed image, thumbnail or video.
type EmbedMedia struct {
	URL      string
	ProxyURL chatskema.Optional[string]
	Height   chatskema.Optional[int]
	Width    chatskema.Optional[int]
}

var EmbedMediaSchema = dsl.Object[EmbedMedia]("EmbedMedia").
	Fields(
		dsl.Req("url", dsl.String(), func(m *EmbedMedia) *string { return &m.URL }),
		dsl.Opt("proxy_url", dsl.String(), func(m *EmbedMedia) *chatskema.Optional[string] { return &m.ProxyURL }),
		dsl.Opt("height", dsl.Int(), func(m *EmbedMedia) *chatskema.Optional[int] { return &m.Height }),
		dsl.Opt("width", dsl.Int(), func(m *EmbedMedia) *chatskema.Optional[int] { return &m.Width }),
	).
	MustBuild()

// EmbedProvider is the provider of an embed.
type EmbedProvider struct {
	Name chatskema.Optional[string]
	URL  chatskema.Optional[string]
}

var EmbedProviderSchema = dsl.Object[EmbedProvider]("EmbedProvider").
	Fields(
		dsl.Opt("name", dsl.String(), func(p *EmbedProvider) *chatskema.Optional[string] { return &p.Name }),
		dsl.Opt("url", dsl.String(), func(p *EmbedProvider) *chatskema.Optional[string] { return &p.URL }),
	).
	MustBuild()

// EmbedAuthor is the author of an embed.
type EmbedAuthor struct {
	Name         string
	URL          chatskema.Optional[string]
	IconURL      chatskema.Optional[string]
	ProxyIconURL chatskema.Optional[string]
}

var EmbedAuthorSchema = dsl.Object[EmbedAuthor]("EmbedAuthor").
	Fields(
		dsl.Req("name", dsl.String(), func(a *EmbedAuthor) *string { return &a.Name }),
		dsl.Opt("url", dsl.String(), func(a *EmbedAuthor) *chatskema.Optional[string] { return &a.URL }),
		dsl.Opt("icon_url", dsl.String(), func(a *EmbedAuthor) *chatskema.Optional[string] { return &a.IconURL }),
		dsl.Opt("proxy_icon_url", dsl.String(), func(a *EmbedAuthor) *chatskema.Optional[string] { return &a.ProxyIconURL }),
	).
	MustBuild()

// EmbedField is one name/value pair of an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline chatskema.Optional[bool]
}

var EmbedFieldSchema = dsl.Object[EmbedField]("EmbedField").
	Fields(
		dsl.Req("name", dsl.String(), func(f *EmbedField) *string { return &f.Name }),
		dsl.Req("value", dsl.String(), func(f *EmbedField) *string { return &f.Value }),
		dsl.Opt("inline", dsl.Bool(), func(f *EmbedField) *chatskema.Optional[bool] { return &f.Inline }),
	).
	MustBuild()

// Embed is rich content attached to a message. Every field is optional.
type Embed struct {
	Title       chatskema.Optional[string]
	Type        chatskema.Optional[EmbedType]
	Description chatskema.Optional[string]
	URL         chatskema.Optional[string]
	Timestamp   chatskema.Optional[time.Time]
	Color       chatskema.Optional[int]
	Footer      chatskema.Optional[EmbedFooter]
	Image       chatskema.Optional[EmbedMedia]
	Thumbnail   chatskema.Optional[EmbedMedia]
	Video       chatskema.Optional[EmbedMedia]
	Provider    chatskema.Optional[EmbedProvider]
	Author      chatskema.Optional[EmbedAuthor]
	Fields      chatskema.Optional[[]EmbedField]
}

var EmbedSchema = dsl.Object[Embed]("Embed").
	Fields(
		dsl.Opt("title", dsl.String(), func(e *Embed) *chatskema.Optional[string] { return &e.Title }),
		dsl.Opt("type", dsl.StringOf[EmbedType](), func(e *Embed) *chatskema.Optional[EmbedType] { return &e.Type }),
		dsl.Opt("description", dsl.String(), func(e *Embed) *chatskema.Optional[string] { return &e.Description }),
		dsl.Opt("url", dsl.String(), func(e *Embed) *chatskema.Optional[string] { return &e.URL }),
		dsl.Opt("timestamp", dsl.Timestamp(), func(e *Embed) *chatskema.Optional[time.Time] { return &e.Timestamp }),
		dsl.Opt("color", dsl.Int(), func(e *Embed) *chatskema.Optional[int] { return &e.Color }),
		dsl.Opt("footer", dsl.Record(EmbedFooterSchema), func(e *Embed) *chatskema.Optional[EmbedFooter] { return &e.Footer }),
		dsl.Opt("image", dsl.Record(EmbedMediaSchema), func(e *Embed) *chatskema.Optional[EmbedMedia] { return &e.Image }),
		dsl.Opt("thumbnail", dsl.Record(EmbedMediaSchema), func(e *Embed) *chatskema.Optional[EmbedMedia] { return &e.Thumbnail }),
		dsl.Opt("video", dsl.Record(EmbedMediaSchema), func(e *Embed) *chatskema.Optional[EmbedMedia] { return &e.Video }),
		dsl.Opt("provider", dsl.Record(EmbedProviderSchema), func(e *Embed) *chatskema.Optional[EmbedProvider] { return &e.Provider }),
		dsl.Opt("author", dsl.Record(EmbedAuthorSchema), func(e *Embed) *chatskema.Optional[EmbedAuthor] { return &e.Author }),
		dsl.Opt("fields", dsl.ArrayOf(dsl.Record(EmbedFieldSchema)), func(e *Embed) *chatskema.Optional[[]EmbedField] { return &e.Fields }),
	).
	MustBuild()
