// Package dgo converts decoded Discord records into github.com/bwmarrin/discordgo
// values, so payloads checked by chatskema can be handed to bots written
// against discordgo.
//
// The conversion is lossy where discordgo is: discordgo has no absent or null
// states, so both become the zero value, and components discordgo does not
// model are dropped.
package dgo

import (
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/codec"
	"github.com/reoring/chatskema/discord"
)

// Message converts a decoded message. A referenced message is converted
// recursively.
func Message(m discord.Message) *discordgo.Message {
	out := &discordgo.Message{
		ID:              m.ID.String(),
		ChannelID:       m.ChannelID.String(),
		GuildID:         idOr(m.GuildID),
		Content:         m.Content,
		Timestamp:       m.Timestamp,
		EditedTimestamp: timePtr(m.EditedTimestamp),
		MentionRoles:    ids(m.MentionRoles),
		TTS:             m.TTS,
		MentionEveryone: m.MentionEveryone,
		Author:          User(m.Author),
		Pinned:          m.Pinned,
		Type:            discordgo.MessageType(m.Type),
		WebhookID:       idOr(m.WebhookID),
		Flags:           discordgo.MessageFlags(m.Flags.Or(0)),
	}
	for _, a := range m.Attachments {
		out.Attachments = append(out.Attachments, Attachment(a))
	}
	for _, e := range m.Embeds {
		out.Embeds = append(out.Embeds, Embed(e))
	}
	for _, u := range m.Mentions {
		out.Mentions = append(out.Mentions, User(u))
	}
	if rs, ok := m.Reactions.Get(); ok {
		for _, r := range rs {
			out.Reactions = append(out.Reactions, &discordgo.MessageReactions{Count: r.Count, Me: r.Me, Emoji: Emoji(r.Emoji)})
		}
	}
	if mem, ok := m.Member.Get(); ok {
		out.Member = Member(mem)
	}
	if ref, ok := m.MessageReference.Get(); ok {
		out.MessageReference = Reference(ref)
	}
	if ref, ok := m.ReferencedMessage.Get(); ok && ref != nil {
		out.ReferencedMessage = Message(*ref)
	}
	if md, ok := m.InteractionMetadata.Get(); ok {
		out.InteractionMetadata = InteractionMetadata(md)
	}
	if legacy, ok := m.Interaction.Get(); ok {
		out.Interaction = &discordgo.MessageInteraction{
			ID:   legacy.ID.String(),
			Type: discordgo.InteractionType(legacy.Type),
			Name: legacy.Name,
			User: User(legacy.User),
		}
		if mem, ok := legacy.Member.Get(); ok {
			out.Interaction.Member = Member(mem)
		}
	}
	if cs, ok := m.Components.Get(); ok {
		out.Components = Components(cs)
	}
	return out
}

// User converts a user.
func User(u discord.User) *discordgo.User {
	return &discordgo.User{
		ID:            u.ID.String(),
		Username:      u.Username,
		Discriminator: u.Discriminator,
		GlobalName:    u.GlobalName.Or(""),
		Avatar:        u.Avatar.Or(""),
		Bot:           u.Bot.Or(false),
		System:        u.System.Or(false),
		PublicFlags:   discordgo.UserFlags(u.PublicFlags.Or(0)),
	}
}

// Member converts a guild member. Permissions that do not parse as an
// integer are left at zero.
func Member(m discord.Member) *discordgo.Member {
	out := &discordgo.Member{
		JoinedAt:                   m.JoinedAt,
		Nick:                       m.Nick.Or(""),
		Deaf:                       m.Deaf,
		Mute:                       m.Mute,
		Avatar:                     m.Avatar.Or(""),
		Roles:                      ids(m.Roles),
		PremiumSince:               timePtr(m.PremiumSince),
		Flags:                      discordgo.MemberFlags(m.Flags.Or(0)),
		Pending:                    m.Pending.Or(false),
		CommunicationDisabledUntil: timePtr(m.CommunicationDisabledUntil),
	}
	if u, ok := m.User.Get(); ok {
		out.User = User(u)
	}
	if p, ok := m.Permissions.Get(); ok {
		out.Permissions, _ = strconv.ParseInt(p, 10, 64)
	}
	return out
}

// Attachment converts an attachment.
func Attachment(a discord.Attachment) *discordgo.MessageAttachment {
	return &discordgo.MessageAttachment{
		ID:           a.ID.String(),
		URL:          a.URL,
		ProxyURL:     a.ProxyURL,
		Filename:     a.Filename,
		ContentType:  a.ContentType.Or(""),
		Width:        a.Width.Or(0),
		Height:       a.Height.Or(0),
		Size:         a.Size,
		Ephemeral:    a.Ephemeral.Or(false),
		DurationSecs: a.DurationSecs.Or(0),
		Waveform:     a.Waveform.Or(""),
		Flags:        discordgo.MessageAttachmentFlags(a.Flags.Or(0)),
	}
}

// Embed converts an embed. The timestamp keeps the wire layout.
func Embed(e discord.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		URL:         e.URL.Or(""),
		Type:        discordgo.EmbedType(e.Type.Or("")),
		Title:       e.Title.Or(""),
		Description: e.Description.Or(""),
		Color:       e.Color.Or(0),
	}
	if ts, ok := e.Timestamp.Get(); ok {
		out.Timestamp = codec.FormatTimestamp(ts)
	}
	if f, ok := e.Footer.Get(); ok {
		out.Footer = &discordgo.MessageEmbedFooter{Text: f.Text, IconURL: f.IconURL.Or(""), ProxyIconURL: f.ProxyIconURL.Or("")}
	}
	if m, ok := e.Image.Get(); ok {
		out.Image = &discordgo.MessageEmbedImage{URL: m.URL, ProxyURL: m.ProxyURL.Or(""), Width: m.Width.Or(0), Height: m.Height.Or(0)}
	}
	if m, ok := e.Thumbnail.Get(); ok {
		out.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: m.URL, ProxyURL: m.ProxyURL.Or(""), Width: m.Width.Or(0), Height: m.Height.Or(0)}
	}
	if m, ok := e.Video.Get(); ok {
		out.Video = &discordgo.MessageEmbedVideo{URL: m.URL, Width: m.Width.Or(0), Height: m.Height.Or(0)}
	}
	if p, ok := e.Provider.Get(); ok {
		out.Provider = &discordgo.MessageEmbedProvider{URL: p.URL.Or(""), Name: p.Name.Or("")}
	}
	if a, ok := e.Author.Get(); ok {
		out.Author = &discordgo.MessageEmbedAuthor{URL: a.URL.Or(""), Name: a.Name, IconURL: a.IconURL.Or(""), ProxyIconURL: a.ProxyIconURL.Or("")}
	}
	if fs, ok := e.Fields.Get(); ok {
		for _, f := range fs {
			out.Fields = append(out.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline.Or(false)})
		}
	}
	return out
}

// Emoji converts a reaction emoji.
func Emoji(e discord.Emoji) *discordgo.Emoji {
	return &discordgo.Emoji{ID: idOr(e.ID), Name: e.Name.Or(""), Animated: e.Animated.Or(false)}
}

// Reference converts a message reference.
func Reference(r discord.MessageReference) *discordgo.MessageReference {
	return &discordgo.MessageReference{
		Type:            discordgo.MessageReferenceType(r.Type.Or(0)),
		MessageID:       idOr(r.MessageID),
		ChannelID:       idOr(r.ChannelID),
		GuildID:         idOr(r.GuildID),
		FailIfNotExists: r.FailIfNotExists.Ptr(),
	}
}

// InteractionMetadata converts interaction metadata. Owner keys that are not
// integration type numbers are skipped.
func InteractionMetadata(md discord.InteractionMetadata) *discordgo.MessageInteractionMetadata {
	out := &discordgo.MessageInteractionMetadata{
		ID:                        md.ID.String(),
		Type:                      discordgo.InteractionType(md.Type),
		User:                      User(md.User),
		OriginalResponseMessageID: idOr(md.OriginalResponseMessageID),
		InteractedMessageID:       idOr(md.InteractedMessageID),
	}
	if owners, ok := md.AuthorizingIntegrationOwners.Get(); ok && owners != nil {
		out.AuthorizingIntegrationOwners = make(map[discordgo.ApplicationIntegrationType]string, owners.Len())
		owners.Range(func(k string, v any) bool {
			n, err := strconv.ParseUint(k, 10, 32)
			s, isString := v.(string)
			if err == nil && isString {
				out.AuthorizingIntegrationOwners[discordgo.ApplicationIntegrationType(n)] = s
			}
			return true
		})
	}
	return out
}

// Components converts message components, dropping those discordgo does not
// model.
func Components(cs []discord.Component) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(cs))
	for _, c := range cs {
		if mc, ok := component(c); ok {
			out = append(out, mc)
		}
	}
	return out
}

func component(c discord.Component) (discordgo.MessageComponent, bool) {
	switch v := c.(type) {
	case discord.ActionRow:
		return discordgo.ActionsRow{Components: Components(v.Components)}, true
	case discord.Button:
		return discordgo.Button{
			Label:    v.Label.Or(""),
			Style:    discordgo.ButtonStyle(v.Style),
			Disabled: v.Disabled.Or(false),
			Emoji:    componentEmoji(v.Emoji),
			URL:      v.URL.Or(""),
			CustomID: v.CustomID.Or(""),
		}, true
	case discord.StringSelect:
		sm := discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    v.CustomID,
			Placeholder: v.Placeholder.Or(""),
			MinValues:   v.MinValues.Ptr(),
			MaxValues:   v.MaxValues.Or(0),
			Disabled:    v.Disabled.Or(false),
		}
		for _, o := range v.Options {
			sm.Options = append(sm.Options, discordgo.SelectMenuOption{
				Label:       o.Label,
				Value:       o.Value,
				Description: o.Description.Or(""),
				Emoji:       componentEmoji(o.Emoji),
				Default:     o.Default.Or(false),
			})
		}
		return sm, true
	case discord.TextInput:
		return discordgo.TextInput{
			CustomID:    v.CustomID,
			Label:       v.Label,
			Style:       discordgo.TextInputStyle(v.Style),
			Placeholder: v.Placeholder.Or(""),
			Value:       v.Value.Or(""),
			Required:    v.Required.Or(false),
			MinLength:   v.MinLength.Or(0),
			MaxLength:   v.MaxLength.Or(0),
		}, true
	}
	return nil, false
}

func componentEmoji(o chatskema.Optional[discord.Emoji]) *discordgo.ComponentEmoji {
	e, ok := o.Get()
	if !ok {
		return nil
	}
	return &discordgo.ComponentEmoji{Name: e.Name.Or(""), ID: idOr(e.ID), Animated: e.Animated.Or(false)}
}

func idOr(o chatskema.Optional[chatskema.ID]) string {
	if id, ok := o.Get(); ok {
		return id.String()
	}
	return ""
}

func ids(in []chatskema.ID) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = id.String()
	}
	return out
}

func timePtr(o chatskema.Optional[time.Time]) *time.Time { return o.Ptr() }
