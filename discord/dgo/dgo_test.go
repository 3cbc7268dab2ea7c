package dgo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/discord"
	"github.com/reoring/chatskema/discord/dgo"
	"github.com/reoring/chatskema/wire"
)

func TestMessage_FromFixture(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "testdata", "message_create.json"))
	require.NoError(t, err)
	m, err := chatskema.DecodeJSON(context.Background(), discord.MessageSchema, data)
	require.NoError(t, err)

	got := dgo.Message(m)
	assert.Equal(t, "1100000000000000001", got.ID)
	assert.Equal(t, "1100000000000000003", got.GuildID)
	assert.Equal(t, m.Timestamp, got.Timestamp)
	assert.Nil(t, got.EditedTimestamp)
	assert.Equal(t, discordgo.MessageTypeReply, got.Type)
	assert.Equal(t, "Ferris", got.Author.GlobalName)
	assert.Equal(t, "", got.Author.Avatar)
	require.NotNil(t, got.Member)
	assert.Equal(t, []string{"1100000000000000005"}, got.Member.Roles)
	assert.Equal(t, []string{}, got.MentionRoles)

	require.Len(t, got.Embeds, 1)
	assert.Equal(t, discordgo.EmbedTypeRich, got.Embeds[0].Type)
	assert.Equal(t, "2024-05-06T00:00:00.000000+00:00", got.Embeds[0].Timestamp)
	assert.Equal(t, "v1.2.0", got.Embeds[0].Footer.Text)

	require.Len(t, got.Reactions, 1)
	assert.Equal(t, "thumbsup", got.Reactions[0].Emoji.Name)
	assert.Equal(t, "", got.Reactions[0].Emoji.ID)

	require.NotNil(t, got.MessageReference)
	assert.Equal(t, "1100000000000000008", got.MessageReference.MessageID)
	assert.Nil(t, got.ReferencedMessage)

	require.Len(t, got.Components, 1)
	row, ok := got.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)
	btn := row.Components[1].(discordgo.Button)
	assert.Equal(t, discordgo.LinkButton, btn.Style)
	assert.Equal(t, "https://example.com/docs", btn.URL)
}

func TestMessage_LegacyInteraction(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "testdata", "message_interaction_legacy.json"))
	require.NoError(t, err)
	m, err := chatskema.DecodeJSON(context.Background(), discord.MessageSchema, data)
	require.NoError(t, err)

	got := dgo.Message(m)
	require.NotNil(t, got.Interaction)
	require.NotNil(t, got.InteractionMetadata)
	assert.Equal(t, got.Interaction.ID, got.InteractionMetadata.ID)
	assert.Equal(t, discordgo.InteractionApplicationCommand, got.InteractionMetadata.Type)
	assert.Equal(t, "ferris", got.InteractionMetadata.User.Username)
}

func TestComponents_SelectAndTextInput(t *testing.T) {
	cs := []discord.Component{
		discord.StringSelect{
			CustomID:  "pick",
			Options:   []discord.SelectOption{{Label: "A", Value: "a", Default: chatskema.Some(true)}},
			MinValues: chatskema.Some(1),
		},
		discord.TextInput{CustomID: "why", Style: discord.TextInputParagraph, Label: "Why", Required: chatskema.Some(true)},
		discord.UnknownComponent{Kind: 17, Raw: wire.ObjectOf("type", wire.Number("17"))},
	}
	got := dgo.Components(cs)
	require.Len(t, got, 2)

	sm := got[0].(discordgo.SelectMenu)
	assert.Equal(t, discordgo.StringSelectMenu, sm.MenuType)
	require.NotNil(t, sm.MinValues)
	assert.Equal(t, 1, *sm.MinValues)
	assert.True(t, sm.Options[0].Default)

	ti := got[1].(discordgo.TextInput)
	assert.Equal(t, discordgo.TextInputParagraph, ti.Style)
	assert.True(t, ti.Required)
}

func TestInteractionMetadata_Owners(t *testing.T) {
	md := discord.InteractionMetadata{
		ID:                           1,
		Type:                         discord.InteractionMessageComponent,
		User:                         discord.User{ID: 2, Username: "u"},
		AuthorizingIntegrationOwners: chatskema.Some(wire.ObjectOf("0", "123", "x", "skip", "1", wire.Number("4"))),
		InteractedMessageID:          chatskema.Some(chatskema.ID(9)),
	}
	got := dgo.InteractionMetadata(md)
	assert.Equal(t, map[discordgo.ApplicationIntegrationType]string{0: "123"}, got.AuthorizingIntegrationOwners)
	assert.Equal(t, "9", got.InteractedMessageID)
}

func TestMember_Permissions(t *testing.T) {
	m := discord.Member{Roles: []chatskema.ID{}, Permissions: chatskema.Some("2147483647")}
	assert.Equal(t, int64(2147483647), dgo.Member(m).Permissions)

	m.Permissions = chatskema.Some("not-a-number")
	assert.Zero(t, dgo.Member(m).Permissions)
}
