package registry

import "github.com/reoring/chatskema/discord"

// Discord returns a registry holding every Discord event this module
// describes.
func Discord(opts ...Option) *Registry {
	return New(opts...).MustRegister(
		Bind(discord.EventMessageCreate, discord.MessageSchema),
		Bind(discord.EventMessageUpdate, discord.MessageUpdateSchema),
		Bind(discord.EventMessageDelete, discord.MessageDeleteSchema),
		Bind(discord.EventMessageDeleteBulk, discord.MessageDeleteBulkSchema),
		Bind(discord.EventMessageReactionAdd, discord.MessageReactionAddSchema),
		Bind(discord.EventMessageReactionRemove, discord.MessageReactionRemoveSchema),
		Bind(discord.EventChannelPinsUpdate, discord.ChannelPinsUpdateSchema),
		Bind(discord.EventTypingStart, discord.TypingStartSchema),
		Bind(discord.EventInteractionCreate, discord.InteractionCreateSchema),
	)
}
