/* handlers.go
 * Contains testable Discord handler methods that accept the DiscordSession interface
 * Authors: Zachary Bower
 */

package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// newMessageHandler routes messages to the command router with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author == nil || message.Author.ID == botUserID || message.Author.Bot {
		return
	}

	req := Request{
		UserID:      message.Author.ID,
		Username:    message.Author.Username,
		Mention:     message.Author.Mention(),
		Destination: message.ChannelID,
		Text:        message.Content,
	}
	if b.Dispatch(ctx, req, newDiscordResponder(b, session, message)) {
		return
	}

	if mentionsUser(message, botUserID) {
		b.mentionHandler(session, message)
	}
}

// mentionHandler greets a user who mentioned the bot without a command
func (b *Bot) mentionHandler(session DiscordSession, message *discordgo.MessageCreate) {
	if _, err := session.ChannelMessageSend(message.ChannelID, Greeting(b.Prefix)); err != nil {
		b.Logger.Warn("failed to send greeting", zap.String("channel_id", message.ChannelID), zap.Error(err))
	}
}

// memberJoinHandler welcomes a new guild member in the guild's system channel
func (b *Bot) memberJoinHandler(session DiscordSession, member *discordgo.GuildMemberAdd) {
	if member.Member == nil || (member.User != nil && member.User.Bot) {
		return
	}
	guild, err := session.Guild(member.GuildID)
	if err != nil {
		b.Logger.Warn("failed to look up guild", zap.String("guild_id", member.GuildID), zap.Error(err))
		return
	}
	if guild.SystemChannelID == "" {
		return
	}
	if _, err := session.ChannelMessageSend(guild.SystemChannelID, Welcome(b.Prefix)); err != nil {
		b.Logger.Warn("failed to send welcome", zap.String("guild_id", member.GuildID), zap.Error(err))
	}
}

func mentionsUser(message *discordgo.MessageCreate, userID string) bool {
	for _, user := range message.Mentions {
		if user != nil && user.ID == userID {
			return true
		}
	}
	return false
}
