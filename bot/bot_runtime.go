//go:build !test

/* bot_runtime.go
 * Contains runtime-only Discord bot methods that use *discordgo.Session directly.
 * Delegates to testable handlers in handlers.go to avoid code duplication.
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Run starts the Discord bot and listens for messages until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	// create a session
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return err
	}
	discord.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	// add event handlers
	discord.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.newMessageHandler(ctx, s, m, s.State.User.ID)
	})
	discord.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		b.memberJoinHandler(s, m)
	})

	// open session
	if err := discord.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	defer discord.Close() // close session, after function termination

	b.Logger.Info("discord bot started")
	<-ctx.Done()
	b.Logger.Info("discord bot stopping")
	return nil
}
