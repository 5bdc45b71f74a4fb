/* discord_sink.go
 * Contains the Discord responder. Card fragments are converted to embeds: a header starts an embed, sections and
 * context lines become lines of its description, a logo becomes its thumbnail and a divider closes it
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"
	"strings"

	"sportsstats-bot/api/cards"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// maxEmbedsPerMessage is Discord's limit on embeds in one message
	maxEmbedsPerMessage = 10
	// acknowledgeEmoji is added to recognised commands
	acknowledgeEmoji = "👍"
	embedColour      = 0x3D195B
)

// discordResponder answers one Discord message
type discordResponder struct {
	session   DiscordSession
	channelID string
	messageID string
	limiter   *rate.Limiter
	logger    *zap.Logger
}

func newDiscordResponder(b *Bot, session DiscordSession, message *discordgo.MessageCreate) *discordResponder {
	return &discordResponder{
		session:   session,
		channelID: message.ChannelID,
		messageID: message.ID,
		limiter:   b.NewLimiter(),
		logger:    b.Logger,
	}
}

// Acknowledge reacts to the command message
func (r *discordResponder) Acknowledge(_ context.Context) error {
	if r.messageID == "" {
		return nil
	}
	return r.session.MessageReactionAdd(r.channelID, r.messageID, acknowledgeEmoji)
}

// Reply sends a plain text message
func (r *discordResponder) Reply(ctx context.Context, text string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := r.session.ChannelMessageSend(r.channelID, text)
	return err
}

// Send delivers a unit as embeds. A unit with more embeds than one message allows is split across messages
func (r *discordResponder) Send(ctx context.Context, unit cards.Unit) error {
	destination := unit.Destination
	if destination == "" {
		destination = r.channelID
	}

	embeds := toEmbeds(unit.Fragments)
	if len(embeds) == 0 {
		return nil
	}
	for start := 0; start < len(embeds); start += maxEmbedsPerMessage {
		end := min(start+maxEmbedsPerMessage, len(embeds))
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
		_, err := r.session.ChannelMessageSendComplex(destination, &discordgo.MessageSend{Embeds: embeds[start:end]})
		if err != nil {
			return fmt.Errorf("failed to send %q: %w", unit.Fallback, err)
		}
	}
	return nil
}

// toEmbeds converts card fragments into Discord embeds
func toEmbeds(fragments cards.Sequence) []*discordgo.MessageEmbed {
	var embeds []*discordgo.MessageEmbed
	var current *discordgo.MessageEmbed
	var lines []string

	closeEmbed := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(lines, "\n")
		if current.Title != "" || current.Description != "" || current.Thumbnail != nil {
			embeds = append(embeds, current)
		}
		current = nil
		lines = nil
	}
	open := func() {
		if current == nil {
			current = &discordgo.MessageEmbed{Color: embedColour}
		}
	}

	for _, f := range fragments {
		switch f.Type {
		case cards.HeaderFragment:
			closeEmbed()
			open()
			current.Title = f.Text
		case cards.DividerFragment:
			// a divider straight after a header belongs to that header
			if current != nil && len(lines) == 0 && current.Thumbnail == nil {
				continue
			}
			closeEmbed()
		case cards.ContextFragment:
			open()
			lines = append(lines, "-# "+f.Text)
		default:
			open()
			if f.Text != "" {
				lines = append(lines, discordMarkup(f.Text))
			}
			if f.ImageURL != "" && current.Thumbnail == nil {
				current.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: f.ImageURL}
			}
		}
	}
	closeEmbed()
	return embeds
}

// discordMarkup converts *bold* to Discord's **bold**. _italic_ is shared by both
func discordMarkup(text string) string {
	var res strings.Builder
	for _, r := range text {
		if r == '*' {
			res.WriteString("**")
			continue
		}
		res.WriteRune(r)
	}
	return res.String()
}
