/* telegram.go
 * Contains the Telegram front end. Updates are turned into bot Requests and answered through a responder that sends
 * cards as Markdown text messages
 * Authors: Zachary Bower
 */

package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"sportsstats-bot/api/cards"
	"sportsstats-bot/bot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// updateTimeout is the long polling timeout in seconds
const updateTimeout = 60

// BotAPI defines the Telegram client methods used by the bot
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Ensure *tgbotapi.BotAPI implements BotAPI
var _ BotAPI = (*tgbotapi.BotAPI)(nil)

// Serve answers updates until ctx is cancelled or the update channel closes
// Preconditions: Receives the bot, a Telegram client and the bot's own username (used to spot mentions)
// Postconditions: Update polling has been stopped
func Serve(ctx context.Context, b *bot.Bot, api BotAPI, username string) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	b.Logger.Info("telegram bot started", zap.String("username", username))
	for {
		select {
		case <-ctx.Done():
			b.Logger.Info("telegram bot stopping")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			handleUpdate(ctx, b, api, username, update)
		}
	}
}

func handleUpdate(ctx context.Context, b *bot.Bot, api BotAPI, username string, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	if len(message.NewChatMembers) > 0 {
		welcomeMembers(b, api, message)
		return
	}
	if message.From == nil || message.From.IsBot {
		return
	}

	req := bot.Request{
		UserID:      strconv.FormatInt(message.From.ID, 10),
		Username:    message.From.UserName,
		Mention:     mention(message.From),
		Destination: strconv.FormatInt(message.Chat.ID, 10),
		Text:        commandText(message, b.Prefix),
	}
	resp := &responder{api: api, chatID: message.Chat.ID, limiter: b.NewLimiter()}
	if b.Dispatch(ctx, req, resp) {
		return
	}

	if username != "" && strings.Contains(strings.ToLower(message.Text), "@"+strings.ToLower(username)) {
		if err := resp.Reply(ctx, bot.Greeting(b.Prefix)); err != nil {
			b.Logger.Warn("failed to send greeting", zap.Int64("chat_id", message.Chat.ID), zap.Error(err))
		}
	}
}

func welcomeMembers(b *bot.Bot, api BotAPI, message *tgbotapi.Message) {
	for _, member := range message.NewChatMembers {
		if member.IsBot {
			continue
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, bot.Welcome(b.Prefix))
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := api.Send(msg); err != nil {
			b.Logger.Warn("failed to send welcome", zap.Int64("chat_id", message.Chat.ID), zap.Error(err))
		}
		return
	}
}

// commandText maps Telegram's /command syntax onto the bot's prefix so both work
func commandText(message *tgbotapi.Message, prefix string) string {
	if !message.IsCommand() {
		return message.Text
	}
	return strings.TrimSpace(prefix + message.Command() + " " + message.CommandArguments())
}

func mention(user *tgbotapi.User) string {
	if user.UserName != "" {
		return "@" + user.UserName
	}
	return user.FirstName
}

// responder answers one Telegram message
type responder struct {
	api     BotAPI
	chatID  int64
	limiter *rate.Limiter
}

// Acknowledge shows the typing indicator
func (r *responder) Acknowledge(_ context.Context) error {
	_, err := r.api.Request(tgbotapi.NewChatAction(r.chatID, tgbotapi.ChatTyping))
	return err
}

// Reply sends a Markdown text message
func (r *responder) Reply(ctx context.Context, text string) error {
	return r.send(ctx, r.chatID, text)
}

// Send delivers a unit as one Markdown text message
func (r *responder) Send(ctx context.Context, unit cards.Unit) error {
	chatID := r.chatID
	if unit.Destination != "" {
		id, err := strconv.ParseInt(unit.Destination, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid telegram chat id %q: %w", unit.Destination, err)
		}
		chatID = id
	}
	text := toMarkdown(unit.Fragments)
	if text == "" {
		return nil
	}
	if err := r.send(ctx, chatID, text); err != nil {
		return fmt.Errorf("failed to send %q: %w", unit.Fallback, err)
	}
	return nil
}

func (r *responder) send(ctx context.Context, chatID int64, text string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := r.api.Send(msg)
	if err != nil && strings.Contains(err.Error(), "can't parse entities") {
		// Team names can carry stray markup characters, send those unformatted
		msg.ParseMode = ""
		_, err = r.api.Send(msg)
	}
	return err
}

// toMarkdown renders fragments as Telegram Markdown. Dividers become blank lines and logos are dropped
func toMarkdown(fragments cards.Sequence) string {
	var lines []string
	for _, f := range fragments {
		switch f.Type {
		case cards.HeaderFragment:
			lines = append(lines, "*"+f.Text+"*")
		case cards.DividerFragment:
			if len(lines) > 0 && lines[len(lines)-1] != "" {
				lines = append(lines, "")
			}
		case cards.ContextFragment:
			lines = append(lines, "_"+f.Text+"_")
		default:
			if f.Text != "" {
				lines = append(lines, f.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
