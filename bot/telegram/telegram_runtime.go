//go:build !test

/* telegram_runtime.go
 * Contains the runtime-only Telegram entry point that connects to the Bot API
 * Authors: Zachary Bower
 */

package telegram

import (
	"context"
	"fmt"

	"sportsstats-bot/bot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Run connects to Telegram with the bot's token and serves updates until ctx is cancelled
func Run(ctx context.Context, b *bot.Bot) error {
	api, err := tgbotapi.NewBotAPI(b.BotToken)
	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}
	return Serve(ctx, b, api, api.Self.UserName)
}
