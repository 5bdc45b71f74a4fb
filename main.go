//go:build !test

/* main.go
 * The "main" method for running the bot. For details about the bot see `readme.md`
 * Usage: go run . run --platform=discord --test=false
 *        go run . home <userID>
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"os"

	"sportsstats-bot/bot"
	"sportsstats-bot/bot/telegram"
	"sportsstats-bot/config"
)

func main() {
	runners := map[string]platformRunner{
		config.PlatformDiscord: func(ctx context.Context, b *bot.Bot) error {
			return b.Run(ctx)
		},
		config.PlatformTelegram: telegram.Run,
	}
	if err := newRootCmd(runners).Execute(); err != nil {
		os.Exit(1)
	}
}
