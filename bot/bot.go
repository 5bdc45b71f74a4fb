/* bot.go
 * Contains the Bot type and the platform independent command router. The Discord and Telegram runtimes turn their
 * events into a Request and a Responder and hand them to Dispatch
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sportsstats-bot/api/api"
	"sportsstats-bot/api/cards"
	"sportsstats-bot/api/metrics"

	"github.com/go-andiamo/splitter"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

const (
	// DefaultPrefix starts every command
	DefaultPrefix = "$"
	// DefaultSendInterval spaces outbound messages to one channel
	DefaultSendInterval = time.Second
	// DefaultSendBurst is how many messages may go out back to back before pacing starts
	DefaultSendBurst = 5
)

// Command names
const (
	CommandHelp      = "help"
	CommandStandings = "standings"
	CommandTeam      = "team"
	CommandPastGames = "pastgames"
	CommandNextGames = "nextgames"
	CommandFaveSet   = "faveset"
	CommandFaveGet   = "faveget"
	CommandFaveDel   = "favedel"
	CommandHome      = "home"
)

// Request is a chat message addressed to the bot
type Request struct {
	UserID   string
	Username string
	// Mention is how the platform addresses the author, e.g. <@123> on Discord
	Mention     string
	Destination string
	Text        string
}

// Responder delivers the bot's answer to one request
type Responder interface {
	cards.Sink
	// Acknowledge tells the user the command was recognised and is being worked on
	Acknowledge(ctx context.Context) error
	// Reply sends a plain text message to the request's destination
	Reply(ctx context.Context, text string) error
}

type handler func(b *Bot, ctx context.Context, req Request, resp Responder, arg string) error

var commands = map[string]handler{
	CommandHelp:      (*Bot).help,
	CommandStandings: (*Bot).standings,
	CommandTeam:      (*Bot).team,
	CommandPastGames: (*Bot).pastGames,
	CommandNextGames: (*Bot).nextGames,
	CommandFaveSet:   (*Bot).faveSet,
	CommandFaveGet:   (*Bot).faveGet,
	CommandFaveDel:   (*Bot).faveDel,
	CommandHome:      (*Bot).home,
}

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Prefix   string
	Logger   *zap.Logger
	Metrics  *metrics.Recorder

	sendInterval time.Duration
	sendBurst    int
}

// Option configures a Bot
type Option func(*Bot)

// WithPrefix overrides DefaultPrefix
func WithPrefix(prefix string) Option {
	return func(b *Bot) {
		if prefix != "" {
			b.Prefix = prefix
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bot) {
		if logger != nil {
			b.Logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(b *Bot) {
		b.Metrics = recorder
	}
}

// WithSendRate overrides the outbound message pacing. An interval of 0 disables pacing
func WithSendRate(interval time.Duration, burst int) Option {
	return func(b *Bot) {
		b.sendInterval = interval
		if burst > 0 {
			b.sendBurst = burst
		}
	}
}

func NewBot(botToken string, apiPtr *api.API, opts ...Option) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	b := &Bot{
		BotToken:     botToken,
		APIPtr:       apiPtr,
		Prefix:       DefaultPrefix,
		Logger:       zap.NewNop(),
		sendInterval: DefaultSendInterval,
		sendBurst:    DefaultSendBurst,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// NewLimiter returns a limiter for pacing messages to one destination
func (b *Bot) NewLimiter() *rate.Limiter {
	if b.sendInterval <= 0 {
		return rate.NewLimiter(rate.Inf, b.sendBurst)
	}
	return rate.NewLimiter(rate.Every(b.sendInterval), b.sendBurst)
}

// Dispatch runs the command in req, if there is one
// Preconditions: Receives a request and the responder for its platform
// Postconditions: Returns false if the text is not a command. Otherwise the request has been acknowledged and answered
func (b *Bot) Dispatch(ctx context.Context, req Request, resp Responder) bool {
	command, args, ok := parseCommand(req.Text, b.Prefix)
	if !ok {
		return false
	}
	run, ok := commands[command]
	if !ok {
		return false
	}

	if err := resp.Acknowledge(ctx); err != nil {
		b.Logger.Warn("failed to acknowledge command", zap.String("command", command), zap.Error(err))
	}

	arg := titleCase(strings.Join(args, " "))
	err := run(b, ctx, req, resp, arg)
	b.Metrics.RecordCommand(command, err)
	if err != nil {
		b.Logger.Warn("command finished with error",
			zap.String("command", command),
			zap.String("user_id", req.UserID),
			zap.Error(err))
		return true
	}
	b.Logger.Debug("command finished", zap.String("command", command), zap.String("user_id", req.UserID))
	return true
}

// region command handlers

func (b *Bot) help(ctx context.Context, req Request, resp Responder, _ string) error {
	return resp.Reply(ctx, helpText(req.Mention, b.Prefix))
}

func (b *Bot) standings(ctx context.Context, req Request, resp Responder, _ string) error {
	return b.APIPtr.Standings(ctx, resp, req.Destination)
}

func (b *Bot) team(ctx context.Context, req Request, resp Responder, arg string) error {
	return b.APIPtr.TeamStats(ctx, resp, req.Destination, arg)
}

func (b *Bot) pastGames(ctx context.Context, req Request, resp Responder, arg string) error {
	return b.APIPtr.PastGames(ctx, resp, req.Destination, arg)
}

func (b *Bot) nextGames(ctx context.Context, req Request, resp Responder, arg string) error {
	return b.APIPtr.NextGames(ctx, resp, req.Destination, arg)
}

func (b *Bot) faveSet(ctx context.Context, req Request, resp Responder, arg string) error {
	favorite, err := b.APIPtr.SetFavoriteTeam(ctx, req.UserID, arg)
	if replyErr := resp.Reply(ctx, api.SetFavoriteReply(favorite, err)); replyErr != nil {
		b.Logger.Warn("failed to send reply", zap.Error(replyErr))
	}
	return err
}

func (b *Bot) faveGet(ctx context.Context, req Request, resp Responder, _ string) error {
	favorite, found, err := b.APIPtr.GetFavoriteTeam(ctx, req.UserID)
	if replyErr := resp.Reply(ctx, api.GetFavoriteReply(favorite, found, err, b.Prefix+CommandFaveSet)); replyErr != nil {
		b.Logger.Warn("failed to send reply", zap.Error(replyErr))
	}
	return err
}

func (b *Bot) faveDel(ctx context.Context, req Request, resp Responder, _ string) error {
	deleted, err := b.APIPtr.DeleteFavoriteTeam(ctx, req.UserID)
	if replyErr := resp.Reply(ctx, api.DeleteFavoriteReply(deleted, err, b.Prefix+CommandFaveSet)); replyErr != nil {
		b.Logger.Warn("failed to send reply", zap.Error(replyErr))
	}
	return err
}

func (b *Bot) home(ctx context.Context, req Request, resp Responder, _ string) error {
	view, err := b.APIPtr.Home(ctx, req.UserID)
	if err != nil {
		cards.Send(ctx, resp, req.Destination, api.ErrorFallback, cards.Notice(homeUnavailableMessage), cards.WithLogger(b.Logger))
		return err
	}
	cards.Send(ctx, resp, req.Destination, api.HomeTitle, view,
		cards.WithLogger(b.Logger),
		cards.WithSentHook(b.Metrics.RecordOutbound))
	return nil
}

// endregion

// parseCommand splits a message into a lower case command and its arguments. Quoted arguments may contain spaces
// Preconditions: Receives the message text and the command prefix
// Postconditions: Returns false if text does not start with prefix followed by a word
func parseCommand(text string, prefix string) (string, []string, bool) {
	text = strings.TrimSpace(text)
	if !startsWith(strings.ToLower(text), strings.ToLower(prefix)) {
		return "", nil, false
	}

	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return "", nil, false
	}
	parts, err := spaceSplitter.Split(text[len(prefix):])
	if err != nil {
		// An unbalanced quote, fall back to plain whitespace splitting
		parts = strings.Fields(text[len(prefix):])
	}

	var fields []string
	for _, part := range parts {
		part = strings.TrimSpace(strings.Trim(part, "\"“”"))
		if part != "" {
			fields = append(fields, part)
		}
	}
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// titleCase capitalises the first letter of every word, e.g. "man united" becomes "Man United"
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}
