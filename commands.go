/* commands.go
 * Contains the command line interface: `run` starts the chat bot and web server, `home` prints a user's home view
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"sportsstats-bot/api/api"
	"sportsstats-bot/api/external"
	"sportsstats-bot/api/metrics"
	"sportsstats-bot/api/store"
	"sportsstats-bot/bot"
	"sportsstats-bot/config"
	"sportsstats-bot/logging"
	"sportsstats-bot/web"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// platformRunner runs the bot on one chat platform until ctx is cancelled
type platformRunner func(ctx context.Context, b *bot.Bot) error

type rootOptions struct {
	configPath string
	envFile    string
}

type runOptions struct {
	test     string
	platform string
}

func newRootCmd(runners map[string]platformRunner) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "sportsstats-bot",
		Short:        "Chat bot for football standings, results, fixtures and predictions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine, the environment may already be set
			if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("error loading %s: %w", opts.envFile, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to a .env file")

	root.AddCommand(newRunCmd(opts, runners), newHomeCmd(opts))
	return root
}

func newRunCmd(root *rootOptions, runners map[string]platformRunner) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the chat bot and the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useBeta, err := convertStrToBool(opts.test)
			if err != nil {
				return fmt.Errorf("invalid \"test\" flag %q. Should be true or false", opts.test)
			}

			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if opts.platform != "" {
				cfg.Platform = opts.platform
			}
			if err := cfg.Validate(useBeta); err != nil {
				return err
			}
			runner, ok := runners[cfg.Platform]
			if !ok {
				return fmt.Errorf("no runner for platform %q", cfg.Platform)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBot(ctx, cfg, useBeta, runner)
		},
	}
	cmd.Flags().StringVar(&opts.test, "test", "false", "Use main or test bot: takes true or false as argument")
	cmd.Flags().StringVar(&opts.platform, "platform", "", "Chat platform to run on (discord or telegram), overrides the config")
	return cmd
}

func newHomeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "home <userID>",
		Short: "Print the home view for a user as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if err := cfg.ValidateServices(); err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			apiPtr, err := buildAPI(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return err
			}
			defer apiPtr.Close(context.Background())

			view, err := apiPtr.Home(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, web.HomeResponse{User: args[0], Blocks: view})
		},
	}
}

// runBot wires every component together and blocks until ctx is cancelled or a component fails
func runBot(ctx context.Context, cfg *config.Config, useBeta bool, runner platformRunner) error {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	recorder := metrics.NewRecorder()
	apiPtr, err := buildAPI(ctx, cfg, logger, recorder)
	if err != nil {
		return err
	}
	defer func() {
		if err := apiPtr.Close(context.Background()); err != nil {
			logger.Warn("failed to disconnect from mongo", zap.Error(err))
		}
	}()

	b, err := bot.NewBot(cfg.BotToken(useBeta), apiPtr,
		bot.WithPrefix(cfg.Discord.Prefix),
		bot.WithLogger(logger.Named("bot")),
		bot.WithMetrics(recorder))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner(gctx, b)
	})
	if cfg.Web.Addr != "" {
		g.Go(func() error {
			return web.Start(gctx, web.Config{
				Addr:    cfg.Web.Addr,
				API:     apiPtr,
				Metrics: recorder,
				Logger:  logger.Named("web"),
			})
		})
	}
	logger.Info("sportsstats bot running", zap.String("platform", cfg.Platform), zap.Bool("test", useBeta))
	return g.Wait()
}

// buildAPI connects the football client and favourite store behind an API
func buildAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger, recorder *metrics.Recorder) (*api.API, error) {
	client := external.NewClient(external.Config{
		BaseURL:  cfg.Football.BaseURL,
		APIKey:   cfg.Football.APIKey,
		LeagueID: cfg.Football.LeagueID,
		Season:   cfg.Football.Season,
		Timeout:  cfg.Football.Timeout,
		Logger:   logger.Named("external"),
		Observe:  recorder.RecordUpstream,
	})

	favorites, err := store.NewStore(ctx, cfg.Mongo.Database, cfg.Mongo.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := favorites.EnsureIndexes(ctx); err != nil {
		logger.Warn("failed to create favourite team indexes", zap.Error(err))
	}

	return api.NewAPI(client, favorites,
		api.WithLogger(logger.Named("api")),
		api.WithMetrics(recorder),
		api.WithLeagueName(cfg.Football.LeagueName)), nil
}

func printJSON(cmd *cobra.Command, body any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(body)
}
