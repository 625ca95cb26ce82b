package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-paper-agent/internal/feed"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/internal/version"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func newSource(cmd *cli.Command, log *logger.Logger) (feed.Source, error) {
	csvPath := cmd.String("csv")
	symbol := cmd.String("binance")

	switch {
	case csvPath != "" && symbol != "":
		return nil, errors.New(errors.ErrCodeInvalidFeedOptions, "use either --csv or --binance, not both")
	case csvPath != "":
		return feed.NewCSVSource(csvPath, cmd.String("symbol"), log), nil
	case symbol != "":
		return feed.NewBinanceSource(symbol, cmd.String("interval"), int(cmd.Int("limit")))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFeedOptions, "one of --csv or --binance is required")
	}
}

func replayAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	source, err := newSource(cmd, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var bar *progressbar.ProgressBar

	progress := func(done, total int, _ types.BotDecision) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(fmt.Sprintf("Replaying %s", source.Name())),
				progressbar.OptionShowCount(),
			)
		}

		_ = bar.Set(done)
	}

	replayer := feed.NewReplayer(feed.NewAgentClient(cmd.String("agent-url")), log, progress,
		feed.WithSpeed(cmd.Float("speed")),
		feed.WithFixedInterval(cmd.Duration("delay")),
	)

	result, err := replayer.Run(ctx, source)
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	if err != nil {
		return err
	}

	fmt.Printf("Replayed %d ticks, %d trades\n", result.Ticks, result.Trades)
	fmt.Println(renderAccount(result.Final))

	return nil
}

func stateAction(ctx context.Context, cmd *cli.Command) error {
	state, err := feed.NewAgentClient(cmd.String("agent-url")).State(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderAccount(state))

	return nil
}

func tradesAction(ctx context.Context, cmd *cli.Command) error {
	trades, err := feed.NewAgentClient(cmd.String("agent-url")).Trades(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderTrades(trades))

	return nil
}

func resetAction(ctx context.Context, cmd *cli.Command) error {
	state, err := feed.NewAgentClient(cmd.String("agent-url")).Reset(ctx)
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Account reset"))
	fmt.Println(renderAccount(state))

	return nil
}

func statsAction(ctx context.Context, cmd *cli.Command) error {
	stats, err := feed.NewAgentClient(cmd.String("agent-url")).Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderStats(stats))

	return nil
}

func main() {
	agentURLFlag := &cli.StringFlag{
		Name:    "agent-url",
		Aliases: []string{"u"},
		Usage:   "Base URL of the running agent",
		Value:   "http://localhost:8000",
		Sources: cli.EnvVars("AGENT_URL"),
	}

	cmd := &cli.Command{
		Name:    "argo-feeder",
		Usage:   "Feed market ticks to a paper trading agent and inspect its account",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "replay",
				Usage: "Replay ticks from a CSV file or Binance klines, one request per tick",
				Flags: []cli.Flag{
					agentURLFlag,
					&cli.StringFlag{
						Name:  "csv",
						Usage: "CSV file with timestamp, open, high, low, close, volume columns",
					},
					&cli.StringFlag{
						Name:  "symbol",
						Usage: "Symbol used for CSV rows without a symbol column",
						Value: "BTCUSDT",
					},
					&cli.StringFlag{
						Name:  "binance",
						Usage: "Binance symbol to fetch recent klines for (e.g. BTCUSDT)",
					},
					&cli.StringFlag{
						Name:  "interval",
						Usage: "Binance kline interval",
						Value: "1m",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of Binance klines to fetch (max 1000)",
						Value: 500,
					},
					&cli.FloatFlag{
						Name:  "speed",
						Usage: "Replay speed relative to tick timestamps (1 = real time, 0 = no waiting). The agent times holds by its own clock, so unpaced replays never leave the grace period",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "Fixed wait between ticks, overrides --speed (e.g. 6s)",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level (debug, info, warn, error)",
						Value: "warn",
					},
				},
				Action: replayAction,
			},
			{
				Name:   "state",
				Usage:  "Show the agent account",
				Flags:  []cli.Flag{agentURLFlag},
				Action: stateAction,
			},
			{
				Name:   "trades",
				Usage:  "List recorded trades",
				Flags:  []cli.Flag{agentURLFlag},
				Action: tradesAction,
			},
			{
				Name:   "stats",
				Usage:  "Show trade statistics",
				Flags:  []cli.Flag{agentURLFlag},
				Action: statsAction,
			},
			{
				Name:   "reset",
				Usage:  "Reset the agent account to its initial balance",
				Flags:  []cli.Flag{agentURLFlag},
				Action: resetAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
