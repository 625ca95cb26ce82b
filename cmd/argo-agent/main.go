package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/argo-paper-agent/internal/config"
	"github.com/rxtech-lab/argo-paper-agent/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file (defaults to $AGENT_CONFIG_FILE)",
	}

	cmd := &cli.Command{
		Name:    "argo-agent",
		Usage:   "Paper trading agent that turns market ticks into simulated long trades",
		Version: version.GetVersion(),
		Flags:   []cli.Flag{configFlag},
		Action:  serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the agent HTTP server (default)",
				Flags:  []cli.Flag{configFlag},
				Action: serveAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the configuration",
				Action: func(_ context.Context, _ *cli.Command) error {
					schema, err := config.GetConfigSchema()
					if err != nil {
						return fmt.Errorf("failed to generate schema: %w", err)
					}

					fmt.Println(schema)

					return nil
				},
			},
			{
				Name:  "config",
				Usage: "Print the resolved configuration as YAML",
				Flags: []cli.Flag{configFlag},
				Action: func(_ context.Context, cmd *cli.Command) error {
					cfg, err := config.Load(cmd.String("config"))
					if err != nil {
						return err
					}

					out, err := cfg.YAML()
					if err != nil {
						return err
					}

					fmt.Print(out)

					for _, warning := range cfg.Warnings {
						fmt.Fprintln(os.Stderr, "warning:", warning)
					}

					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
