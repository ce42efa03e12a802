package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ezcoach/ezcoach-go/internal/agent"
	"github.com/ezcoach/ezcoach-go/internal/config"
	"github.com/ezcoach/ezcoach-go/internal/distributor"
	"github.com/ezcoach/ezcoach-go/internal/logging"
	"github.com/ezcoach/ezcoach-go/internal/metrics"
	"github.com/ezcoach/ezcoach-go/internal/remote"
	"github.com/ezcoach/ezcoach-go/internal/runner"
)

var configPath string

func main() {
	for _, path := range []string{".env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	root := &cobra.Command{
		Use:           "coachctl",
		Short:         "drive a game environment over its coaching protocol",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.toml")
	root.AddCommand(playCmd(), describeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "coachctl: %v\n", err)
		os.Exit(1)
	}
}

// initLogger applies the configured level unless the environment already
// pinned one.
func initLogger(cfg config.Config) zerolog.Logger {
	logger := logging.Init("coachctl", logging.ProfileRuntime)
	if cfg.LogLevel != "" && os.Getenv(logging.EnvLogLevel) == "" {
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			logger = logger.Level(lvl)
		}
	}
	return logger
}

func playCmd() *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "run episodes with random policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSessionConfig(configPath)
			if err != nil {
				return err
			}
			logger := initLogger(cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			if cfg.MetricsAddr != "" {
				go func() {
					if err := metrics.Serve(cfg.MetricsAddr, cfg.CorsOrigins, logger); err != nil {
						logger.Error().Err(err).Msg("metrics endpoint failed")
					}
				}()
			}

			env := remote.NewTCP(cfg.Addr, cfg.BufferSize, logger)
			defer env.Disconnect()

			dist := buildDistributor(cfg, logger)
			run := runner.New(dist, env, logger)
			if err := run.Play(ctx, cfg.Episodes, cfg.Players, cfg.Options); err != nil {
				return err
			}

			if csvPath != "" {
				if err := metrics.ExportCSV(run.Metrics(), csvPath); err != nil {
					return fmt.Errorf("export metrics: %w", err)
				}
				logger.Info().Str("path", csvPath).Msg("metrics exported")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "write episode metrics to this CSV file")
	return cmd
}

// buildDistributor picks a strategy from the configured player count: one
// random agent for single-player games, one random agent per player
// otherwise.
func buildDistributor(cfg config.Config, logger zerolog.Logger) distributor.Distributor {
	if cfg.Players <= 1 {
		return distributor.NewSingle(agent.NewRandomPlayer(cfg.Seed), distributor.Options{}, logger)
	}
	agents := make([]agent.Player, cfg.Players)
	for i := range agents {
		agents[i] = agent.NewRandomPlayer(cfg.Seed + int64(i))
	}
	return distributor.NewAgentList(agents, distributor.Options{}, logger)
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "connect to a game and print its manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSessionConfig(configPath)
			if err != nil {
				return err
			}
			logger := initLogger(cfg)

			env := remote.NewTCP(cfg.Addr, cfg.BufferSize, logger)
			defer env.Disconnect()
			if err := env.Connect(); err != nil {
				return err
			}
			fmt.Print(env.Manifest().String())
			return nil
		},
	}
}
