package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vitos/trade_text_builder/internal/config"
	"github.com/vitos/trade_text_builder/internal/infrastructure/logger"
	"go.uber.org/zap"
)

type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "tradetext",
		Short:         "Build stop-loss / take-profit chat messages for a leveraged trade",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "config/config.yaml", "Path to the YAML config file.")

	rootCmd.AddCommand(newGenerateCmd(a), newServeCmd(a))
	return rootCmd
}

// init loads config and builds the logger once per invocation.
func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	if cfg.Logging.File != "" {
		a.log, err = logger.NewFileLogger(cfg.Logging.File, cfg.Logging.Level)
	} else {
		a.log, err = logger.NewLogger(cfg.Logging.Level)
	}
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
