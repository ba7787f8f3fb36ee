// Package main provides the seqdbctl command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var logger *zap.Logger

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "seqdbctl",
		Short: "seqdbctl manages an influenza sequence database",
		Long: `seqdbctl is the ambient command-line front end for a seqdb store:
ingesting raw sequences, querying entries, and inspecting configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			l, err := newLogger(logLevelOrConfig(logLevel))
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			logger = l
			return nil
		},
	}

	cmd.PersistentFlags().String("store", "", "path to the seqdb JSON store (default: config store.path)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default: config log.level or info)")
	viper.BindPFlag("store.path", cmd.PersistentFlags().Lookup("store"))

	cmd.AddCommand(newIngestCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigName(".seqdb")
	viper.SetConfigType("yaml")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("store.path", "")
	viper.SetDefault("ingest.min_nucleotide_length", 0)

	if home != "" {
		viper.SetConfigFile(filepath.Join(home, ".seqdb.yaml"))
	}
	_ = viper.ReadInConfig()
}

func logLevelOrConfig(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString("log.level")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}

func storePath(cmd *cobra.Command) (string, error) {
	path := viper.GetString("store.path")
	if path == "" {
		return "", fmt.Errorf("no store path configured; pass --store or set store.path in ~/.seqdb.yaml")
	}
	return path, nil
}
