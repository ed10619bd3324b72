package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vitalvas/apidoc/internal/config"
)

var (
	configPath string
	prettyLogs bool
)

var rootCmd = &cobra.Command{
	Use:           "apidoc",
	Short:         "Sample pet store API with generated OpenAPI documentation",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if prettyLogs {
		cfg.Log.Pretty = true
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).Level(cfg.ZerologLevel()).With().Timestamp().Logger()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (default: ./apidoc.yaml when present)")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty", false, "Use pretty console logging instead of structured JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("command failed")
	}
}
