package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/playbell/pkg/domain/model"
	"github.com/m-mizutani/playbell/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Config struct {
	ConfigPath string
	BaseURL    string
	Debug      bool
	Verbose    bool
}

func NewConfig() *Config {
	return &Config{
		BaseURL: model.SlackWebhookBaseURL,
	}
}

func newConfigFromCommand(cmd *cli.Command) *Config {
	config := NewConfig()
	config.ConfigPath = cmd.String("config")
	if v := cmd.String("base-url"); v != "" {
		config.BaseURL = v
	}
	config.Debug = cmd.Bool("debug")
	config.Verbose = cmd.Bool("verbose")
	return config
}

// LogLevel maps the debug and verbose switches to a slog level
func (c *Config) LogLevel() slog.Level {
	switch {
	case c.Debug:
		return slog.LevelDebug
	case c.Verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// WithLogger returns ctx carrying a stderr logger at the configured level
func (c *Config) WithLogger(ctx context.Context) context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.LogLevel(),
	}))
	return ctxlog.With(ctx, logger)
}

// Load resolves the adapter configuration from the config file and the
// environment
func (c *Config) Load() (*model.Config, error) {
	return usecase.NewConfigService().Load(c.ConfigPath)
}

func DefineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
			Sources: cli.EnvVars("PLAYBELL_CONFIG"),
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Webhook base URL, the token is appended to it",
			Value: model.SlackWebhookBaseURL,
		},
	}
}
