package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/playbell/pkg/domain/model"
	"github.com/m-mizutani/playbell/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// RunBridge consumes callback events from the command's input and relays the
// run summary to Slack
func RunBridge(ctx context.Context, cmd *cli.Command) error {
	config := newConfigFromCommand(cmd)
	ctx = config.WithLogger(ctx)
	logger := ctxlog.From(ctx)

	// A broken config file disables relaying; stdin is still drained
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("Failed to load configuration. Disabling the Slack callback.",
			slog.String("error", err.Error()),
		)
		cfg = model.DefaultConfig()
	}

	callback := usecase.NewSlackCallback(ctx, usecase.SlackCallbackOptions{
		Config:   cfg,
		Notifier: usecase.NewSlackNotifier(cfg, usecase.WithBaseURL(config.BaseURL)),
		Table:    usecase.NewSummaryTable(),
	})

	logger.Debug("starting event bridge",
		slog.String("run_id", callback.RunID()),
		slog.String("channel", cfg.Channel),
		slog.Bool("disabled", callback.Disabled()),
	)

	return usecase.NewBridge(callback).Run(ctx, inputOf(cmd))
}

func inputOf(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

func outputOf(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
