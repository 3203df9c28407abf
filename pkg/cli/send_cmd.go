package cli

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/playbell/pkg/domain"
	"github.com/m-mizutani/playbell/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// NewSendCommand creates a command posting one ad-hoc message
func NewSendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Send a message to the configured channel",
		ArgsUsage: "<message>",
		Action:    sendAction,
	}
}

func sendAction(ctx context.Context, cmd *cli.Command) error {
	config := newConfigFromCommand(cmd)
	ctx = config.WithLogger(ctx)

	message := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(message) == "" {
		return goerr.New("message is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Enabled() {
		return domain.ErrConfiguration.Wrap(goerr.New("webhook token is not set, provide it with WEBHOOK_TOKEN"))
	}

	notifier := usecase.NewSlackNotifier(cfg, usecase.WithBaseURL(config.BaseURL))
	outcome := notifier.Send(ctx, message, cfg.AllowNotify)

	printer := NewPrinter(outputOf(cmd))
	printer.Outcome(cfg, outcome)
	if !outcome.Delivered() {
		return outcome.Reason()
	}
	return nil
}
