package cli

import (
	"github.com/urfave/cli/v3"
)

func NewCommand() *cli.Command {
	flags := append(DefineFlags(),
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable verbose logging",
			Value: false,
		},
	)

	return &cli.Command{
		Name:    "playbell",
		Usage:   "Relay automation run summaries to Slack",
		Version: "0.1.0",
		Description: `playbell reads callback events of an automation run as JSON lines from stdin
and posts a completion summary to a Slack channel via an incoming webhook.

The webhook token is taken from WEBHOOK_TOKEN. WEBHOOK_CHANNEL, WEBHOOK_FROM
and WEBHOOK_NOTIFY are optional. Without a token the events are consumed
but nothing is sent.`,
		Flags:  flags,
		Action: RunBridge,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Consume callback events and send the run summary",
				Action: RunBridge,
			},
			NewSendCommand(),
			NewConfigCommand(),
		},
	}
}
