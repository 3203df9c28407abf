package interfaces

import (
	"context"

	"github.com/m-mizutani/playbell/pkg/domain/model"
)

// Notifier delivers a text message to the chat channel. It never returns an
// error; failures are reported through the outcome.
type Notifier interface {
	Send(ctx context.Context, message string, notify bool) model.Outcome
}

// TableRenderer formats rows as a fixed-width text table
type TableRenderer interface {
	Render(header []string, rows [][]string) string
}
