package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/playbell/pkg/domain/interfaces"
	"github.com/m-mizutani/playbell/pkg/domain/model"
)

var _ interfaces.Callback = (*SlackCallback)(nil)

// SlackCallback relays a run summary to Slack when the run completes
type SlackCallback struct {
	notifier interfaces.Notifier
	table    interfaces.TableRenderer
	config   *model.Config
	runID    string
	disabled bool

	mu       sync.Mutex
	printed  bool
	identity model.RunIdentity
}

type SlackCallbackOptions struct {
	Config   *model.Config
	Notifier interfaces.Notifier
	Table    interfaces.TableRenderer
}

// NewSlackCallback creates the callback. It is disabled, with a warning, when
// no webhook token is configured or no table renderer is available.
func NewSlackCallback(ctx context.Context, opts SlackCallbackOptions) *SlackCallback {
	c := &SlackCallback{
		notifier: opts.Notifier,
		table:    opts.Table,
		config:   opts.Config,
		runID:    uuid.NewString(),
		identity: model.RunIdentity{
			TemplateName: model.DefaultTemplateName,
		},
	}

	logger := c.logger(ctx)

	if c.table == nil {
		c.disabled = true
		logger.Warn("No table renderer is available. Disabling the Slack callback.")
	}

	if !c.config.Enabled() {
		c.disabled = true
		logger.Warn("Slack token could not be loaded. The Slack token can be provided using the `WEBHOOK_TOKEN` environment variable.")
	}

	if c.notifier == nil && !c.disabled {
		c.notifier = NewSlackNotifier(c.config)
	}

	return c
}

func (c *SlackCallback) logger(ctx context.Context) *slog.Logger {
	return ctxlog.From(ctx).With(slog.String("run_id", c.runID))
}

func (c *SlackCallback) Disabled() bool {
	return c.disabled
}

// RunID identifies this callback instance in log records
func (c *SlackCallback) RunID() string {
	return c.runID
}

// Identity returns a copy of the captured run identity
func (c *SlackCallback) Identity() model.RunIdentity {
	c.mu.Lock()
	defer c.mu.Unlock()

	identity := c.identity
	identity.SkipTags = append([]string(nil), c.identity.SkipTags...)
	return identity
}

func (c *SlackCallback) OnAny(ctx context.Context, args ...any) {}

func (c *SlackCallback) RunnerOnFailed(ctx context.Context, host string, res model.TaskResult, ignoreErrors bool) {
}

func (c *SlackCallback) RunnerOnOK(ctx context.Context, host string, res model.TaskResult) {}

func (c *SlackCallback) RunnerOnSkipped(ctx context.Context, host string, item string) {}

func (c *SlackCallback) RunnerOnUnreachable(ctx context.Context, host string, res model.TaskResult) {
}

func (c *SlackCallback) RunnerOnNoHosts(ctx context.Context) {}

func (c *SlackCallback) RunnerOnAsyncPoll(ctx context.Context, host string, res model.TaskResult, jid string, clock int) {
}

func (c *SlackCallback) RunnerOnAsyncOK(ctx context.Context, host string, res model.TaskResult, jid string) {
}

func (c *SlackCallback) RunnerOnAsyncFailed(ctx context.Context, host string, res model.TaskResult, jid string) {
}

func (c *SlackCallback) PlaybookOnStart(ctx context.Context) {}

func (c *SlackCallback) PlaybookOnNotify(ctx context.Context, host string, handler string) {}

func (c *SlackCallback) PlaybookOnNoHostsMatched(ctx context.Context) {}

func (c *SlackCallback) PlaybookOnNoHostsRemaining(ctx context.Context) {}

func (c *SlackCallback) PlaybookOnTaskStart(ctx context.Context, name string, isConditional bool) {}

func (c *SlackCallback) PlaybookOnVarsPrompt(ctx context.Context, prompt model.VarsPrompt) {}

func (c *SlackCallback) PlaybookOnSetup(ctx context.Context) {}

func (c *SlackCallback) PlaybookOnImportForHost(ctx context.Context, host string, importedFile string) {
}

func (c *SlackCallback) PlaybookOnNotImportForHost(ctx context.Context, host string, missingFile string) {
}

// PlaybookOnPlayStart records the job template name of every play and, on
// the first play only, the playbook the run belongs to.
func (c *SlackCallback) PlaybookOnPlayStart(ctx context.Context, name string, run model.RunContext) {
	if c.disabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if run.TemplateName != "" {
		c.identity.TemplateName = run.TemplateName
	}

	if c.printed {
		return
	}

	// The playbook is not known before the first play starts
	c.identity.PlaybookName = run.PlaybookName
	c.identity.Inventory = model.InventoryName(run.HostListPath)
	c.identity.SkipTags = append([]string(nil), run.SkipTags...)
	c.printed = true

	c.logger(ctx).Info("Playbook started",
		slog.String("play", name),
		slog.String("template", c.identity.TemplateName),
		slog.String("playbook", c.identity.PlaybookName),
		slog.String("inventory", c.identity.Inventory),
		slog.Any("skip_tags", c.identity.SkipTags),
	)
}

// PlaybookOnStats sends the completion messages and the per-host summary table
func (c *SlackCallback) PlaybookOnStats(ctx context.Context, stats model.Stats) {
	if c.disabled {
		return
	}

	logger := c.logger(ctx)
	identity := c.Identity()

	summary := c.table.Render(model.SummaryHeader, stats.Rows())
	status := stats.Status()

	logger.Info("Playbook complete",
		slog.String("template", identity.TemplateName),
		slog.String("playbook", identity.PlaybookName),
		slog.String("status", string(status)),
		slog.String("color", status.Color()),
		slog.Int("hosts", len(stats)),
	)

	c.send(ctx, fmt.Sprintf("%s: Playbook complete", identity.TemplateName))

	if status == model.RunStatusFailure {
		c.send(ctx, fmt.Sprintf("%s: Failures detected", identity.PlaybookName))
	}

	c.send(ctx, fmt.Sprintf("```%s:\n%s```", identity.PlaybookName, summary))
}

func (c *SlackCallback) send(ctx context.Context, message string) {
	outcome := c.notifier.Send(ctx, message, false)
	if !outcome.Delivered() {
		c.logger(ctx).Warn("Could not submit message to Slack",
			slog.Any("error", outcome.Reason()),
		)
	}
}
