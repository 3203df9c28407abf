package interfaces

import (
	"context"

	"github.com/m-mizutani/playbell/pkg/domain/model"
)

// Callback is the set of lifecycle hooks a host runtime invokes during a run.
// Hooks never return errors and must not panic.
type Callback interface {
	// Disabled reports whether the host runtime should skip this callback
	Disabled() bool

	OnAny(ctx context.Context, args ...any)

	RunnerOnFailed(ctx context.Context, host string, res model.TaskResult, ignoreErrors bool)
	RunnerOnOK(ctx context.Context, host string, res model.TaskResult)
	RunnerOnSkipped(ctx context.Context, host string, item string)
	RunnerOnUnreachable(ctx context.Context, host string, res model.TaskResult)
	RunnerOnNoHosts(ctx context.Context)
	RunnerOnAsyncPoll(ctx context.Context, host string, res model.TaskResult, jid string, clock int)
	RunnerOnAsyncOK(ctx context.Context, host string, res model.TaskResult, jid string)
	RunnerOnAsyncFailed(ctx context.Context, host string, res model.TaskResult, jid string)

	PlaybookOnStart(ctx context.Context)
	PlaybookOnNotify(ctx context.Context, host string, handler string)
	PlaybookOnNoHostsMatched(ctx context.Context)
	PlaybookOnNoHostsRemaining(ctx context.Context)
	PlaybookOnTaskStart(ctx context.Context, name string, isConditional bool)
	PlaybookOnVarsPrompt(ctx context.Context, prompt model.VarsPrompt)
	PlaybookOnSetup(ctx context.Context)
	PlaybookOnImportForHost(ctx context.Context, host string, importedFile string)
	PlaybookOnNotImportForHost(ctx context.Context, host string, missingFile string)
	PlaybookOnPlayStart(ctx context.Context, name string, run model.RunContext)
	PlaybookOnStats(ctx context.Context, stats model.Stats)
}
