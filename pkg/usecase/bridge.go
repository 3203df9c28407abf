package usecase

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/playbell/pkg/domain"
	"github.com/m-mizutani/playbell/pkg/domain/interfaces"
	"github.com/m-mizutani/playbell/pkg/domain/model"
	"github.com/tidwall/gjson"
)

// DefaultMaxEventSize bounds one line of the event stream. Stats of large
// inventories can get big.
const DefaultMaxEventSize = 16 * 1024 * 1024

type eventHandler func(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error

// Bridge feeds newline delimited JSON callback events from a host runtime
// into a Callback.
//
// Each line is an object with an "event" field naming the callback, for
// example {"event":"playbook_on_stats","stats":{"web1":{"ok":1}}}.
type Bridge struct {
	callback     interfaces.Callback
	handlers     map[model.CallbackEvent]eventHandler
	maxEventSize int
}

type BridgeOption func(*Bridge)

// WithMaxEventSize sets the longest line accepted from the event stream
func WithMaxEventSize(size int) BridgeOption {
	return func(b *Bridge) {
		if size > 0 {
			b.maxEventSize = size
		}
	}
}

// NewBridge creates a Bridge dispatching to callback
func NewBridge(callback interfaces.Callback, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		callback:     callback,
		maxEventSize: DefaultMaxEventSize,
		handlers: map[model.CallbackEvent]eventHandler{
			model.EventOnAny:                      handleOnAny,
			model.EventRunnerOnFailed:             handleRunnerOnFailed,
			model.EventRunnerOnOK:                 handleRunnerOnOK,
			model.EventRunnerOnSkipped:            handleRunnerOnSkipped,
			model.EventRunnerOnUnreachable:        handleRunnerOnUnreachable,
			model.EventRunnerOnNoHosts:            handleRunnerOnNoHosts,
			model.EventRunnerOnAsyncPoll:          handleRunnerOnAsyncPoll,
			model.EventRunnerOnAsyncOK:            handleRunnerOnAsyncOK,
			model.EventRunnerOnAsyncFailed:        handleRunnerOnAsyncFailed,
			model.EventPlaybookOnStart:            handlePlaybookOnStart,
			model.EventPlaybookOnNotify:           handlePlaybookOnNotify,
			model.EventPlaybookOnNoHostsMatched:   handlePlaybookOnNoHostsMatched,
			model.EventPlaybookOnNoHostsRemaining: handlePlaybookOnNoHostsRemaining,
			model.EventPlaybookOnTaskStart:        handlePlaybookOnTaskStart,
			model.EventPlaybookOnVarsPrompt:       handlePlaybookOnVarsPrompt,
			model.EventPlaybookOnSetup:            handlePlaybookOnSetup,
			model.EventPlaybookOnImportForHost:    handlePlaybookOnImportForHost,
			model.EventPlaybookOnNotImportForHost: handlePlaybookOnNotImportForHost,
			model.EventPlaybookOnPlayStart:        handlePlaybookOnPlayStart,
			model.EventPlaybookOnStats:            handlePlaybookOnStats,
		},
	}

	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run reads events from r until EOF or context cancellation. Malformed and
// oversized lines are logged and skipped; only a read failure of r is
// returned.
func (b *Bridge) Run(ctx context.Context, r io.Reader) error {
	logger := ctxlog.From(ctx)

	if b.callback.Disabled() {
		logger.Debug("Callback is disabled, draining event stream")
		if _, err := io.Copy(io.Discard, r); err != nil {
			return goerr.Wrap(err, "failed to read event stream")
		}
		return nil
	}

	reader := bufio.NewReaderSize(r, 64*1024)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := b.readEvent(reader)
		if line == nil && readErr == nil {
			logger.Warn("Skipped callback event",
				slog.String("error", domain.ErrEventDecode.Wrap(
					goerr.New("event exceeds size limit", goerr.V("limit", b.maxEventSize)),
				).Error()),
			)
		}

		if line = bytes.TrimRight(line, "\r\n"); len(line) > 0 {
			if err := b.Dispatch(ctx, line); err != nil {
				logger.Warn("Skipped callback event",
					slog.String("error", err.Error()),
				)
			}
		}

		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return goerr.Wrap(readErr, "failed to read event stream")
		}
	}
}

// readEvent returns the next line including its terminator. A line longer
// than the size limit is consumed and discarded, and then nil is returned with
// a nil error.
func (b *Bridge) readEvent(reader *bufio.Reader) ([]byte, error) {
	var line []byte
	oversized := false

	for {
		chunk, err := reader.ReadSlice('\n')
		if !oversized {
			if len(line)+len(chunk) > b.maxEventSize+1 {
				oversized = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}

		if err == bufio.ErrBufferFull {
			continue
		}
		if oversized {
			if err == io.EOF {
				// Report the skip first; the next call hits EOF again
				return nil, nil
			}
			return nil, err
		}
		if line == nil && err == nil {
			line = []byte{}
		}
		return line, err
	}
}

// Dispatch decodes one event and invokes the matching hook. A panicking hook
// is recovered so that the host runtime keeps going.
func (b *Bridge) Dispatch(ctx context.Context, line []byte) (err error) {
	var name string
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New("callback panicked",
				goerr.V("event", name),
				goerr.V("panic", r),
			)
		}
	}()

	if !gjson.ValidBytes(line) {
		return domain.ErrEventDecode.Wrap(goerr.New("invalid JSON"))
	}

	ev := gjson.ParseBytes(line)
	name = ev.Get("event").String()
	if name == "" {
		return domain.ErrEventDecode.Wrap(goerr.New("event name is missing"))
	}

	handler, ok := b.handlers[model.CallbackEvent(name)]
	if !ok {
		ctxlog.From(ctx).Debug("Unknown callback event",
			slog.String("event", name),
		)
		b.callback.OnAny(ctx, name, ev.Value())
		return nil
	}

	if err := handler(ctx, b.callback, ev); err != nil {
		return domain.ErrEventDecode.Wrap(err)
	}
	return nil
}

func taskResult(v gjson.Result) model.TaskResult {
	if m, ok := v.Value().(map[string]any); ok {
		return m
	}
	return nil
}

func decodeInto(v gjson.Result, dst any) error {
	if !v.Exists() {
		return nil
	}
	if err := json.Unmarshal([]byte(v.Raw), dst); err != nil {
		return goerr.Wrap(err, "failed to decode event field")
	}
	return nil
}

func handleOnAny(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	var args []any
	for _, arg := range ev.Get("args").Array() {
		args = append(args, arg.Value())
	}
	cb.OnAny(ctx, args...)
	return nil
}

func handleRunnerOnFailed(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.RunnerOnFailed(ctx, ev.Get("host").String(), taskResult(ev.Get("result")), ev.Get("ignore_errors").Bool())
	return nil
}

func handleRunnerOnOK(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.RunnerOnOK(ctx, ev.Get("host").String(), taskResult(ev.Get("result")))
	return nil
}

func handleRunnerOnSkipped(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.RunnerOnSkipped(ctx, ev.Get("host").String(), ev.Get("item").String())
	return nil
}

func handleRunnerOnUnreachable(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.RunnerOnUnreachable(ctx, ev.Get("host").String(), taskResult(ev.Get("result")))
	return nil
}

func handleRunnerOnNoHosts(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.RunnerOnNoHosts(ctx)
	return nil
}

func handleRunnerOnAsyncPoll(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.RunnerOnAsyncPoll(ctx, ev.Get("host").String(), taskResult(ev.Get("result")),
		ev.Get("jid").String(), int(ev.Get("clock").Int()))
	return nil
}

func handleRunnerOnAsyncOK(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.RunnerOnAsyncOK(ctx, ev.Get("host").String(), taskResult(ev.Get("result")), ev.Get("jid").String())
	return nil
}

func handleRunnerOnAsyncFailed(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.RunnerOnAsyncFailed(ctx, ev.Get("host").String(), taskResult(ev.Get("result")), ev.Get("jid").String())
	return nil
}

func handlePlaybookOnStart(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.PlaybookOnStart(ctx)
	return nil
}

func handlePlaybookOnNotify(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.PlaybookOnNotify(ctx, ev.Get("host").String(), ev.Get("handler").String())
	return nil
}

func handlePlaybookOnNoHostsMatched(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.PlaybookOnNoHostsMatched(ctx)
	return nil
}

func handlePlaybookOnNoHostsRemaining(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.PlaybookOnNoHostsRemaining(ctx)
	return nil
}

func handlePlaybookOnTaskStart(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.PlaybookOnTaskStart(ctx, ev.Get("name").String(), ev.Get("is_conditional").Bool())
	return nil
}

func handlePlaybookOnVarsPrompt(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	var prompt model.VarsPrompt
	if err := decodeInto(ev.Get("prompt"), &prompt); err != nil {
		return err
	}
	cb.PlaybookOnVarsPrompt(ctx, prompt)
	return nil
}

func handlePlaybookOnSetup(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.PlaybookOnSetup(ctx)
	return nil
}

func handlePlaybookOnImportForHost(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.PlaybookOnImportForHost(ctx, ev.Get("host").String(), ev.Get("file").String())
	return nil
}

func handlePlaybookOnNotImportForHost(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	cb.PlaybookOnNotImportForHost(ctx, ev.Get("host").String(), ev.Get("file").String())
	return nil
}

// handlePlaybookOnPlayStart accepts either a ready "run" object or the raw
// play fields (vars, playbook_file, host_list, skip_tags).
func handlePlaybookOnPlayStart(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	var run model.RunContext

	if raw := ev.Get("run"); raw.Exists() {
		if err := decodeInto(raw, &run); err != nil {
			return err
		}
	} else {
		var skipTags []string
		for _, tag := range ev.Get("skip_tags").Array() {
			skipTags = append(skipTags, tag.String())
		}
		vars, _ := ev.Get("vars").Value().(map[string]any)
		run = model.NewRunContext(vars, ev.Get("playbook_file").String(), ev.Get("host_list").String(), skipTags)
	}

	cb.PlaybookOnPlayStart(ctx, ev.Get("name").String(), run)
	return nil
}

func handlePlaybookOnStats(ctx context.Context, cb interfaces.Callback, ev gjson.Result) error {
	stats, err := decodeStats(ev.Get("stats"))
	if err != nil {
		return err
	}
	cb.PlaybookOnStats(ctx, stats)
	return nil
}

// decodeStats reads counters leniently, so 1.0 and "1" both count as 1
func decodeStats(v gjson.Result) (model.Stats, error) {
	stats := model.Stats{}
	if !v.Exists() || v.Type == gjson.Null {
		return stats, nil
	}
	if !v.IsObject() {
		return nil, goerr.New("stats is not an object", goerr.V("stats", v.Raw))
	}

	var err error
	v.ForEach(func(host, summary gjson.Result) bool {
		if !summary.IsObject() {
			err = goerr.New("host summary is not an object",
				goerr.V("host", host.String()),
				goerr.V("summary", summary.Raw),
			)
			return false
		}
		stats[host.String()] = model.HostSummary{
			OK:          int(summary.Get("ok").Int()),
			Changed:     int(summary.Get("changed").Int()),
			Unreachable: int(summary.Get("unreachable").Int()),
			Failures:    int(summary.Get("failures").Int()),
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
