package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/playbell/pkg/cli"
	"github.com/m-mizutani/playbell/pkg/domain/model"
)

type webhookRecorder struct {
	mu       sync.Mutex
	paths    []string
	payloads []model.SlackPayload
}

func (r *webhookRecorder) handler(t *testing.T, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var p model.SlackPayload
		gt.NoError(t, json.NewDecoder(req.Body).Decode(&p))
		r.mu.Lock()
		r.paths = append(r.paths, req.URL.Path)
		r.payloads = append(r.payloads, p)
		r.mu.Unlock()
		w.WriteHeader(status)
	}
}

func (r *webhookRecorder) Payloads() []model.SlackPayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.SlackPayload(nil), r.payloads...)
}

func clearWebhookEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"WEBHOOK_TOKEN", "WEBHOOK_CHANNEL", "WEBHOOK_FROM", "WEBHOOK_NOTIFY", "PLAYBELL_CONFIG"} {
		t.Setenv(key, "")
		gt.NoError(t, os.Unsetenv(key))
	}
}

const eventStream = `{"event":"playbook_on_start"}
{"event":"playbook_on_play_start","name":"web","vars":{"tower_job_template_name":"Deploy"},"playbook_file":"/srv/site.yml"}
{"event":"runner_on_ok","host":"web1","result":{"changed":true}}
{"event":"runner_on_unreachable","host":"db1","result":{"msg":"timeout"}}
{"event":"playbook_on_stats","stats":{"web1":{"ok":5,"changed":2,"unreachable":0,"failures":0},"db1":{"ok":3,"changed":0,"unreachable":1,"failures":0}}}
`

func TestRunCommand(t *testing.T) {
	t.Run("Sends summary for event stream", func(t *testing.T) {
		clearWebhookEnv(t)
		t.Setenv("WEBHOOK_TOKEN", "T000/B000/XXXX")
		t.Setenv("WEBHOOK_FROM", "automation-platform-bot")

		rec := &webhookRecorder{}
		server := httptest.NewServer(rec.handler(t, http.StatusOK))
		defer server.Close()

		app := cli.NewCommand()
		app.Reader = strings.NewReader(eventStream)
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"playbell", "--base-url", server.URL + "/services/", "run"})
		gt.NoError(t, err)

		payloads := rec.Payloads()
		gt.Equal(t, len(payloads), 3)
		gt.Equal(t, payloads[0].Text, "Deploy: Playbook complete")
		gt.Equal(t, payloads[1].Text, "site: Failures detected")
		gt.True(t, strings.HasPrefix(payloads[2].Text, "```site:\n"))
		for _, p := range payloads {
			gt.Equal(t, p.Channel, "#ansible")
			gt.Equal(t, p.UserName, "automation-plat")
		}
		gt.Equal(t, rec.paths[0], "/services/T000/B000/XXXX")
	})

	t.Run("Missing token sends nothing", func(t *testing.T) {
		clearWebhookEnv(t)

		rec := &webhookRecorder{}
		server := httptest.NewServer(rec.handler(t, http.StatusOK))
		defer server.Close()

		app := cli.NewCommand()
		app.Reader = strings.NewReader(eventStream)
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"playbell", "--base-url", server.URL + "/"})
		gt.NoError(t, err)
		gt.Equal(t, len(rec.Payloads()), 0)
	})

	t.Run("Unreadable config file disables relaying", func(t *testing.T) {
		clearWebhookEnv(t)
		t.Setenv("WEBHOOK_TOKEN", "T000/B000/XXXX")

		rec := &webhookRecorder{}
		server := httptest.NewServer(rec.handler(t, http.StatusOK))
		defer server.Close()

		input := strings.NewReader(eventStream)
		app := cli.NewCommand()
		app.Reader = input
		app.Writer = &bytes.Buffer{}

		missing := filepath.Join(t.TempDir(), "missing.yml")
		err := app.Run(context.Background(), []string{"playbell", "--config", missing, "--base-url", server.URL + "/", "run"})
		gt.NoError(t, err)
		gt.Equal(t, len(rec.Payloads()), 0)
		gt.Equal(t, input.Len(), 0)
	})

	t.Run("Invalid config file disables relaying", func(t *testing.T) {
		clearWebhookEnv(t)
		t.Setenv("WEBHOOK_TOKEN", "T000/B000/XXXX")

		rec := &webhookRecorder{}
		server := httptest.NewServer(rec.handler(t, http.StatusOK))
		defer server.Close()

		path := filepath.Join(t.TempDir(), "config.yml")
		gt.NoError(t, os.WriteFile(path, []byte("token: [unterminated"), 0600))

		app := cli.NewCommand()
		app.Reader = strings.NewReader(eventStream)
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"playbell", "--config", path, "--base-url", server.URL + "/"})
		gt.NoError(t, err)
		gt.Equal(t, len(rec.Payloads()), 0)
	})

	t.Run("Webhook failure does not fail the run", func(t *testing.T) {
		clearWebhookEnv(t)
		t.Setenv("WEBHOOK_TOKEN", "token")

		rec := &webhookRecorder{}
		server := httptest.NewServer(rec.handler(t, http.StatusInternalServerError))
		defer server.Close()

		app := cli.NewCommand()
		app.Reader = strings.NewReader(eventStream)
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"playbell", "--base-url", server.URL + "/"})
		gt.NoError(t, err)
		gt.Equal(t, len(rec.Payloads()), 3)
	})
}

func TestSendCommand(t *testing.T) {
	t.Run("Sends message", func(t *testing.T) {
		clearWebhookEnv(t)
		t.Setenv("WEBHOOK_TOKEN", "token")
		t.Setenv("WEBHOOK_CHANNEL", "#ops")

		rec := &webhookRecorder{}
		server := httptest.NewServer(rec.handler(t, http.StatusOK))
		defer server.Close()

		var out bytes.Buffer
		app := cli.NewCommand()
		app.Writer = &out

		err := app.Run(context.Background(), []string{"playbell", "--base-url", server.URL + "/", "send", "hello", "world"})
		gt.NoError(t, err)

		payloads := rec.Payloads()
		gt.Equal(t, len(payloads), 1)
		gt.Equal(t, payloads[0].Text, "hello world")
		gt.Equal(t, payloads[0].Channel, "#ops")
		gt.True(t, strings.Contains(out.String(), "Message sent to #ops"))
	})

	t.Run("Fails without token", func(t *testing.T) {
		clearWebhookEnv(t)

		app := cli.NewCommand()
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"playbell", "send", "hello"})
		gt.Error(t, err)
	})

	t.Run("Fails without message", func(t *testing.T) {
		clearWebhookEnv(t)
		t.Setenv("WEBHOOK_TOKEN", "token")

		app := cli.NewCommand()
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"playbell", "send"})
		gt.Error(t, err)
	})

	t.Run("Reports delivery failure", func(t *testing.T) {
		clearWebhookEnv(t)
		t.Setenv("WEBHOOK_TOKEN", "token")

		rec := &webhookRecorder{}
		server := httptest.NewServer(rec.handler(t, http.StatusForbidden))
		defer server.Close()

		var out bytes.Buffer
		app := cli.NewCommand()
		app.Writer = &out

		err := app.Run(context.Background(), []string{"playbell", "--base-url", server.URL + "/", "send", "hello"})
		gt.Error(t, err)
		gt.True(t, strings.Contains(out.String(), "Could not submit message"))
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("show masks token", func(t *testing.T) {
		clearWebhookEnv(t)
		t.Setenv("WEBHOOK_TOKEN", "T0123/B4567/secret")
		t.Setenv("WEBHOOK_FROM", "a-very-long-automation-username")

		var out bytes.Buffer
		app := cli.NewCommand()
		app.Writer = &out

		gt.NoError(t, app.Run(context.Background(), []string{"playbell", "config", "show"}))

		text := out.String()
		gt.True(t, strings.Contains(text, "enabled"))
		gt.True(t, strings.Contains(text, "T012***"))
		gt.False(t, strings.Contains(text, "secret"))
		gt.True(t, strings.Contains(text, "a-very-long-aut"))
	})

	t.Run("show reports disabled without token", func(t *testing.T) {
		clearWebhookEnv(t)

		var out bytes.Buffer
		app := cli.NewCommand()
		app.Writer = &out

		gt.NoError(t, app.Run(context.Background(), []string{"playbell", "config", "show"}))
		gt.True(t, strings.Contains(out.String(), "disabled"))
		gt.True(t, strings.Contains(out.String(), "(not set)"))
	})

	t.Run("init writes template that show can load", func(t *testing.T) {
		clearWebhookEnv(t)
		path := filepath.Join(t.TempDir(), "config.yml")

		app := cli.NewCommand()
		app.Writer = &bytes.Buffer{}
		gt.NoError(t, app.Run(context.Background(), []string{"playbell", "config", "init", "--output", path}))

		_, err := os.Stat(path)
		gt.NoError(t, err)

		var out bytes.Buffer
		app = cli.NewCommand()
		app.Writer = &out
		gt.NoError(t, app.Run(context.Background(), []string{"playbell", "--config", path, "config", "show"}))
		gt.True(t, strings.Contains(out.String(), "#ansible"))
	})
}
