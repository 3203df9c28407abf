package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/playbell/pkg/domain"
	"github.com/m-mizutani/playbell/pkg/domain/interfaces"
	"github.com/m-mizutani/playbell/pkg/domain/model"
)

// DefaultRequestTimeout bounds a single webhook request
const DefaultRequestTimeout = 30 * time.Second

type SlackNotifier struct {
	config     *model.Config
	baseURL    string
	httpClient *http.Client
}

type SlackNotifierOption func(*SlackNotifier)

// WithBaseURL replaces the Slack webhook base URL. The token is appended to it.
func WithBaseURL(baseURL string) SlackNotifierOption {
	return func(n *SlackNotifier) {
		n.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) SlackNotifierOption {
	return func(n *SlackNotifier) {
		n.httpClient = client
	}
}

// NewSlackNotifier creates a Notifier posting to the Slack incoming webhook
// identified by config.Token
func NewSlackNotifier(config *model.Config, opts ...SlackNotifierOption) interfaces.Notifier {
	n := &SlackNotifier{
		config:  config,
		baseURL: model.SlackWebhookBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send posts message to the configured channel. notify is accepted for
// interface compatibility and currently has no effect on the payload.
func (n *SlackNotifier) Send(ctx context.Context, message string, notify bool) model.Outcome {
	logger := ctxlog.From(ctx)

	payload := model.SlackPayload{
		Channel:  n.config.Channel,
		UserName: n.config.SenderName(),
		Text:     message,
	}

	if err := n.post(ctx, payload); err != nil {
		logger.Debug("Slack webhook request failed",
			slog.String("error", err.Error()),
			slog.Bool("notify", notify),
		)
		return model.Failed(domain.ErrDelivery.Wrap(err))
	}

	logger.Debug("Slack notification sent",
		slog.String("channel", payload.Channel),
		slog.Int("length", len(message)),
	)
	return model.Delivered()
}

func (n *SlackNotifier) post(ctx context.Context, payload model.SlackPayload) error {
	logger := ctxlog.From(ctx)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal slack payload")
	}

	webhookURL := n.baseURL + n.config.Token
	logger.Debug("Sending to Slack",
		slog.String("webhook_url", maskWebhookURL(webhookURL)),
		slog.String("payload", string(jsonData)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response",
			goerr.V("status", resp.StatusCode),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.New("slack webhook returned error status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	return nil
}

// maskWebhookURL masks the webhook URL for logging
func maskWebhookURL(url string) string {
	if strings.Contains(url, "hooks.slack.com") {
		parts := strings.Split(url, "/")
		if len(parts) > 3 {
			for i := len(parts) - 3; i < len(parts); i++ {
				if len(parts[i]) > 4 {
					parts[i] = parts[i][:2] + "***"
				}
			}
			return strings.Join(parts, "/")
		}
	}
	if len(url) > 20 {
		return url[:20] + "***"
	}
	return "***"
}
