package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/playbell/pkg/domain/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	gt.Equal(t, cfg.Channel, "#ansible")
	gt.Equal(t, cfg.UserName, "ansible")
	gt.True(t, cfg.AllowNotify)
	gt.False(t, cfg.Enabled())
}

func TestConfigEnabled(t *testing.T) {
	t.Run("with token", func(t *testing.T) {
		cfg := model.DefaultConfig()
		cfg.Token = "T000/B000/XXX"
		gt.True(t, cfg.Enabled())
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg *model.Config
		gt.False(t, cfg.Enabled())
	})
}

func TestTruncateUserName(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short", input: "ansible", want: "ansible"},
		{name: "exact", input: "abcdefghijklmno", want: "abcdefghijklmno"},
		{name: "long", input: "deployment-notifier-bot", want: "deployment-noti"},
		{name: "multibyte", input: "デプロイ通知ボット・本番環境用アカウント", want: "デプロイ通知ボット・本番環境用"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, model.TruncateUserName(tc.input), tc.want)
		})
	}
}

func TestMaskedToken(t *testing.T) {
	cfg := &model.Config{Token: "T0123/B4567/secret"}
	gt.Equal(t, cfg.MaskedToken(), "T012***")

	cfg.Token = ""
	gt.Equal(t, cfg.MaskedToken(), "")
}
