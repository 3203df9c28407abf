package model

import "unicode/utf8"

const (
	// SlackWebhookBaseURL is the prefix the webhook token is appended to.
	SlackWebhookBaseURL = "https://hooks.slack.com/services/"

	DefaultChannel  = "#ansible"
	DefaultUserName = "ansible"

	// MaxUserNameLength is the longest sender name the webhook accepts.
	MaxUserNameLength = 15
)

// Config represents the adapter configuration. It is resolved once at startup
// and must not be modified afterwards.
type Config struct {
	Token       string `yaml:"token"`
	Channel     string `yaml:"channel"`
	UserName    string `yaml:"username"`
	AllowNotify bool   `yaml:"notify"`
}

// DefaultConfig returns a config with every optional field set to its default
func DefaultConfig() *Config {
	return &Config{
		Channel:     DefaultChannel,
		UserName:    DefaultUserName,
		AllowNotify: true,
	}
}

// Enabled reports whether a webhook token is available
func (c *Config) Enabled() bool {
	return c != nil && c.Token != ""
}

// SenderName returns UserName cut to MaxUserNameLength characters
func (c *Config) SenderName() string {
	return TruncateUserName(c.UserName)
}

// MaskedToken hides all but the first characters of the token
func (c *Config) MaskedToken() string {
	if c.Token == "" {
		return ""
	}
	if len(c.Token) <= 4 {
		return "***"
	}
	return c.Token[:4] + "***"
}

// TruncateUserName cuts name to MaxUserNameLength runes.
func TruncateUserName(name string) string {
	if utf8.RuneCountInString(name) <= MaxUserNameLength {
		return name
	}
	runes := []rune(name)
	return string(runes[:MaxUserNameLength])
}
