package usecase

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/playbell/pkg/domain"
	"github.com/m-mizutani/playbell/pkg/domain/interfaces"
	"github.com/m-mizutani/playbell/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the config service
const (
	EnvToken   = "WEBHOOK_TOKEN"
	EnvChannel = "WEBHOOK_CHANNEL"
	EnvFrom    = "WEBHOOK_FROM"
	EnvNotify  = "WEBHOOK_NOTIFY"
)

type configService struct {
	lookupEnv func(string) (string, bool)
}

// NewConfigService creates a ConfigService reading the process environment
func NewConfigService() interfaces.ConfigService {
	return &configService{lookupEnv: os.LookupEnv}
}

// Load resolves the configuration. Values from the YAML file at path are
// overridden by environment variables that are set.
func (c *configService) Load(path string) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path != "" {
		if err := c.loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	c.applyEnv(cfg)
	return cfg, nil
}

func (c *configService) loadFile(path string, cfg *model.Config) error {
	data, err := os.ReadFile(path) // #nosec G304 - path is given by the operator
	if err != nil {
		return domain.ErrConfiguration.Wrap(goerr.Wrap(err, "failed to read config file", goerr.V("path", path)))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return domain.ErrConfiguration.Wrap(goerr.Wrap(err, "failed to parse config file", goerr.V("path", path)))
	}

	return nil
}

func (c *configService) applyEnv(cfg *model.Config) {
	if v, ok := c.lookupEnv(EnvToken); ok {
		cfg.Token = v
	}
	if v, ok := c.lookupEnv(EnvChannel); ok {
		cfg.Channel = v
	}
	if v, ok := c.lookupEnv(EnvFrom); ok {
		cfg.UserName = v
	}
	// Anything but the literal "false" keeps notify enabled
	if v, ok := c.lookupEnv(EnvNotify); ok {
		cfg.AllowNotify = v != "false"
	}
}

func (c *configService) GetDefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "playbell", "config.yml")
}

func (c *configService) GenerateTemplate() string {
	return `# playbell configuration
# Environment variables (WEBHOOK_TOKEN, WEBHOOK_CHANNEL, WEBHOOK_FROM,
# WEBHOOK_NOTIFY) take precedence over values in this file.

# Incoming webhook token, the part after https://hooks.slack.com/services/
token: ""

# Channel to post in
channel: "#ansible"

# Name to post as, at most 15 characters are used
username: ansible

# Add notify flag to important messages
notify: true
`
}

func (c *configService) SaveTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return domain.ErrConfiguration.Wrap(goerr.New("config file already exists, use --force to overwrite", goerr.V("path", path)))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return domain.ErrConfiguration.Wrap(err)
	}

	if err := os.WriteFile(path, []byte(c.GenerateTemplate()), 0600); err != nil {
		return domain.ErrConfiguration.Wrap(err)
	}

	return nil
}
