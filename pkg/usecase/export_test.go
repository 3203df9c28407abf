package usecase

import "github.com/m-mizutani/playbell/pkg/domain/interfaces"

// Export for testing
var MaskWebhookURL = maskWebhookURL

// NewConfigServiceWithEnv creates a ConfigService reading env instead of the
// process environment
func NewConfigServiceWithEnv(env map[string]string) interfaces.ConfigService {
	return &configService{
		lookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
}
