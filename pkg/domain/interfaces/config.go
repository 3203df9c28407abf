package interfaces

import (
	"github.com/m-mizutani/playbell/pkg/domain/model"
)

// ConfigService resolves the adapter configuration
type ConfigService interface {
	// Load reads the YAML file at path (skipped when path is empty) and
	// overlays the WEBHOOK_* environment variables on top of it.
	Load(path string) (*model.Config, error)
	GetDefaultPath() string
	GenerateTemplate() string
	SaveTemplate(path string, force bool) error
}
