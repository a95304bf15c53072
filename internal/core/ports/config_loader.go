package ports

import "github.com/cdolfi/explorer/internal/core/domain"

// ConfigLoader defines the interface for loading runtime settings.
type ConfigLoader interface {
	// Load reads the settings from path. A missing file yields the defaults.
	Load(path string) (domain.Settings, error)
}
