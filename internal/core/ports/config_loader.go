package ports

import "go.trai.ch/labelsync/internal/core/domain"

// ConfigLoader defines the interface for loading the labeler configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path on top of the defaults.
	// An empty path loads domain.ConfigFileName from the working directory if it exists.
	Load(path string) (domain.Config, error)
}
