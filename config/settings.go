package config

import (
	"fmt"

	"github.com/skillsenselab/wirekit/di"
	"github.com/skillsenselab/wirekit/logger"
)

// Settings contains the configuration surface of the resolution engine.
// Applications embed this struct in their own config types.
//
// Example:
//
//	type AppConfig struct {
//	    config.Settings `yaml:",inline" mapstructure:",squash"`
//	    Server          ServerConfig `yaml:"server" mapstructure:"server"`
//	}
type Settings struct {
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Resolver    di.Config     `yaml:"resolver" mapstructure:"resolver"`
}

// ApplyDefaults applies default values to the settings.
// Override this in embedding structs and call Settings.ApplyDefaults first.
func (s *Settings) ApplyDefaults() {
	if s.Environment == "" {
		s.Environment = "development"
	}
	if s.Environment == "development" {
		s.Debug = true
	}
	s.Logging.ApplyDefaults()
	s.Resolver.ApplyDefaults()
}

// Validate validates the settings.
// Override this in embedding structs and call Settings.Validate first.
func (s *Settings) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if s.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("environment must be one of [development, staging, production] (got: %s)", s.Environment)
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := s.Resolver.Validate(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}
	return nil
}
