package di

import "fmt"

// OnMissing policies for types that cannot be resolved.
const (
	// OnMissingError fails the resolve call with an unresolvable-dependency
	// error.
	OnMissingError = "error"
	// OnMissingDefault yields a bare default value instead of failing.
	OnMissingDefault = "default"
)

// Config contains container configuration.
type Config struct {
	OnMissing      string `yaml:"on_missing" mapstructure:"on_missing"`
	LogResolutions bool   `yaml:"log_resolutions" mapstructure:"log_resolutions"`
}

// ApplyDefaults applies default values to container configuration.
func (c *Config) ApplyDefaults() {
	if c.OnMissing == "" {
		c.OnMissing = OnMissingError
	}
}

// Validate validates container configuration.
func (c *Config) Validate() error {
	valid := []string{OnMissingError, OnMissingDefault}
	for _, v := range valid {
		if c.OnMissing == v {
			return nil
		}
	}
	return fmt.Errorf("resolver.on_missing must be one of %v (got: %s)", valid, c.OnMissing)
}
