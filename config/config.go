// Package config defines the robotsim configuration file and how it is read.
package config

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/robotsim/referenceframe/urdf"
	"go.viam.com/robotsim/utils"
)

// DefaultTimeStep is the number of seconds one Apply integrates when time_step is not set.
const DefaultTimeStep = 1.0

// Config describes which robot to load and how to drive it.
type Config struct {
	ConfigFilePath string `json:"-"`

	Description       string      `json:"description"`
	Xacro             XacroConfig `json:"xacro"`
	MeshDir           string      `json:"mesh_dir,omitempty"`
	TimeStep          float64     `json:"time_step,omitempty"`
	DifferentialDrive *bool       `json:"differential_drive,omitempty"`
	Debug             bool        `json:"debug,omitempty"`
}

// XacroConfig configures the external macro expander.
type XacroConfig struct {
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// New returns a config for description with every default applied.
func New(description string) *Config {
	cfg := &Config{Description: description}
	cfg.applyDefaults()
	return cfg
}

// DifferentialDriveEnabled reports whether continuous joints are driven as wheels.
func (c *Config) DifferentialDriveEnabled() bool {
	return c.DifferentialDrive == nil || *c.DifferentialDrive
}

// Ensure applies defaults and validates the config.
func (c *Config) Ensure() error {
	c.applyDefaults()
	return c.Validate("")
}

func (c *Config) applyDefaults() {
	if c.Xacro.Command == "" {
		c.Xacro.Command = urdf.DefaultXacroCommand
	}
	if c.TimeStep == 0 {
		c.TimeStep = DefaultTimeStep
	}
	if c.DifferentialDrive == nil {
		enabled := true
		c.DifferentialDrive = &enabled
	}
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if c.Description == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "description")
	}
	if !utils.HasExtension(c.Description, urdf.Extension) && !utils.HasExtension(c.Description, urdf.XacroExtension) {
		return utils.NewConfigValidationError(fieldPath(path, "description"),
			errors.Errorf("%q is not a %s or %s file", c.Description, urdf.Extension, urdf.XacroExtension))
	}
	if c.TimeStep < 0 {
		return utils.NewConfigValidationError(fieldPath(path, "time_step"),
			errors.Errorf("must be positive, got %v", c.TimeStep))
	}
	return nil
}

func fieldPath(path, field string) string {
	if path == "" {
		return field
	}
	return fmt.Sprintf("%s.%s", path, field)
}
