// filepath: internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"regexp"
	"strings"

	"otpsecret/internal/shared"

	"github.com/BurntSushi/toml"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the application's configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Output  OutputConfig  `toml:"output"`
	Deploy  DeployConfig  `toml:"deploy"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"` // audit events for generate and check
}

// OutputConfig controls how results are written to stdout.
type OutputConfig struct {
	Format string `toml:"format"` // "text" or "json"
}

// DeployConfig describes where the operator pastes the secret.
type DeployConfig struct {
	Platform string `toml:"platform"`
	App      string `toml:"app"`
	Variable string `toml:"variable"`
}

const configFileMode = 0644

// LogLevels lists the accepted logging.level values.
var LogLevels = []string{"trace", "debug", "info", "warn", "error"}

var variableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the configuration to a TOML file, replacing an existing one.
// The file is written next to path and renamed into place, so a failed save
// leaves the previous file intact.
func SaveConfig(path string, cfg *Config) error {
	data, err := encodeConfig(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("trying to save the config to %s: %w: %w", path, shared.ErrorCreateFile, err)
	}
	// no-op once the rename succeeded
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("trying to save the config to %s: %w: %w", path, shared.ErrorWriteFile, err)
	}
	if err := tmp.Chmod(configFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("trying to save the config to %s: %w: %w", path, shared.ErrorWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("trying to save the config to %s: %w: %w", path, shared.ErrorWriteFile, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("trying to save the config to %s: %w: %w", path, shared.ErrorWriteFile, err)
	}
	return nil
}

// CreateConfig writes the configuration to a new TOML file.
// It fails with shared.ErrConfigExists when path already exists.
func CreateConfig(path string, cfg *Config) error {
	data, err := encodeConfig(cfg)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, configFileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, shared.ErrConfigExists)
		}
		return fmt.Errorf("trying to save the config to %s: %w: %w", path, shared.ErrorCreateFile, err)
	}

	_, werr := f.Write(data)
	if err := errors.Join(werr, f.Close()); err != nil {
		os.Remove(path)
		return fmt.Errorf("trying to save the config to %s: %w: %w", path, shared.ErrorWriteFile, err)
	}
	return nil
}

// encodeConfig renders cfg before any file is touched.
func encodeConfig(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("trying to save the config: %w: %w", shared.ErrorEncodeFile, err)
	}
	return buf.Bytes(), nil
}

// ApplyDefaults fills every empty field.
func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Deploy.Platform == "" {
		c.Deploy.Platform = "لیارا"
	}
	if c.Deploy.App == "" {
		c.Deploy.App = "salamatlab-backend"
	}
	if c.Deploy.Variable == "" {
		c.Deploy.Variable = "OTP_SECRET"
	}
}

// ParseAndValidate normalizes the values and rejects the ones the tool cannot use.
func (c *Config) ParseAndValidate() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if !slices.Contains(LogLevels, c.Logging.Level) {
		return fmt.Errorf("%w: %q (expected one of %s)", shared.ErrInvalidLogLevel, c.Logging.Level, strings.Join(LogLevels, ", "))
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if err := ValidateFormat(c.Output.Format); err != nil {
		return err
	}
	if !variableRe.MatchString(c.Deploy.Variable) {
		return fmt.Errorf("%w: %q", shared.ErrInvalidVariable, c.Deploy.Variable)
	}
	return nil
}

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected %s or %s)", shared.ErrInvalidFormat, format, FormatText, FormatJSON)
	}
}
