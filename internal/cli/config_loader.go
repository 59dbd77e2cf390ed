// filepath: internal/cli/config_loader.go
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"otpsecret/internal/audit"
	"otpsecret/internal/config"
	"otpsecret/internal/logging"
	"otpsecret/internal/shared"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "otpsecret.toml"

// initializeConfig loads the config file and applies env and flag overrides.
func (options *GlobalOptions) initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("OTPSECRET_CONFIG_PATH"); envPath != "" && !cmd.Flags().Changed("config_path") {
		options.CfgFilePath = envPath
	}
	if options.CfgFilePath == "" {
		options.CfgFilePath = defaultConfigPath
	}

	fileFound := true
	conf, err := config.LoadConfig(options.CfgFilePath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load configuration from %s: %w", options.CfgFilePath, err)
		}
		// no file is fine, rely on defaults/env/flags
		conf = &config.Config{}
		fileFound = false
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	if err := options.applyOverrides(conf, cmd); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 3. Validate
	if err := conf.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	options.Conf = conf

	// 4. Initialize Logging
	options.Logger = logging.NewLoggerTo(cmd.ErrOrStderr(), conf.Logging.Level)
	options.Auditor = audit.NewLoggerAuditor(cmd.ErrOrStderr(), conf.Logging.AuditEnabled)
	if fileFound {
		options.Logger.Debugf("Loaded configuration from %s", options.CfgFilePath)
	} else {
		options.Logger.Debugf("No configuration at %s, using defaults", options.CfgFilePath)
	}

	return nil
}

func (options *GlobalOptions) applyOverrides(c *config.Config, cmd *cobra.Command) error {
	getEnv := func(key string) string { return os.Getenv(key) }

	// --- Environment Variables ---
	if v := getEnv("OTPSECRET_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("OTPSECRET_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := getEnv("OTPSECRET_PLATFORM"); v != "" {
		c.Deploy.Platform = v
	}
	if v := getEnv("OTPSECRET_APP"); v != "" {
		c.Deploy.App = v
	}
	if v := getEnv("OTPSECRET_VARIABLE"); v != "" {
		c.Deploy.Variable = v
	}
	if v := getEnv("OTPSECRET_AUDIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OTPSECRET_AUDIT_ENABLED: %w: %q", shared.ErrInvalidBool, v)
		}
		c.Logging.AuditEnabled = b
	}

	// --- CLI Flags ---
	if options.LogLevel != "" {
		c.Logging.Level = options.LogLevel
	}
	if options.Format != "" {
		c.Output.Format = string(options.Format)
	}
	if cmd.Flags().Changed("audit-enabled") {
		c.Logging.AuditEnabled = options.AuditEnabled
	}

	// --- Defaults ---
	c.ApplyDefaults()
	return nil
}
