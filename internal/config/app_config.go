// Package config loads the presentation settings of repostats.
// The exclusion rules are fixed and deliberately absent from it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/temirov/repostats/internal/types"
	"github.com/temirov/repostats/internal/utils"
)

const (
	progressEnabledKey     = "progress.enabled"
	progressDenominatorKey = "progress.denominator"
	progressIntervalKey    = "progress.interval"

	defaultProgressInterval = 80 * time.Millisecond
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	// HomeDirectory overrides the user's home directory when looking up the global file.
	HomeDirectory string
}

// ApplicationConfiguration holds every configurable setting.
type ApplicationConfiguration struct {
	Progress ProgressConfiguration `mapstructure:"progress"`
}

// ProgressConfiguration controls the live progress indicator.
type ProgressConfiguration struct {
	Enabled     *bool         `mapstructure:"enabled"`
	Denominator string        `mapstructure:"denominator"`
	Interval    time.Duration `mapstructure:"interval"`
}

// DefaultConfiguration returns the built-in settings.
func DefaultConfiguration() ApplicationConfiguration {
	enabled := true
	return ApplicationConfiguration{
		Progress: ProgressConfiguration{
			Enabled:     &enabled,
			Denominator: types.DenominatorGlobal,
			Interval:    defaultProgressInterval,
		},
	}
}

// LoadApplicationConfiguration layers the global file, the local file and the
// environment over the defaults, in increasing precedence.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	merged := DefaultConfiguration()

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localConfig, loadErr := loadConfigurationFromPath(filepath.Join(workingDirectory, utils.ConfigFileName))
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	environmentConfig, environmentErr := loadConfigurationFromEnvironment()
	if environmentErr != nil {
		return ApplicationConfiguration{}, environmentErr
	}
	merged = merged.Merge(environmentConfig)

	if validationErr := merged.Validate(); validationErr != nil {
		return ApplicationConfiguration{}, validationErr
	}
	return merged, nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// EnvironmentVariable returns the variable that overrides a configuration key,
// for example REPOSTATS_PROGRESS_DENOMINATOR for "progress.denominator".
func EnvironmentVariable(key string) string {
	return utils.EnvironmentPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func loadConfigurationFromEnvironment() (ApplicationConfiguration, error) {
	reader := viper.New()
	for _, key := range []string{progressEnabledKey, progressDenominatorKey, progressIntervalKey} {
		if bindErr := reader.BindEnv(key, EnvironmentVariable(key)); bindErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("bind environment for %s: %w", key, bindErr)
		}
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from environment: %w", decodeErr)
	}
	return config, nil
}

// Validate reports settings that cannot be applied.
func (config ApplicationConfiguration) Validate() error {
	if !types.IsSupportedDenominator(config.Progress.Denominator) {
		return fmt.Errorf("unsupported progress denominator %q: use %s or %s", config.Progress.Denominator, types.DenominatorGlobal, types.DenominatorDirectory)
	}
	if config.Progress.Interval < 0 {
		return fmt.Errorf("progress interval must not be negative, got %s", config.Progress.Interval)
	}
	return nil
}

// ProgressEnabled reports whether the live indicator should be shown.
func (config ApplicationConfiguration) ProgressEnabled() bool {
	return config.Progress.Enabled == nil || *config.Progress.Enabled
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Progress = result.Progress.merge(override.Progress)
	return result
}

func (config ProgressConfiguration) merge(override ProgressConfiguration) ProgressConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Denominator != "" {
		result.Denominator = strings.ToLower(strings.TrimSpace(override.Denominator))
	}
	if override.Interval != 0 {
		result.Interval = override.Interval
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
