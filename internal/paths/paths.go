// Package paths resolves the configuration, warehouse, and raw-zone directory
// locations used by the pipeline CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names used when no override is active.
const (
	DefaultWarehouseDirName = ".rainforest/warehouse"
	DefaultRawDirName       = ".rainforest/raw"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir    = "RAINFOREST_CONFIG_DIR"
	EnvWarehouseDir = "RAINFOREST_WAREHOUSE_DIR"
	EnvRawDir       = "RAINFOREST_RAW_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/rainforest (fallback ~/.config/rainforest)
// macOS:   ~/Library/Application Support/rainforest
// Windows: %APPDATA%/rainforest
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "rainforest"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "rainforest"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "rainforest"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > RAINFOREST_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveWarehouseDir returns the warehouse root directory following the
// precedence chain: flag > config file value > RAINFOREST_WAREHOUSE_DIR env >
// $(CWD)/.rainforest/warehouse.
func ResolveWarehouseDir(flag, configValue string) (string, error) {
	return resolveDir(flag, configValue, EnvWarehouseDir, DefaultWarehouseDirName)
}

// ResolveRawDir returns the raw-zone directory following the precedence chain:
// flag > config file value > RAINFOREST_RAW_DIR env > $(CWD)/.rainforest/raw.
func ResolveRawDir(flag, configValue string) (string, error) {
	return resolveDir(flag, configValue, EnvRawDir, DefaultRawDirName)
}

// resolveDir implements the shared flag > config > env > CWD-default chain for
// data directories. The CWD-relative default keeps a checkout self-contained:
// running the pipeline in a project directory lands everything under it.
func resolveDir(flag, configValue, envName, defaultRel string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(envName); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, filepath.FromSlash(defaultRel)), nil
}
