// Package config loads flashdeck settings from defaults, an optional YAML
// file, a .env file, FLASHDECK_* environment variables and command line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "FLASHDECK_"

// Config holds the settings shared by every command.
type Config struct {
	DBPath    string `koanf:"db" validate:"required"`
	LogLevel  string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"required,oneof=text json"`
}

// DefaultDBPath is flashdeck.db next to the running executable, falling back
// to the working directory when the executable cannot be located.
func DefaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "flashdeck.db"
	}
	return filepath.Join(filepath.Dir(exe), "flashdeck.db")
}

// RegisterFlags adds the global flags to flags. Their defaults are the
// configuration defaults.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to a YAML config file")
	flags.String("db", DefaultDBPath(), "Path to the SQLite database file")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
}

// Load builds the configuration from the parsed global flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	envCB := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}
	if err := k.Load(env.Provider(envPrefix, ".", envCB), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	flagCB := func(f *pflag.Flag) (string, interface{}) {
		if f.Name == "config" {
			return "", nil
		}
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	}
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagCB), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
