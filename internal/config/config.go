// Package config handles configuration loading and validation for routecat.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile is the default configuration file name (without extension).
	DefaultConfigFile = ".routecat"
	// DefaultConfigType is the default configuration file type.
	DefaultConfigType = "yaml"
)

// Config holds all configuration for routecat.
type Config struct {
	Project ProjectConfig `mapstructure:"project" yaml:"project"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Trpc    TrpcConfig    `mapstructure:"trpc" yaml:"trpc"`
	Watch   WatchConfig   `mapstructure:"watch" yaml:"watch"`
}

// ProjectConfig identifies the workspace being scanned.
type ProjectConfig struct {
	Root string `mapstructure:"root" yaml:"root"`
}

// ExtractConfig configures the shared project loader and both Next.js
// parsers.
type ExtractConfig struct {
	TSConfigPath string   `mapstructure:"tsconfig_path" yaml:"tsconfig_path"`
	Include      []string `mapstructure:"include" yaml:"include"`
	Verbose      bool     `mapstructure:"verbose" yaml:"verbose"`
}

// TrpcConfig extends tRPC router detection beyond the built-in factory
// names and naming convention with a user-supplied identifier regex.
type TrpcConfig struct {
	RouterFactories         []string `mapstructure:"router_factories" yaml:"router_factories"`
	RouterIdentifierPattern string   `mapstructure:"router_identifier_pattern" yaml:"router_identifier_pattern"`
}

// WatchConfig lists glob patterns the filesystem watcher ignores.
type WatchConfig struct {
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// Default returns the configuration produced by setDefaults, used by
// `routecat init` to write a starter file that always reflects the
// current default set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load loads configuration from file, environment variables, and defaults.
// configFile, when non-empty, is read verbatim instead of the default
// ".routecat.yaml" search path.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigFile)
		v.SetConfigType(DefaultConfigType)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ROUTECAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is internally well-formed: the
// router-identifier regex compiles and every include pattern is
// individually well-formed.
func (c *Config) Validate() error {
	if c.Trpc.RouterIdentifierPattern != "" {
		if _, err := regexp.Compile(c.Trpc.RouterIdentifierPattern); err != nil {
			return fmt.Errorf("trpc.router_identifier_pattern: %w", err)
		}
	}
	for _, pattern := range c.Extract.Include {
		if err := checkBraces(pattern); err != nil {
			return fmt.Errorf("extract.include %q: %w", pattern, err)
		}
	}
	return nil
}

// checkBraces validates that pattern's brace groups (if any) are balanced;
// the project loader's glob matcher only supports a single group per
// pattern.
func checkBraces(pattern string) error {
	open := strings.Count(pattern, "{")
	closeCount := strings.Count(pattern, "}")
	if open != closeCount {
		return fmt.Errorf("unbalanced brace group")
	}
	if open > 1 {
		return fmt.Errorf("at most one brace group is supported")
	}
	return nil
}

// CompiledRouterIdentifierPattern compiles TrpcConfig's regex, or returns
// nil when unset (the tRPC parser then falls back to its own default
// "Router" suffix check).
func (c *Config) CompiledRouterIdentifierPattern() (*regexp.Regexp, error) {
	if c.Trpc.RouterIdentifierPattern == "" {
		return nil, nil
	}
	return regexp.Compile(c.Trpc.RouterIdentifierPattern)
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("project.root", ".")

	v.SetDefault("extract.tsconfig_path", "tsconfig.json")
	v.SetDefault("extract.include", []string{})
	v.SetDefault("extract.verbose", false)

	v.SetDefault("trpc.router_factories", []string{"router", "createTRPCRouter"})
	v.SetDefault("trpc.router_identifier_pattern", "Router$")

	v.SetDefault("watch.exclude", []string{
		"**/node_modules/**",
		"**/.git/**",
		"**/dist/**",
		"**/build/**",
	})
}
