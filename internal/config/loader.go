package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"loadstate/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".loadstate.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/loadstate"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'loadstate init' to create one, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .loadstate.yaml in current directory
// 3. .loadstate.yaml in parent directories (stops at git root or home)
// 4. ~/.config/loadstate/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults
// if not found. Commands like 'loadstate init' work without an
// existing config this way.
func LoadOrDefault() (*Config, error) {
	path, err := Find("")
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers defaults so partial config files merge cleanly.
// Viper parses duration strings like "300ms" into time.Duration fields.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("version", def.Version)
	v.SetDefault("loading.min_visible", def.Loading.MinVisible)
	v.SetDefault("loading.max_wait", def.Loading.MaxWait)
	v.SetDefault("loading.debounce", def.Loading.Debounce)
	v.SetDefault("loading.skeleton_fallback", def.Loading.SkeletonFallback)
	v.SetDefault("loading.priority", def.Loading.Priority)
	v.SetDefault("loading.message_context", def.Loading.MessageContext)
	v.SetDefault("demo.scenario", def.Demo.Scenario)
	v.SetDefault("demo.fetch_time", def.Demo.FetchTime)
	v.SetDefault("demo.skeleton", def.Demo.Skeleton)
	v.SetDefault("demo.width", def.Demo.Width)
}
