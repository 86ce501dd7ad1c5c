package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultEnv       = EnvLocal
	defaultLogLevel  = "info"
	defaultConfigDir = ".notekeeper"
	defaultLocale    = "en"
	databaseFile     = "notekeeper.db"
	stateFile        = "state.json"
	attachmentsDir   = "attachments"
)

type Config struct {
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	ConfigDir      string `mapstructure:"config_dir"`
	DataPath       string `mapstructure:"data_path"`
	StatePath      string `mapstructure:"state_path"`
	AttachmentsDir string `mapstructure:"attachments_dir"`
	Locale         string `mapstructure:"locale"`
}

// MustLoad loads the client configuration from the environment (plus an
// optional .env file) and prepares the on-disk directories.
func MustLoad() *Config {
	// Look for .env next to the binary first, then one level up.
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("LOCALE", defaultLocale)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("failed to create config directory: %v\n", err)
	}

	dataPath := viper.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, databaseFile)
	}

	statePath := viper.GetString("STATE_PATH")
	if statePath == "" {
		statePath = filepath.Join(configDir, stateFile)
	}

	attachments := filepath.Join(configDir, attachmentsDir)
	if err := os.MkdirAll(attachments, 0700); err != nil {
		fmt.Printf("failed to create attachments directory: %v\n", err)
	}

	config := &Config{
		Env:            viper.GetString("APP_ENV"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		DataPath:       dataPath,
		StatePath:      statePath,
		AttachmentsDir: attachments,
		Locale:         viper.GetString("LOCALE"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path cannot be empty")
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path cannot be empty")
	}
	return nil
}

// IsProd reports whether the environment is prod.
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev reports whether the environment is dev.
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal reports whether the environment is local.
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
