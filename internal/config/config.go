package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("pathshare version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Session SessionConfig `mapstructure:"session"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Splash  SplashConfig  `mapstructure:"splash"`
	Support SupportConfig `mapstructure:"support"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// SessionConfig points the client at the hosted auth/row store.
type SessionConfig struct {
	URL           string        `mapstructure:"url"`
	AnonKey       string        `mapstructure:"anon_key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	OAuthRedirect string        `mapstructure:"oauth_redirect"`
	TokenFile     string        `mapstructure:"token_file"`
}

type ThemeConfig struct {
	File string `mapstructure:"file"`
}

type SplashConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

// SupportConfig configures the live-support chat relay.
type SupportConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("session-url", "", "Base URL of the session store")
	pflag.String("theme-file", "", "Path to the theme preference file")
	// Note: no pflag.Parse() here as it's called in main.go
}

func setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.disable_console", true)
	viper.SetDefault("logging.output_path", "pathshare.log")
	viper.SetDefault("logging.append_to_file", true)

	viper.SetDefault("session.timeout", 30*time.Second)
	viper.SetDefault("session.oauth_redirect", "http://localhost:8484/callback")
	viper.SetDefault("session.token_file", ".pathshare-session.yaml")

	viper.SetDefault("theme.file", ".pathshare-theme.yaml")
	viper.SetDefault("splash.delay", 2500*time.Millisecond)

	viper.SetDefault("support.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("support.model", "gemini-2.5-flash")
	viper.SetDefault("support.timeout", 30*time.Second)
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("PATHSHARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	setDefaults()

	// Load ./config.yaml when present; a defaults-only run is fine for the client
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/pathshare")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if u := viper.GetString("session-url"); u != "" {
		config.Session.URL = u
	}
	if f := viper.GetString("theme-file"); f != "" {
		config.Theme.File = f
	}

	if config.Session.URL == "" {
		return nil, fmt.Errorf("session url is required, please adjust the config or pass --session-url or PATHSHARE_SESSION_URL environment variable")
	}

	return &config, nil
}
