package config

import "go.uber.org/fx"

// Module provides the loaded configuration and its sections
var Module = fx.Module("config",
	fx.Provide(
		Load,
		func(cfg *Config) *SessionConfig { return &cfg.Session },
		func(cfg *Config) *ThemeConfig { return &cfg.Theme },
		func(cfg *Config) *SplashConfig { return &cfg.Splash },
		func(cfg *Config) *SupportConfig { return &cfg.Support },
	),
)
