package nav

import (
	"go.uber.org/fx"

	"github.com/pathshare/pathshare/internal/config"
	"github.com/pathshare/pathshare/internal/profile"
	"github.com/pathshare/pathshare/internal/session"
	"github.com/pathshare/pathshare/internal/theme"
)

// Module provides the navigation controller dependencies
var Module = fx.Module("nav",
	fx.Provide(
		theme.NewStore,
		func(store session.Store, profiles *profile.Cache, themes *theme.Store, cfg *config.SplashConfig) *Controller {
			return NewController(store, profiles, themes, cfg.Delay)
		},
	),
)
