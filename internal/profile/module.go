package profile

import "go.uber.org/fx"

// Module provides the profile cache dependencies
var Module = fx.Module("profile",
	fx.Provide(
		NewCache,
	),
)
