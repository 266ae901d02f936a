package support

import "go.uber.org/fx"

// Module provides the support chat dependencies
var Module = fx.Module("support",
	fx.Provide(
		NewChat,
	),
)
