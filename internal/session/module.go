package session

import "go.uber.org/fx"

// Module provides the session store dependencies
var Module = fx.Module("session",
	fx.Provide(
		fx.Annotate(
			NewSupabaseStore,
			fx.As(new(Store)),
		),
	),
)
