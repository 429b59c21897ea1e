package config

import "go.uber.org/fx"

// Module provides the parsed runtime configuration to the fx graph.
var Module = fx.Provide(Load)
