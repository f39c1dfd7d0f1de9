// bundlefx/bundlefx.go
package bundlefx

import (
	"go.uber.org/fx"

	"github.com/joeydtaylor/turnstile/pkg/middleware/auth"
	"github.com/joeydtaylor/turnstile/pkg/middleware/logger"
	"github.com/joeydtaylor/turnstile/pkg/middleware/metrics"
)

// Module provided to fx
var Module = fx.Options(
	auth.Module,
	logger.Module,
	metrics.Module,
)
