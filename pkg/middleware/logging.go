package middleware

import (
	"log/slog"
	"time"

	"github.com/vango-dev/roster/pkg/router"
)

// Logging creates middleware that logs every navigation. Successful
// navigations log at debug level, failures at warn.
func Logging(logger *slog.Logger) router.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "router")

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		start := time.Now()
		err := next()

		attrs := []any{
			"path", nav.Path,
			"route", routeLabel(nav),
			"duration", time.Since(start),
		}
		if err != nil {
			logger.Warn("navigation failed", append(attrs, "error", err)...)
			return err
		}
		if nav.Match != nil {
			attrs = append(attrs, "view", nav.Match.View())
		}
		logger.Debug("navigation resolved", attrs...)
		return nil
	})
}
