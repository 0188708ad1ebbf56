package middleware

import (
	"github.com/vango-dev/roster/internal/errors"
	"github.com/vango-dev/roster/pkg/router"
)

// routeLabel names the matched route, or "unmatched".
func routeLabel(nav *router.Navigation) string {
	if nav.Match != nil {
		return nav.Match.Name()
	}
	return "unmatched"
}

// categorizeError returns a low-cardinality label for err.
func categorizeError(err error) string {
	switch {
	case errors.HasCode(err, "E110"):
		return "not_found"
	case errors.HasCode(err, "E111"):
		return "invalid_url"
	default:
		return "internal"
	}
}
