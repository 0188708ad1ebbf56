package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Route Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryRoute,
		Message:  "Empty route path",
		Detail:   "Every route must declare the URL path it answers to.",
	},
	"E101": {
		Category: CategoryRoute,
		Message:  "Duplicate route path",
		Detail:   "Two routes in the table share the same path.",
	},
	"E102": {
		Category: CategoryRoute,
		Message:  "Duplicate route name",
		Detail:   "Two routes in the table share the same name.",
	},
	"E103": {
		Category: CategoryRoute,
		Message:  "Empty route name",
		Detail:   "Every route must have a name so links can be built from it.",
	},
	"E110": {
		Category: CategoryRoute,
		Message:  "Route not found",
		Detail:   "No route in the table matches the requested path.",
	},
	"E111": {
		Category: CategoryRoute,
		Message:  "Invalid navigation URL",
		Detail:   "The navigation target could not be parsed as a URL.",
	},

	// ============================================
	// Config Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryConfig,
		Message:  "Config file not readable",
		Detail:   "The configuration file could not be read.",
	},
	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file is not valid JSON.",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "Port must be between 0 and 65535.",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "Log level must be one of debug, info, warn or error.",
	},
	"E204": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
		Detail:   "Durations use Go syntax, e.g. \"30s\" or \"15m\".",
	},
	"E205": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A ROSTER_* environment variable could not be parsed.",
	},

	// ============================================
	// Store Errors (E300-E319)
	// ============================================

	"E300": {
		Category: CategoryStore,
		Message:  "Unknown store",
		Detail:   "No search-criteria store is registered under this ID.",
	},
	"E301": {
		Category: CategoryStore,
		Message:  "Invalid store payload",
		Detail:   "Store updates must be a JSON object of string (or null) fields.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
