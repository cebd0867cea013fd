package middleware

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey   = contextKey("logger")
	tenantIDKey = contextKey("tenantID")
)
