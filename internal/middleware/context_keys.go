package middleware

import "context"

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userIDVal := ctx.Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
