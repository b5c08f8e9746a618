package utils

import "context"

type contextKey string

const UserIDKey contextKey = "user_id"

// SetUserContext stores the acting user id (set by middleware from the
// X-User-ID header).
func SetUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext retrieves the user id safely
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}
