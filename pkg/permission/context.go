package permission

import (
	"context"

	"github.com/google/uuid"
)

// userIDCtxKey is the context key for the authenticated user ID.
type userIDCtxKey struct{}

// SetUserIDToContext stores the authenticated user ID in the context.
func SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDCtxKey{}).(uuid.UUID)
	return userID, ok
}
