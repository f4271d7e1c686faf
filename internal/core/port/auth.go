package port

import "context"

// AuthChecker answers whether the caller behind ctx is authenticated
type AuthChecker interface {
	IsAuthenticated(ctx context.Context) bool
}
