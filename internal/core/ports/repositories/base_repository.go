package repositories

import (
	"context"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	// Ping performs one round-trip to the backend.
	Ping(ctx context.Context) error
}
