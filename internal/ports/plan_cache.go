package ports

import (
	"context"
	"time"
)

// Port: a cache for serialized plan responses keyed by request digest.
type PlanCache interface {
	// Get returns the cached payload for key, with found=false on a miss.
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	// Put stores payload under key for at most ttl.
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
