package sessions

import "context"

// Store is the process-wide persistent key-value storage holding the session.
// Implementations must be safe for concurrent use. Get returns
// errors.ErrNotFound for a missing key; Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
