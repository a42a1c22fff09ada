package backend

import "context"

// ObjectStore is the port to the single backing object holding the
// serialized snapshot. One object per store, fixed logical path.
type ObjectStore interface {
	// Get fetches the backing object. found is false when the object does
	// not exist yet; that is not an error.
	Get(ctx context.Context) (data []byte, found bool, err error)

	// Put overwrites the backing object unconditionally. Last writer wins;
	// there is no version or etag check.
	Put(ctx context.Context, data []byte) error

	// Ping checks connectivity to the backing service.
	Ping(ctx context.Context) error
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result holds a constructed backend and its optional cleanup.
type Result struct {
	Store   ObjectStore
	Cleanup CleanupFunc
}

// Type selects a backing store implementation.
type Type string

const (
	S3Backend     Type = "s3"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case S3Backend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{S3Backend, SQLiteBackend, MemoryBackend}
}

// Config holds what the factory needs to build any backend.
type Config struct {
	Type Type

	// S3 specific
	Bucket    string
	Region    string
	ObjectKey string

	// SQLite specific
	SQLiteDBPath string
	StoreID      string
}
