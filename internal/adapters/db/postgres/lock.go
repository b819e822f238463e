package postgres

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LockManager serializes cross-process operations, such as workspace
// membership changes, using PostgreSQL advisory locks
type LockManager struct {
	pool *pgxpool.Pool
}

// NewLockManager constructs a LockManager
func NewLockManager(pool *pgxpool.Pool) *LockManager { return &LockManager{pool: pool} }

// hashKey converts a string key to the integer space advisory locks use
func hashKey(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}

// Acquire obtains an exclusive advisory lock, blocking until it is granted.
// The returned function releases the lock.
func (l *LockManager) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	k := hashKey(key)
	if _, err := l.pool.Exec(ctx, "SELECT pg_advisory_lock($1)", int64(k)); err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return func(c context.Context) error {
		if _, err := l.pool.Exec(c, "SELECT pg_advisory_unlock($1)", int64(k)); err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
