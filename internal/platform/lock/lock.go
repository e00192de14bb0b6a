package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
)

// ErrNotAcquired is returned when the lock is still held by someone else once
// the wait budget runs out.
var ErrNotAcquired = fmt.Errorf("%w: lock held by another worker", apperrors.ErrConflict)

// Release gives a lock back. It is safe to call after the TTL expired.
type Release func(ctx context.Context) error

// Locker serializes long running maintenance work across replicas.
type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}

// PrepaymentReconcileKey scopes reconciliation to one customer, or all of them when customerID is nil.
func PrepaymentReconcileKey(customerID *int64) string {
	if customerID == nil {
		return "ledger:prepayments:reconcile:all:lock"
	}
	return fmt.Sprintf("ledger:prepayments:reconcile:%d:lock", *customerID)
}

const (
	// BackfillKey guards the prepayment posting backfill.
	BackfillKey = "ledger:prepayments:backfill:lock"
	// RecomputeAllKey guards a full balance rebuild.
	RecomputeAllKey = "ledger:balances:recompute-all:lock"
)

// NewRedisClient creates a Redis client and checks it answers.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("platform/lock: ping: %w", err)
	}

	return client, nil
}

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX and a compare-and-delete release.
type RedisLocker struct {
	client   *redis.Client
	ttl      time.Duration
	wait     time.Duration
	interval time.Duration
}

// NewRedisLocker creates a RedisLocker. Locks expire after ttl; Acquire waits up to wait for a held lock.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait, interval: 50 * time.Millisecond}
}

// Acquire takes the lock for key, polling until the wait budget or ctx runs out.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("platform/lock: acquire %s: %w", key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
					return fmt.Errorf("platform/lock: release %s: %w", key, err)
				}
				return nil
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrNotAcquired
		}

		timer := time.NewTimer(l.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("platform/lock: token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// LocalLocker is the single-process fallback used when no Redis address is configured.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
	wait  time.Duration
}

// NewLocalLocker creates a LocalLocker that waits up to wait for a held key.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{}), wait: wait}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// Acquire takes the in-process lock for key.
func (l *LocalLocker) Acquire(ctx context.Context, key string) (Release, error) {
	ch := l.slot(key)
	var once sync.Once
	release := func(context.Context) error {
		once.Do(func() { <-ch })
		return nil
	}

	select {
	case ch <- struct{}{}:
		return release, nil
	default:
	}

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return release, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrNotAcquired
	}
}
