// Package redislock реализует межпроцессную блокировку для txmanager поверх Redis.
package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const defaultPollInterval = 25 * time.Millisecond

// releaseScript снимает блокировку, только если она все еще принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker блокировка на ключе Redis (SET NX PX + токен владельца)
type Locker struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
	wait   time.Duration
	poll   time.Duration
}

// New создает блокировку.
// ttl ограничивает время жизни блокировки при падении владельца, wait - время ожидания захвата.
func New(client redis.Cmdable, key string, ttl, wait time.Duration) *Locker {
	return &Locker{
		client: client,
		key:    key,
		ttl:    ttl,
		wait:   wait,
		poll:   defaultPollInterval,
	}
}

// Lock захватывает блокировку или возвращает txmanager.ErrLockNotAcquired по истечении wait
func (l *Locker) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redislock: setnx %s: %w", l.key, err)
		}
		if ok {
			return func() { l.release(token) }, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: key %s is held by another process", txmanager.ErrLockNotAcquired, l.key)
		}

		timer := time.NewTimer(l.poll)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *Locker) release(token string) {
	// Контекст вызывающего может быть уже отменен, а блокировку нужно снять в любом случае
	ctx, cancel := context.WithTimeout(context.Background(), l.ttl)
	defer cancel()

	_ = releaseScript.Run(ctx, l.client, []string{l.key}, token).Err()
}
