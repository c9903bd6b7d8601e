package redislock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func TestLock_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	locker := New(client, "smc:reservations:lock", time.Second, 100*time.Millisecond)

	unlock, err := locker.Lock(context.Background())

	assert.Nil(t, unlock)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, txmanager.ErrLockNotAcquired)
}
