package filelock

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func TestLock_ExcludesOtherHolders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smc.lock")

	first := New(path, 0)
	second := New(path, 50*time.Millisecond)

	unlock, err := first.Lock(context.Background())
	require.NoError(t, err)

	_, err = second.Lock(context.Background())
	assert.ErrorIs(t, err, txmanager.ErrLockNotAcquired)

	unlock()

	unlock, err = second.Lock(context.Background())
	require.NoError(t, err)
	unlock()
}

func TestLock_RespectsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "smc.lock")

	unlock, err := New(path, 0).Lock(context.Background())
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = New(path, 0).Lock(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLock_SerializesIndependentLockers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smc.lock")

	const n = 8
	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := New(path, 0).Lock(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			current := atomic.AddInt32(&inside, 1)
			for {
				seen := atomic.LoadInt32(&maxSeen)
				if current <= seen || atomic.CompareAndSwapInt32(&maxSeen, seen, current) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
}
