package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// lazyClient builds a client without touching the network; the v2 driver
// only dials on the first operation.
func lazyClient(t *testing.T) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	return client
}

func TestPoolSharesInFlightConnect(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	pool := NewPoolWithDialer("mongodb://unused", "fit1_test", func(ctx context.Context, uri string) (*mongo.Client, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return lazyClient(t), nil
	})

	const callers = 16
	var wg sync.WaitGroup
	results := make([]*mongo.Database, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := pool.Database(context.Background())
			assert.NoError(t, err)
			results[i] = db
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, db := range results {
		require.NotNil(t, db)
		assert.Same(t, results[0], db)
		assert.Equal(t, "fit1_test", db.Name())
	}
}

func TestPoolRetriesAfterFailedConnect(t *testing.T) {
	var calls int32
	pool := NewPoolWithDialer("mongodb://unused", "fit1_test", func(ctx context.Context, uri string) (*mongo.Client, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("server selection timeout")
		}
		return lazyClient(t), nil
	})

	_, err := pool.Database(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server selection timeout")

	coll, err := pool.Collection(context.Background(), "water_entries")
	require.NoError(t, err)
	assert.Equal(t, "water_entries", coll.Name())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPoolCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	pool := NewPoolWithDialer("mongodb://unused", "fit1_test", func(ctx context.Context, uri string) (*mongo.Client, error) {
		<-release
		return nil, errors.New("dial abandoned")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := pool.Database(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPoolCloseWithoutConnect(t *testing.T) {
	pool := NewPool("mongodb://unused", "fit1_test")
	assert.NoError(t, pool.Close(context.Background()))
}

func TestPoolCloseDiscardsInFlightConnect(t *testing.T) {
	dialing := make(chan struct{})
	release := make(chan struct{})
	clients := make(chan *mongo.Client, 1)
	pool := NewPoolWithDialer("mongodb://unused", "fit1_test", func(ctx context.Context, uri string) (*mongo.Client, error) {
		close(dialing)
		<-release
		client := lazyClient(t)
		clients <- client
		return client, nil
	})

	errs := make(chan error, 1)
	go func() {
		_, err := pool.Database(context.Background())
		errs <- err
	}()

	<-dialing
	require.NoError(t, pool.Close(context.Background()))
	close(release)

	assert.ErrorIs(t, <-errs, ErrPoolClosed)

	client := <-clients
	assert.ErrorIs(t, client.Disconnect(context.Background()), mongo.ErrClientDisconnected,
		"the late client was already disconnected")

	_, err := pool.Database(context.Background())
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPoolDatabaseAfterClose(t *testing.T) {
	var calls int32
	pool := NewPoolWithDialer("mongodb://unused", "fit1_test", func(ctx context.Context, uri string) (*mongo.Client, error) {
		atomic.AddInt32(&calls, 1)
		return lazyClient(t), nil
	})

	_, err := pool.Database(context.Background())
	require.NoError(t, err)
	require.NoError(t, pool.Close(context.Background()))

	_, err = pool.Collection(context.Background(), "users")
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
