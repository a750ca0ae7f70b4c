package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/singleflight"
)

const connectTimeout = 10 * time.Second

var ErrPoolClosed = errors.New("mongodb pool is closed")

// Dialer opens and verifies a client connection.
type Dialer func(ctx context.Context, uri string) (*mongo.Client, error)

// Pool owns the MongoDB client for the process. The connection is opened on
// first use; callers that arrive while it is being opened wait for the same
// attempt. A failed attempt is not remembered.
type Pool struct {
	uri    string
	dbName string
	dial   Dialer

	group  singleflight.Group
	mu     sync.RWMutex
	db     *mongo.Database
	closed bool
}

func NewPool(uri, dbName string) *Pool {
	return NewPoolWithDialer(uri, dbName, Dial)
}

func NewPoolWithDialer(uri, dbName string, dial Dialer) *Pool {
	return &Pool{uri: uri, dbName: dbName, dial: dial}
}

// Dial connects with a bounded pool size and pings the server.
func Dial(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(uri).SetMaxPoolSize(10)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Database returns the connected database, connecting if needed.
func (p *Pool) Database(ctx context.Context) (*mongo.Database, error) {
	p.mu.RLock()
	db, closed := p.db, p.closed
	p.mu.RUnlock()
	if closed {
		return nil, ErrPoolClosed
	}
	if db != nil {
		return db, nil
	}

	ch := p.group.DoChan("connect", func() (interface{}, error) {
		p.mu.RLock()
		existing := p.db
		p.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		// Detached from the caller so one cancelled request does not fail
		// everyone waiting on the same attempt.
		dialCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		client, err := p.dial(dialCtx, p.uri)
		if err != nil {
			return nil, err
		}

		connected := client.Database(p.dbName)
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			// Close ran while this dial was in flight.
			_ = client.Disconnect(context.Background())
			return nil, ErrPoolClosed
		}
		p.db = connected
		p.mu.Unlock()
		log.Printf("✅ Connected to MongoDB database %q", p.dbName)
		return connected, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if errors.Is(res.Err, ErrPoolClosed) {
			return nil, ErrPoolClosed
		}
		if res.Err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", res.Err)
		}
		return res.Val.(*mongo.Database), nil
	}
}

func (p *Pool) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := p.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Close disconnects the client if a connection was ever made. The pool can
// not be reused afterwards; a connect still in flight is discarded.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	db := p.db
	p.db = nil
	p.closed = true
	p.mu.Unlock()
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}
