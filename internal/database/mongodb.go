package database

import (
	"context"
	"fmt"
	"time"

	"github.com/writingpad/writingpad/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// RetryPolicy bounds ConnectWithRetry. Backoff doubles after each failure.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetry tolerates the store coming up a few seconds after the server.
var DefaultRetry = RetryPolicy{Attempts: 5, Backoff: time.Second}

// ConnectWithRetry calls connect until it succeeds, the attempts run out or
// ctx is done. The last error is returned.
func ConnectWithRetry(ctx context.Context, p RetryPolicy, connect func(context.Context) (*mongo.Client, error)) (*mongo.Client, error) {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	backoff := p.Backoff
	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		client, err := connect(ctx)
		if err == nil {
			return client, nil
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, p.Attempts, err)
		if attempt == p.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("could not connect to MongoDB after %d attempts: %w", p.Attempts, lastErr)
}

// Pinger checks that the primary is reachable within timeout.
type Pinger struct {
	Client  *mongo.Client
	Timeout time.Duration
}

func (p Pinger) Ping(ctx context.Context) error {
	if p.Client == nil {
		return fmt.Errorf("mongo client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return p.Client.Ping(ctx, readpref.Primary())
}

// Open returns a client without waiting for the server. The driver connects
// in the background; operations fail until the server is reachable.
func Open(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}
