// Package database owns the process-lifetime store connections.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Mongo is a lazily connected MongoDB handle. The first call to Database
// connects; every later call reuses that client, including a failed result.
type Mongo struct {
	uri    string
	dbName string

	once   sync.Once
	client *mongo.Client
	err    error
}

// NewMongo returns an unconnected handle.
func NewMongo(uri, dbName string) *Mongo {
	return &Mongo{uri: uri, dbName: dbName}
}

// Database connects on first use and returns the configured database.
func (m *Mongo) Database(ctx context.Context) (*mongo.Database, error) {
	m.once.Do(func() {
		m.client, m.err = m.connect(ctx)
	})
	if m.err != nil {
		return nil, m.err
	}
	return m.client.Database(m.dbName), nil
}

func (m *Mongo) connect(ctx context.Context) (*mongo.Client, error) {
	if m.uri == "" {
		return nil, errors.New("mongodb uri is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// Close disconnects if a connection was ever made.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
