package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Client struct {
	pool     *pgxpool.Pool
	ownsPool bool
}

func NewClient(ctx context.Context, connString string) (*Client, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{pool: pool, ownsPool: true}, nil
}

// wraps an existing pool without taking ownership of it
func NewClientFromPool(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool, ownsPool: false}
}

func (c *Client) Close() {
	if c.ownsPool {
		c.pool.Close()
	}
}
