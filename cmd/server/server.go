package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/policydesk/server/internal/buffer"
	"codeberg.org/policydesk/server/internal/config"
	"codeberg.org/policydesk/server/internal/sessions"
)

const (
	// how often the flusher writes buffered transcripts to Postgres
	bufferFlushInterval = 5 * time.Second

	// conversation sessions inactive for longer than this expire
	sessionTTL = 1 * time.Hour
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DBConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small for managed pooler compatibility
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// CRITICAL: use simple protocol for PgBouncer compatibility.
	// transaction-mode poolers don't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// initialize Redis buffer for chat transcript writes
	chatBuffer, err := buffer.NewChatBuffer(cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis buffer: %w", err)
	}

	services, err := InitializeServices(cfg, db)
	if err != nil {
		chatBuffer.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// flusher periodically persists buffered transcripts to Postgres
	flusher := buffer.NewFlusher(chatBuffer, services.Storage, bufferFlushInterval)

	sessionMgr := sessions.NewManager(sessionTTL)

	router := gin.Default()

	server := &Server{
		db:         db,
		config:     cfg,
		sessionMgr: sessionMgr,
		services:   services,
		router:     router,
		buffer:     chatBuffer,
		flusher:    flusher,
	}

	RegisterRoutes(router, server)

	return server, nil
}
