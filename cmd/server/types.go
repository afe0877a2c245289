package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/policydesk/server/internal/assistant"
	"codeberg.org/policydesk/server/internal/buffer"
	"codeberg.org/policydesk/server/internal/config"
	"codeberg.org/policydesk/server/internal/llm"
	"codeberg.org/policydesk/server/internal/retriever"
	"codeberg.org/policydesk/server/internal/sessions"
	"codeberg.org/policydesk/server/internal/storage"
)

// holds all dependencies and state for the API server
type Server struct {
	db         *pgxpool.Pool
	config     *config.Config
	sessionMgr *sessions.Manager
	services   *Services
	router     *gin.Engine
	buffer     *buffer.ChatBuffer
	flusher    *buffer.Flusher
}

// holds all external service clients (LLM, storage, retriever, assistant)
type Services struct {
	Assistant *assistant.Assistant
	LLM       llm.LLM
	Retriever *retriever.Client
	Storage   *storage.Client
}
