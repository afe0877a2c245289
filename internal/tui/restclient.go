package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timeout for assistant requests
const askRequestTimeout = 60 * time.Second

// manages HTTP requests to the policydesk REST API
type ChatClient struct {
	endpoint   string
	sessionID  string
	httpClient *http.Client
}

// creates a new chat REST client
func NewChatClient() *ChatClient {
	endpoint := os.Getenv("POLICYDESK_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &ChatClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: askRequestTimeout,
		},
	}
}

// creates a server-side session on first use (best effort).
// without a session the client falls back to request-carried history.
func (c *ChatClient) ensureSession(ctx context.Context) {
	if c.sessionID != "" {
		return
	}

	url := fmt.Sprintf("%s/api/v1/sessions", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusCreated {
		return
	}

	var result createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return
	}

	c.sessionID = result.SessionID
}

// sends a question to the chat REST API
func (c *ChatClient) Ask(ctx context.Context, question string, history []ChatMessage) (*AnswerMsg, error) {
	c.ensureSession(ctx)

	payload := askRequest{
		Question:  question,
		SessionID: c.sessionID,
	}

	// stateless fallback: carry history in the request
	if c.sessionID == "" {
		payload.ConversationHistory = history
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/chat/ask", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// a stale session id means the server session expired; retry stateless
	if resp.StatusCode == http.StatusNotFound && c.sessionID != "" {
		c.sessionID = ""
		return c.Ask(ctx, question, history)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result askResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &AnswerMsg{
		question: question,
		answer:   result.Answer,
		sources:  formatSources(result.Sources),
		metadata: formatMetadata(result),
	}, nil
}

// returns a tea.Cmd that sends a question
func (c *ChatClient) AskCmd(question string, history []ChatMessage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askRequestTimeout)
		defer cancel()

		resp, err := c.Ask(ctx, question, history)
		if err != nil {
			return AnswerErrorMsg{question: question, err: err}
		}

		return *resp
	}
}

// returns a tea.Cmd that clears the server-side conversation (best effort)
func (c *ChatClient) ResetCmd() tea.Cmd {
	return func() tea.Msg {
		if c.sessionID == "" {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		url := fmt.Sprintf("%s/api/v1/sessions/%s/reset", c.endpoint, c.sessionID)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
		if err != nil {
			return nil
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil
		}
		resp.Body.Close() //nolint:errcheck

		if resp.StatusCode == http.StatusNotFound {
			c.sessionID = ""
		}

		return nil
	}
}

// REST API request/response types

type askRequest struct {
	Question            string        `json:"question"`
	SessionID           string        `json:"session_id,omitempty"`
	ConversationHistory []ChatMessage `json:"conversation_history,omitempty"`
}

type sourcePayload struct {
	Document string `json:"document"`
	Page     int    `json:"page"`
	Snippet  string `json:"snippet"`
}

type askResponse struct {
	Answer          string          `json:"answer"`
	Sources         []sourcePayload `json:"sources"`
	ChunksRetrieved int             `json:"chunks_retrieved"`
	Model           string          `json:"model"`
	SessionID       string          `json:"session_id,omitempty"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	ExpiresAt string `json:"expires_at"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
