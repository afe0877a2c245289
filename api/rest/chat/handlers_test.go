package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/policydesk/server/internal/assistant"
	"codeberg.org/policydesk/server/internal/sessions"
)

type fakeAnswerer struct {
	lastReq assistant.AnswerRequest
	resp    *assistant.AnswerResponse
	err     error
}

func (f *fakeAnswerer) Answer(_ context.Context, req assistant.AnswerRequest) (*assistant.AnswerResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newTestRouter(answerer Answerer, mgr *sessions.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	RegisterRoutes(api, answerer, mgr, nil)
	return router
}

func postAsk(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/ask", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAskHandler_Success(t *testing.T) {
	fake := &fakeAnswerer{
		resp: &assistant.AnswerResponse{
			Answer: "You get 25 vacation days per year (leave_policy.pdf, page 2).",
			Sources: []assistant.Source{
				{Document: "leave_policy.pdf", Page: 2, Snippet: "Employees accrue 25 days..."},
			},
			ChunksRetrieved: 4,
			Model:           "claude-sonnet-4-20250514",
			InputTokens:     500,
			OutputTokens:    60,
		},
	}
	router := newTestRouter(fake, sessions.NewManager(time.Hour))

	w := postAsk(t, router, AskRequest{Question: "How many vacation days do I get?"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Answer, "25 vacation days")
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "leave_policy.pdf", resp.Sources[0].Document)
	assert.Equal(t, 2, resp.Sources[0].Page)
	assert.Equal(t, 4, resp.ChunksRetrieved)
}

func TestAskHandler_MissingQuestion(t *testing.T) {
	router := newTestRouter(&fakeAnswerer{}, sessions.NewManager(time.Hour))

	w := postAsk(t, router, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskHandler_RequestHistoryPassedThrough(t *testing.T) {
	fake := &fakeAnswerer{resp: &assistant.AnswerResponse{Answer: "ok"}}
	router := newTestRouter(fake, sessions.NewManager(time.Hour))

	w := postAsk(t, router, AskRequest{
		Question: "What about sick leave?",
		ConversationHistory: []Message{
			{Role: "user", Content: "How many vacation days do I get?"},
			{Role: "assistant", Content: "25 days."},
			{Role: "user", Content: ""}, // empty content is dropped
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, fake.lastReq.ConversationHistory, 2)
	assert.Equal(t, "What about sick leave?", fake.lastReq.Question)
}

func TestAskHandler_SessionHistoryUsedAndUpdated(t *testing.T) {
	mgr := sessions.NewManager(time.Hour)
	session, err := mgr.CreateSession()
	require.NoError(t, err)

	require.NoError(t, mgr.UpdateSession(session.ID, []assistant.Message{
		{Role: "user", Content: "What is the dress code?"},
		{Role: "assistant", Content: "Business casual."},
	}))

	fake := &fakeAnswerer{resp: &assistant.AnswerResponse{Answer: "Remote work is allowed two days a week."}}
	router := newTestRouter(fake, mgr)

	w := postAsk(t, router, AskRequest{
		Question:  "Can I work remotely?",
		SessionID: session.ID,
	})

	require.Equal(t, http.StatusOK, w.Code)

	// handler loaded the stored history
	assert.Len(t, fake.lastReq.ConversationHistory, 2)

	// and appended the new exchange
	got, ok := mgr.GetSession(session.ID)
	require.True(t, ok)
	require.Len(t, got.ConversationHistory, 4)
	assert.Equal(t, "Can I work remotely?", got.ConversationHistory[2].Content)
	assert.Equal(t, "assistant", got.ConversationHistory[3].Role)
}

func TestAskHandler_UnknownSession(t *testing.T) {
	router := newTestRouter(&fakeAnswerer{}, sessions.NewManager(time.Hour))

	w := postAsk(t, router, AskRequest{
		Question:  "How do I reset my password?",
		SessionID: "nonexistent",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAskHandler_AnswerError(t *testing.T) {
	fake := &fakeAnswerer{err: assert.AnError}
	router := newTestRouter(fake, sessions.NewManager(time.Hour))

	w := postAsk(t, router, AskRequest{Question: "How many vacation days do I get?"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
