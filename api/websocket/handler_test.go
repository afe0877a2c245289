package websocket

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/policydesk/server/internal/assistant"
	"codeberg.org/policydesk/server/internal/auth"
	"codeberg.org/policydesk/server/internal/sessions"
)

type fakeAnswerer struct{}

func (fakeAnswerer) Answer(_ context.Context, req assistant.AnswerRequest) (*assistant.AnswerResponse, error) {
	return &assistant.AnswerResponse{
		Answer:          "You get 25 vacation days per year.",
		ChunksRetrieved: 1,
		Model:           "test-model",
	}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	mgr := sessions.NewManager(time.Hour)

	v1 := router.Group("/api/v1")
	RegisterRoutes(v1, fakeAnswerer{}, mgr)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws/chat"
	return server, wsURL
}

func TestChatHandler_RejectsInvalidToken(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"JWT_SECRET", "test-secret-key-for-testing")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	_, wsURL := newTestServer(t)

	conn, resp, err := ws.DefaultDialer.Dial(wsURL+"?token=not-a-jwt", nil)
	if conn != nil {
		conn.Close() //nolint:errcheck // test cleanup
	}

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestChatHandler_AcceptsValidToken(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"JWT_SECRET", "test-secret-key-for-testing")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	token, err := auth.GenerateJWT("employee", false)
	require.NoError(t, err)

	_, wsURL := newTestServer(t)

	conn, resp, err := ws.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close() //nolint:errcheck // test cleanup
	assert.Equal(t, 101, resp.StatusCode)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: "ask", Question: "How many vacation days do I get?"}))

	var frame ServerFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "answer", frame.Type)
	assert.Equal(t, "You get 25 vacation days per year.", frame.Answer)
}

func TestChatHandler_AnonymousConnectionAllowed(t *testing.T) {
	_, wsURL := newTestServer(t)

	conn, _, err := ws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close() //nolint:errcheck // test cleanup

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: "reset"}))

	var frame ServerFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "reset", frame.Type)
}
