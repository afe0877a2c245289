package sessions

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/policydesk/server/internal/assistant"
)

func TestGenerateSessionID(t *testing.T) {
	id1, err := GenerateSessionID()
	require.NoError(t, err)
	assert.Len(t, id1, 32)

	id2, err := GenerateSessionID()
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestCreateAndGetSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Empty(t, session.ConversationHistory)

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	assert.Equal(t, session.ID, got.ID)
}

func TestGetSessionNotFound(t *testing.T) {
	m := NewManager(time.Hour)

	_, ok := m.GetSession("nonexistent")
	assert.False(t, ok)
}

func TestGetSessionExpired(t *testing.T) {
	m := NewManager(time.Millisecond)

	session, err := m.CreateSession()
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, ok := m.GetSession(session.ID)
	assert.False(t, ok)
}

func TestUpdateSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	history := []assistant.Message{
		{Role: "user", Content: "How many vacation days do I get?"},
		{Role: "assistant", Content: "You get 25 vacation days per year."},
	}

	err = m.UpdateSession(session.ID, history)
	require.NoError(t, err)

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	assert.Len(t, got.ConversationHistory, 2)
	assert.Equal(t, "user", got.ConversationHistory[0].Role)
}

func TestGetSessionReturnsHistoryCopy(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	require.NoError(t, m.UpdateSession(session.ID, []assistant.Message{
		{Role: "user", Content: "What is the remote work policy?"},
		{Role: "assistant", Content: "Up to three days per week."},
	}))

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)

	// callers append to the snapshot; the stored history must not change
	got.ConversationHistory[0].Content = "mutated"
	_ = append(got.ConversationHistory, assistant.Message{Role: "user", Content: "extra"})

	fresh, ok := m.GetSession(session.ID)
	require.True(t, ok)
	require.Len(t, fresh.ConversationHistory, 2)
	assert.Equal(t, "What is the remote work policy?", fresh.ConversationHistory[0].Content)
}

func TestConcurrentGetAndUpdateSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	turn := assistant.Message{Role: "user", Content: "How many sick days do I get?"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, ok := m.GetSession(session.ID)
				if !ok {
					continue
				}

				updated := append(got.ConversationHistory, turn)
				//nolint:errcheck // session cannot expire within the test
				m.UpdateSession(session.ID, updated)
			}
		}()
	}
	wg.Wait()

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	assert.NotEmpty(t, got.ConversationHistory)
}

func TestUpdateSessionNotFound(t *testing.T) {
	m := NewManager(time.Hour)

	err := m.UpdateSession("nonexistent", nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResetSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	history := []assistant.Message{
		{Role: "user", Content: "What is the dress code?"},
	}
	require.NoError(t, m.UpdateSession(session.ID, history))

	err = m.ResetSession(session.ID)
	require.NoError(t, err)

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	assert.Empty(t, got.ConversationHistory)
}

func TestResetSessionNotFound(t *testing.T) {
	m := NewManager(time.Hour)

	err := m.ResetSession("nonexistent")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	m.DeleteSession(session.ID)

	_, ok := m.GetSession(session.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.GetSessionCount())
}
