package tui

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateChat
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	welcome *Welcome
	chat    *ChatModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the chat state
type EnterChatMsg struct{}

// sent when the server starts
type ServerStartedMsg struct{}

// sent when the ingester completes
type IngesterCompleteMsg struct{}

// represents a chat message in the transcript
type ChatMessage struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Rendered string `json:"-"` // glamour-rendered markdown for assistant turns
	Sources  string `json:"-"` // formatted citation block
	Metadata string `json:"-"`
}

// sent when the assistant completes a request
type AnswerMsg struct {
	question string
	answer   string
	sources  string
	metadata string
}

// sent when the assistant request fails
type AnswerErrorMsg struct {
	question string
	err      error
}
