package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// interactive policy chat interface
type ChatModel struct {
	input           textinput.Model
	viewport        viewport.Model
	spinner         spinner.Model
	width           int
	height          int
	transcript      []ChatMessage
	isFetching      bool
	ready           bool
	glamourRenderer *glamour.TermRenderer
	client          *ChatClient
}

// returns a new chat screen
func NewChatModel() *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "ask about company policies..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorLightGray)

	return &ChatModel{
		input:      ti,
		spinner:    sp,
		transcript: []ChatMessage{},
		client:     NewChatClient(),
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.isFetching {
				return m, nil
			}

			m.isFetching = true
			m.input.SetValue("")
			m.transcript = append(m.transcript, ChatMessage{
				Role:    "user",
				Content: question,
			})
			m.refreshViewport()

			return m, tea.Batch(
				m.spinner.Tick,
				m.client.AskCmd(question, m.history()),
			)

		case "ctrl+l":
			// clear conversation
			m.input.SetValue("")
			m.transcript = []ChatMessage{}
			m.isFetching = false
			m.refreshViewport()
			return m, m.client.ResetCmd()
		}

	case AnswerMsg:
		m.isFetching = false
		m.transcript = append(m.transcript, ChatMessage{
			Role:     "assistant",
			Content:  msg.answer,
			Rendered: m.renderMarkdown(msg.answer),
			Sources:  msg.sources,
			Metadata: msg.metadata,
		})
		m.refreshViewport()
		m.input.Focus()
		return m, nil

	case AnswerErrorMsg:
		m.isFetching = false
		m.transcript = append(m.transcript, ChatMessage{
			Role:    "assistant",
			Content: fmt.Sprintf("Error: %v", msg.err),
		})
		m.refreshViewport()
		m.input.Focus()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10

		viewportHeight := msg.Height - 8
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true

			// renderer wraps to the real terminal width
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(msg.Width-8),
			)
			if err == nil {
				m.glamourRenderer = renderer
			}
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}

		m.refreshViewport()

	case spinner.TickMsg:
		if m.isFetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *ChatModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWhite).
		Render("POLICY CHAT")

	help := lipgloss.NewStyle().
		Foreground(colorGray).
		Render("[Enter: Ask] [Ctrl+L: Clear] [Ctrl+C: Back]")

	padding := m.width - lipgloss.Width(header) - lipgloss.Width(help) - 2
	if padding < 1 {
		padding = 1
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		header,
		strings.Repeat(" ", padding),
		help,
	))
	b.WriteString("\n\n")

	if m.ready {
		transcriptBox := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Width(m.width - 4).
			Padding(0, 1).
			Render(m.viewport.View())

		b.WriteString(transcriptBox)
		b.WriteString("\n")
	}

	inputBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorGray).
		Width(m.width - 4).
		Padding(0, 1).
		Render(m.input.View())

	b.WriteString(inputBox)
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(infoStyle.Render(m.spinner.View() + " searching policies..."))
	}

	return b.String()
}

// rebuilds the viewport content from the transcript
func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}

	m.viewport.SetContent(m.renderTranscript())

	if len(m.transcript) > 0 {
		m.viewport.GotoBottom()
	}
}

func (m *ChatModel) renderTranscript() string {
	if len(m.transcript) == 0 {
		var b strings.Builder
		b.WriteString(infoStyle.Render("ask a question about company policies. for example:"))
		b.WriteString("\n\n")
		for _, q := range exampleQuestions {
			b.WriteString(infoStyle.Render("  " + q))
			b.WriteString("\n")
		}
		return b.String()
	}

	var b strings.Builder
	for _, msg := range m.transcript {
		switch msg.Role {
		case "user":
			b.WriteString(userTurnStyle.Render("You: " + msg.Content))
			b.WriteString("\n\n")

		case "assistant":
			if msg.Rendered != "" {
				b.WriteString(msg.Rendered)
			} else {
				b.WriteString(msg.Content)
				b.WriteString("\n")
			}

			if msg.Sources != "" {
				b.WriteString(sourcesStyle.Render(msg.Sources))
				b.WriteString("\n")
			}

			if msg.Metadata != "" {
				b.WriteString(infoStyle.Render(msg.Metadata))
				b.WriteString("\n")
			}

			b.WriteString("\n")
		}
	}

	return b.String()
}

// returns the transcript as request history (user/assistant turns only)
func (m *ChatModel) history() []ChatMessage {
	history := make([]ChatMessage, 0, len(m.transcript))
	for _, msg := range m.transcript {
		if msg.Content != "" {
			history = append(history, ChatMessage{
				Role:    msg.Role,
				Content: msg.Content,
			})
		}
	}
	return history
}

// renders an answer as markdown, falling back to plain text
func (m *ChatModel) renderMarkdown(text string) string {
	if m.glamourRenderer == nil {
		return text
	}

	rendered, err := m.glamourRenderer.Render(text)
	if err != nil {
		return text
	}

	return rendered
}
