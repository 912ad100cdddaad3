package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nutrichat/internal/client"
)

const askTimeout = 60 * time.Second

// Asker is the TUI-facing subset of the API client.
type Asker interface {
	Ask(ctx context.Context, message string) (client.AskResponse, error)
	Documents(ctx context.Context) ([]client.Document, error)
}

// answerMsg carries the outcome of an in-flight question back into
// the update loop.
type answerMsg struct {
	resp client.AskResponse
	err  error
}

// documentsMsg carries the registered document list fetched at startup.
type documentsMsg struct {
	docs []client.Document
}

// Model is the Bubble Tea model for the chat client.
type Model struct {
	api      Asker
	session  *client.Session
	input    textinput.Model
	viewport viewport.Model
	status   string
	docTitle string
	width    int
	height   int
	ready    bool
}

// New creates a new chat model backed by the given API client.
func New(api Asker) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the document and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{api: api, session: client.NewSession(), input: ti, viewport: vp, status: "Ready."}
}

// Init starts the cursor blink and fetches the document list for the
// header. A failed fetch just leaves the header generic.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.documentsCmd())
}

func (m Model) documentsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		docs, err := m.api.Documents(ctx)
		if err != nil {
			return documentsMsg{}
		}
		return documentsMsg{docs: docs}
	}
}

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.session.Popover().Resize(client.Viewport{Width: msg.Width, Height: msg.Height})
		m.viewport.SetContent(m.renderChat())
		return m, nil

	case documentsMsg:
		if len(msg.docs) > 0 {
			m.docTitle = msg.docs[0].Title
		}
		return m, nil

	case answerMsg:
		if msg.err != nil {
			m.session.Fail(msg.err)
			m.status = "Request failed."
		} else {
			m.session.Complete(msg.resp)
			m.status = "Press 1-9 to inspect a source, Esc to close."
		}
		m.viewport.SetContent(m.renderChat())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.session.Busy() {
				m.status = "Still waiting for the previous answer."
				return m, nil
			}
			if err := m.session.Begin(m.input.Value()); err != nil {
				return m, nil
			}
			m.session.Dispatched()
			m.input.SetValue("")
			m.status = "Thinking..."
			m.viewport.SetContent(m.renderChat())
			m.viewport.GotoBottom()
			return m, m.askCmd(m.session.LastQuestion())
		case "esc":
			if m.session.Popover().IsOpen() {
				m.session.Popover().Close()
				m.viewport.SetContent(m.renderChat())
			}
			return m, nil
		case "up", "down", "pgup", "pgdown":
			// Scrolling dismisses the source panel.
			if m.session.Popover().IsOpen() {
				m.session.Popover().Close()
				m.viewport.SetContent(m.renderChat())
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if m.toggleSource(int(msg.String()[0] - '1')) {
				m.viewport.SetContent(m.renderChat())
			}
			return m, nil
		}
	}

	if m.session.Busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		resp, err := m.api.Ask(ctx, question)
		return answerMsg{resp: resp, err: err}
	}
}

// toggleSource opens or closes the panel for the given source of the
// latest answer. Returns false when there is no such source.
func (m Model) toggleSource(index int) bool {
	sources := m.latestSources()
	if index < 0 || index >= len(sources) {
		return false
	}
	anchor := client.Point{X: m.width / 2, Y: m.height / 2}
	m.session.Popover().Toggle(index, anchor, client.Viewport{Width: m.width, Height: m.height})
	return true
}

// latestSources returns the sources of the most recent assistant
// answer, or nil when there is none.
func (m Model) latestSources() []client.Source {
	msgs := m.session.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == client.RoleAssistant && !msgs[i].Warning {
			return msgs[i].Sources
		}
	}
	return nil
}

// View renders the chat transcript, the open source panel and input.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := "NutriChat"
	if m.docTitle != "" {
		title = "NutriChat: " + m.docTitle
	}
	header := lipgloss.NewStyle().Bold(true).Render(title)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderChat() string {
	msgs := m.session.Messages()
	if len(msgs) == 0 {
		return "Ask a question to get started."
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch {
		case msg.Role == client.RoleUser:
			b.WriteString(userStyle.Render("You: ") + msg.Content)
		case msg.Warning:
			b.WriteString(warningStyle.Render(msg.Content))
		default:
			b.WriteString(assistantStyle.Render("Bot: ") + m.renderAnswer(msg))
		}
	}

	if panel := m.renderSourcePanel(); panel != "" {
		b.WriteString("\n\n" + panel)
	}
	return b.String()
}

// renderAnswer styles the bound citation tokens of an answer.
func (m Model) renderAnswer(msg client.ChatMessage) string {
	spans := client.ParseCitations(msg.Content, len(msg.Sources))
	var b strings.Builder
	for _, span := range spans {
		if span.Kind == client.CitationToken && span.SourceIndex >= 0 {
			b.WriteString(citationStyle.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

// renderSourcePanel shows the open source with the question's terms
// highlighted in its text.
func (m Model) renderSourcePanel() string {
	pop := m.session.Popover()
	if !pop.IsOpen() {
		return ""
	}
	sources := m.latestSources()
	index := pop.SourceIndex()
	if index < 0 || index >= len(sources) {
		return ""
	}
	src := sources[index]

	title := fmt.Sprintf("Source [%d]  page %s  similarity %s", src.Order, pageLabel(src.Page), similarityLabel(src.Similarity))
	body := m.highlightSnippet(src.Content)
	return panelStyle.Render(panelTitleStyle.Render(title) + "\n" + body)
}

func (m Model) highlightSnippet(snippet string) string {
	segments := client.Highlight(snippet, m.session.LastQuestion())
	var b strings.Builder
	for _, seg := range segments {
		if seg.Matched {
			b.WriteString(highlightStyle.Render(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

func pageLabel(page any) string {
	if page == nil {
		return "?"
	}
	if f, ok := page.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", page)
}

func similarityLabel(similarity *float64) string {
	if similarity == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *similarity)
}

var (
	chatBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	warningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	citationStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	panelTitleStyle = lipgloss.NewStyle().Bold(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
