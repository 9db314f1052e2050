package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/finsight-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/finsight-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
)

// askResultMsg carries a completed answer back into the update loop.
type askResultMsg struct {
	result *driving.AskResult
}

// askErrMsg carries a failed ask back into the update loop.
type askErrMsg struct {
	err error
}

// sessionStartedMsg signals that a fresh session replaced the current one.
type sessionStartedMsg struct {
	session *domain.Session
}

// App is the chat view following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	viewport viewport.Model
	input    textarea.Model

	// transcript mirrors the current session's messages plus any turn
	// still in flight.
	transcript []domain.Message

	sessionID string
	waiting   bool
	truncated bool
	err       error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat view with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textarea.New()
	input.Placeholder = "Ask about the uploaded financial statements..."
	input.ShowLineNumbers = false
	input.SetHeight(3)
	input.Focus()

	app := &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   styles.DefaultStyles(),
		keys:     keymap.DefaultKeyMap(),
		viewport: viewport.New(80, 20),
		input:    input,
	}

	if ports.Workspace != nil {
		if session := ports.Workspace.Session(); session != nil {
			app.sessionID = session.ID
			app.transcript = append(app.transcript, session.Messages...)
		}
	}

	return app, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Send):
			return a, a.send()

		case key.Matches(msg, a.keys.NewSession):
			return a, a.startNewSession()

		case key.Matches(msg, a.keys.ScrollUp), key.Matches(msg, a.keys.ScrollDown):
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}

	case askResultMsg:
		a.waiting = false
		a.truncated = msg.result.ContextTruncated
		a.transcript = append(a.transcript, domain.Message{
			Role:    domain.RoleAssistant,
			Content: msg.result.Answer,
		})
		a.refreshTranscript()
		return a, nil

	case askErrMsg:
		a.waiting = false
		a.err = msg.err
		return a, nil

	case sessionStartedMsg:
		a.sessionID = msg.session.ID
		a.transcript = nil
		a.truncated = false
		a.err = nil
		a.refreshTranscript()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// send submits the typed question, recording the user turn immediately
// so it shows while the model call is in flight.
func (a *App) send() tea.Cmd {
	if a.waiting {
		return nil
	}
	question := strings.TrimSpace(a.input.Value())
	if question == "" {
		return nil
	}

	a.input.Reset()
	a.err = nil
	a.waiting = true
	a.transcript = append(a.transcript, domain.Message{
		Role:    domain.RoleUser,
		Content: question,
	})
	a.refreshTranscript()

	ctx := a.ctx
	chat := a.ports.Chat
	return func() tea.Msg {
		result, err := chat.Ask(ctx, question)
		if err != nil {
			return askErrMsg{err: err}
		}
		return askResultMsg{result: result}
	}
}

// startNewSession flushes the current session and begins an empty one.
func (a *App) startNewSession() tea.Cmd {
	if a.waiting || a.ports.Session == nil {
		return nil
	}

	ctx := a.ctx
	sessions := a.ports.Session
	ws := a.ports.Workspace
	return func() tea.Msg {
		var outgoing *domain.Session
		if ws != nil {
			outgoing = ws.Session()
		}
		session, err := sessions.StartNew(ctx, outgoing)
		if err != nil {
			return askErrMsg{err: err}
		}
		if ws != nil {
			ws.SetSession(session)
		}
		return sessionStartedMsg{session: session}
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	inputHeight := a.input.Height() + 2 // border
	statusHeight := 1
	titleHeight := 1
	a.viewport.Width = width
	a.viewport.Height = max(1, height-inputHeight-statusHeight-titleHeight)
	a.input.SetWidth(max(10, width-2))
	a.refreshTranscript()
}

// refreshTranscript re-renders the conversation into the viewport and
// pins it to the latest turn.
func (a *App) refreshTranscript() {
	a.viewport.SetContent(a.renderTranscript())
	a.viewport.GotoBottom()
}

func (a *App) renderTranscript() string {
	if len(a.transcript) == 0 {
		return a.styles.Muted.Render("No messages yet. Type a question and press Enter.")
	}

	var b strings.Builder
	for i, msg := range a.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := a.styles.AssistantLabel.Render("finsight")
		if msg.Role == domain.RoleUser {
			label = a.styles.UserLabel.Render("you")
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(a.styles.Normal.Render(msg.Content))
	}
	return b.String()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("finsight chat"))
	if a.sessionID != "" {
		b.WriteString(a.styles.Muted.Render("  session " + a.sessionID))
	}
	b.WriteString("\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.styles.InputBorder.Render(a.input.View()))
	b.WriteString("\n")
	b.WriteString(a.statusLine())
	return b.String()
}

func (a *App) statusLine() string {
	if a.err != nil {
		return a.styles.Error.Render("error: " + a.err.Error())
	}
	if a.waiting {
		return a.styles.StatusBar.Render("thinking...")
	}
	status := "enter: send • ctrl+n: new session • pgup/pgdn: scroll • esc: quit"
	if a.truncated {
		return a.styles.Warning.Render("context truncated to token budget") +
			a.styles.StatusBar.Render("  "+status)
	}
	return a.styles.StatusBar.Render(status)
}
