package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/replybot/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/replybot/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/replybot/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/replybot/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/replybot/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/replybot/internal/core/domain"
)

// chromeHeight is the number of rows taken by everything but the transcript:
// title, bordered input (3) and status bar.
const chromeHeight = 5

// Exchange is one query and its outcome.
type Exchange struct {
	Query string
	Label string
	Err   error
}

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input      *input.QueryInput
	statusBar  *status.Bar
	transcript viewport.Model

	exchanges []Exchange
	pending   bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetLabels(len(ports.Chat.Labels()))

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		statusBar:  bar,
		transcript: viewport.New(80, 10),
	}, nil
}

// WithContext sets the context passed to the chat service.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		tea.SetWindowTitle("replybot"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.Submit):
			return a, a.submit()
		case keymap.Matches(key, a.keymap.Clear):
			a.exchanges = nil
			a.statusBar.Clear()
			a.refresh()
			return a, nil
		case keymap.Matches(key, a.keymap.ScrollUp), keymap.Matches(key, a.keymap.ScrollDown):
			a.transcript, cmd = a.transcript.Update(msg)
			return a, cmd
		}
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case messages.AnswerCompleted:
		a.pending = false
		ex := Exchange{Query: msg.Query, Err: msg.Err}
		if msg.Answer != nil {
			ex.Label = msg.Answer.Label
		}
		a.exchanges = append(a.exchanges, ex)
		if msg.Err != nil {
			a.statusBar.SetError(errorText(msg.Err))
		} else {
			a.statusBar.Clear()
		}
		a.refresh()
		return a, nil
	}

	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the typed query. Blank input and submits while an answer
// is outstanding are ignored.
func (a *App) submit() tea.Cmd {
	query := a.input.Value()
	if a.pending || strings.TrimSpace(query) == "" {
		return nil
	}

	a.input.Reset()
	a.pending = true
	a.statusBar.SetState(status.StateThinking)
	return a.answer(query)
}

// answer runs the chat service off the update loop.
func (a *App) answer(query string) tea.Cmd {
	chat := a.ports.Chat
	ctx := a.ctx
	return func() tea.Msg {
		ans, err := chat.Answer(ctx, domain.NewAnswerRequest(query))
		return messages.AnswerCompleted{Query: query, Answer: ans, Err: err}
	}
}

// errorText hides internal failure detail from the screen.
func errorText(err error) string {
	if errors.Is(err, domain.ErrValidation) {
		return err.Error()
	}
	return "internal error"
}

// refresh re-renders the transcript and scrolls to the newest exchange.
func (a *App) refresh() {
	a.transcript.SetContent(a.renderTranscript())
	a.transcript.GotoBottom()
}

func (a *App) renderTranscript() string {
	if len(a.exchanges) == 0 {
		return a.styles.Muted.Render("Type a message and press enter.")
	}

	var b strings.Builder
	for i, ex := range a.exchanges {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.styles.Speaker.Render("you: "))
		b.WriteString(a.styles.Normal.Render(ex.Query))
		b.WriteString("\n")
		b.WriteString(a.styles.Bot.Render("bot: "))
		if ex.Err != nil {
			b.WriteString(a.styles.Error.Render(errorText(ex.Err)))
		} else {
			b.WriteString(a.styles.Label.Render(ex.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("replybot"),
		a.transcript.View(),
		a.input.View(),
		a.statusBar.View(),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Exchanges returns the transcript so far.
func (a *App) Exchanges() []Exchange {
	out := make([]Exchange, len(a.exchanges))
	copy(out, a.exchanges)
	return out
}

// Pending reports whether an answer is outstanding.
func (a *App) Pending() bool {
	return a.pending
}

// Status returns the status bar state.
func (a *App) Status() status.State {
	return a.statusBar.State()
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)

	a.transcript.Width = width
	a.transcript.Height = max(height-chromeHeight, 1)
	a.refresh()
}
