package tui

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/oracle"
	"github.com/tatianab/basilisk/internal/store"
)

type sessionState int

const (
	stateTerminal sessionState = iota
	statePlaying
	stateAsking
)

const (
	defaultSlot  = "quicksave"
	contextLines = 20
	askTimeout   = 30 * time.Second
)

// Asker answers free-form player questions.
type Asker interface {
	Ask(ctx context.Context, q oracle.Query) ([]string, error)
}

type Options struct {
	Engine *engine.Engine
	Store  store.Store
	// Oracle is optional; /ask is disabled without it.
	Oracle Asker
	Logger *log.Logger
}

type model struct {
	state     sessionState
	opts      Options
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   string
	recent    []string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#33FF66"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

var terminalHelp = []string{
	"Terminal commands:",
	"  start  - enter game mode",
	"  help   - show this list",
	"  clear  - clear the screen",
	"  exit   - quit",
}

func NewModel(opts Options) model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	ti := textinput.New()
	ti.Placeholder = "Type 'start' to begin..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := model{
		state:     stateTerminal,
		opts:      opts,
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}
	m.appendOutput([]string{
		"BASILISK TERMINAL v0.9",
		"Type 'start' to begin, 'help' for commands.",
	})
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type answerMsg struct {
	lines []string
	err   error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateAsking {
				return m, nil
			}
			line := strings.TrimSpace(m.textInput.Value())
			if line == "" {
				return m, nil
			}
			m.textInput.Reset()

			logWidth := int(float64(m.width) * 0.75)
			m.gameLog += "\n" + userStyle.Width(logWidth).Render("> "+line) + "\n"
			out, next := m.submit(line)
			m.appendOutput(out)
			return m, next
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(m.gameLog)

	case answerMsg:
		m.state = statePlaying
		if msg.err != nil {
			m.opts.Logger.Printf("oracle: %v", msg.err)
			m.appendOutput([]string{">> The oracle's signal breaks up. Try again later."})
			return m, nil
		}
		m.appendOutput(msg.lines)
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submit handles one line of input. A panic raised by room logic is logged
// and reported as a failed command; the session keeps running.
func (m *model) submit(line string) (out []string, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Errorf("panic handling %q: %v", line, r)
			m.opts.Logger.Printf("%+v", err)
			out, cmd = []string{">> Command failed: internal error."}, nil
		}
	}()

	if m.state == stateTerminal {
		return m.terminalCommand(line)
	}
	return m.gameCommand(line)
}

func (m *model) terminalCommand(line string) ([]string, tea.Cmd) {
	switch strings.ToLower(line) {
	case "start":
		m.state = statePlaying
		m.textInput.Placeholder = "What do you do?"
		return m.opts.Engine.EnterGameMode(), nil
	case "help":
		return terminalHelp, nil
	case "clear":
		m.gameLog = ""
		m.recent = nil
		return nil, nil
	case "exit", "quit":
		return nil, tea.Quit
	}
	return []string{fmt.Sprintf("Unknown command: %s. Type 'help' for commands.", line)}, nil
}

func (m *model) gameCommand(line string) ([]string, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch strings.ToLower(fields[0]) {
	case "stop":
		m.state = stateTerminal
		m.textInput.Placeholder = "Type 'start' to begin..."
		return m.opts.Engine.ExitGameMode(), nil
	case "/quit":
		return nil, tea.Quit
	case "/save":
		return m.save(slotOr(arg)), nil
	case "/load":
		return m.load(slotOr(arg)), nil
	case "/saves":
		return m.listSaves(), nil
	case "/ask":
		return m.ask(arg)
	}
	return m.opts.Engine.ProcessGameCommand(line), nil
}

func slotOr(arg string) string {
	if arg == "" {
		return defaultSlot
	}
	return strings.ToLower(arg)
}

func (m *model) save(slot string) []string {
	if m.opts.Store == nil {
		return []string{">> Saving is not available."}
	}
	gs, err := m.opts.Engine.Snapshot()
	if err == nil {
		err = m.opts.Store.Save(context.Background(), slot, gs)
	}
	if err != nil {
		m.opts.Logger.Printf("save %s: %+v", slot, err)
		return []string{fmt.Sprintf(">> Save failed: %v", err)}
	}
	m.opts.Logger.Printf("saved slot %s, room=%s", slot, gs.CurrentRoomID)
	return []string{fmt.Sprintf(">> State saved to slot '%s'.", slot)}
}

func (m *model) load(slot string) []string {
	if m.opts.Store == nil {
		return []string{">> Loading is not available."}
	}
	gs, err := m.opts.Store.Load(context.Background(), slot)
	if errors.Is(err, store.ErrNotFound) {
		return []string{fmt.Sprintf(">> No save in slot '%s'.", slot)}
	}
	if err != nil {
		m.opts.Logger.Printf("load %s: %+v", slot, err)
		return []string{fmt.Sprintf(">> Load failed: %v", err)}
	}
	out := []string{fmt.Sprintf(">> State restored from slot '%s'.", slot), ""}
	return append(out, m.opts.Engine.Restore(gs)...)
}

func (m *model) listSaves() []string {
	if m.opts.Store == nil {
		return []string{">> Saving is not available."}
	}
	slots, err := m.opts.Store.List(context.Background())
	if err != nil {
		m.opts.Logger.Printf("list saves: %+v", err)
		return []string{fmt.Sprintf(">> Could not list saves: %v", err)}
	}
	if len(slots) == 0 {
		return []string{">> No saved states."}
	}
	out := []string{">> Saved states:"}
	for _, s := range slots {
		out = append(out, "   "+s)
	}
	return out
}

func (m *model) ask(question string) ([]string, tea.Cmd) {
	if m.opts.Oracle == nil {
		return []string{">> The oracle is silent. Set GEMINI_API_KEY to consult it."}, nil
	}
	if question == "" {
		return []string{">> Usage: /ask <question>"}, nil
	}

	q := oracle.Query{
		Room:     m.opts.Engine.CurrentRoomTitle(),
		Context:  append([]string(nil), m.recent...),
		Question: question,
	}
	asker := m.opts.Oracle
	m.state = stateAsking
	return []string{">> Consulting the oracle..."}, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		lines, err := asker.Ask(ctx, q)
		return answerMsg{lines: lines, err: err}
	}
}

func (m *model) appendOutput(lines []string) {
	if len(lines) == 0 {
		return
	}
	m.recent = append(m.recent, lines...)
	if len(m.recent) > contextLines {
		m.recent = m.recent[len(m.recent)-contextLines:]
	}

	logWidth := int(float64(m.width) * 0.75)
	m.gameLog += gameStyle.Width(logWidth).Render(strings.Join(lines, "\n")) + "\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	mainView := m.viewport.View()
	if m.state != stateTerminal {
		mainView = lipgloss.JoinHorizontal(lipgloss.Top, mainView, m.renderState())
	}

	help := "Commands: start, help, clear, exit."
	switch m.state {
	case statePlaying:
		help = "Commands: stop, /save [slot], /load [slot], /saves, /ask <question>, /quit."
	case stateAsking:
		help = "The oracle is thinking..."
	}

	s := lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+helpStyle.Render(help),
	)
	return "\n" + s + "\n"
}

func (m model) renderState() string {
	eng := m.opts.Engine
	state := eng.State()

	room := titleStyle.Render("ROOM") + "\n" + eng.CurrentRoomTitle() + "\n\n"

	handle := state.PlayerName
	if handle == "" {
		handle = "(unset)"
	}
	operator := titleStyle.Render("HANDLE") + "\n" + handle + "\n\n"

	set := 0
	for _, v := range state.Flags {
		if v {
			set++
		}
	}
	progress := titleStyle.Render("PROGRESS") + "\n" + engine.Count(set, "flag") + " set\n\n"

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if len(state.Inventory) == 0 {
		inventory = "(empty)"
	} else {
		for _, item := range state.Inventory {
			inventory += "- " + item + "\n"
		}
	}

	content := room + operator + progress + invTitle + inventory

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
