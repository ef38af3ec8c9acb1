// Package tui is a terminal play surface over a local game session. It is a
// presentation collaborator: all rules live behind the session's try
// operations, and the model only ever sees projection views.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/groupsort/internal/game"
	"github.com/lox/groupsort/internal/stats"
)

// Model is the Bubble Tea model for a sorting game.
type Model struct {
	session  *game.Session
	recorder *stats.Recorder
	logger   *log.Logger

	logViewport viewport.Model
	input       textinput.Model

	gameLog []string

	width       int
	height      int
	initialized bool
	quitting    bool
}

// New creates a model around a session.
func New(session *game.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "cards | piles | pair <a> <b> | add <card> <pile> | split <pile> | reset | quit"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	m := &Model{
		session:     session,
		recorder:    stats.NewRecorder(nil),
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
	}
	session.EventBus().Subscribe(m.recorder)
	m.appendLog(InfoStyle.Render("Type 'help' for commands. Cards and piles are addressed by their listed number."))
	m.showCards()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 2
		m.logViewport.Height = msg.Height - 5
		if !m.initialized {
			m.initialized = true
			m.refreshViewport()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line != "" {
				if quit := m.execute(line); quit {
					m.quitting = true
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	header := HeaderStyle.Render(" groupsort ")
	status := StatusStyle.Render(m.statusLine())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		status,
		m.logViewport.View(),
		m.input.View(),
	)
}

func (m *Model) statusLine() string {
	view := game.Snapshot(m.session.State())
	return fmt.Sprintf("placed %d/%d · piles %d · complete %d · mistakes %d · %d%%",
		view.CorrectlyPlaced, view.TotalCards, len(view.Piles), view.Completed,
		view.Mistakes, view.CompletionPercent)
}

// execute runs one command line, returning true when the user quit.
func (m *Model) execute(line string) bool {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "q", "exit":
		return true
	case "help", "h":
		m.showHelp()
	case "cards", "c":
		m.showCards()
	case "piles", "p":
		m.showPiles()
	case "stats", "s":
		m.showStats()
	case "pair":
		m.cmdPair(args)
	case "add":
		m.cmdAdd(args)
	case "split":
		m.cmdSplit(args)
	case "reset":
		m.session.Reset()
		m.appendLog(WarningStyle.Render("Game reset."))
	default:
		m.appendLog(ErrorStyle.Render("Unknown command: " + cmd))
	}
	return false
}

func (m *Model) cmdPair(args []string) {
	if len(args) != 2 {
		m.appendLog(ErrorStyle.Render("Usage: pair <card> <card>"))
		return
	}
	first, ok1 := m.ungroupedByIndex(args[0])
	second, ok2 := m.ungroupedByIndex(args[1])
	if !ok1 || !ok2 {
		return
	}

	pileID, result := m.session.TryCreatePile(first.ID, second.ID)
	switch result {
	case game.ResultAccepted:
		m.appendLog(SuccessStyle.Render(fmt.Sprintf("New pile %d: %s + %s", m.pileNumber(pileID), first.Title, second.Title)))
	case game.ResultRejectedMismatch:
		m.appendLog(ErrorStyle.Render(fmt.Sprintf("%s and %s don't belong together. Mistakes: %d",
			first.Title, second.Title, m.session.State().Mistakes)))
	default:
		m.appendLog(ErrorStyle.Render("Move ignored: " + result.String()))
	}
}

func (m *Model) cmdAdd(args []string) {
	if len(args) != 2 {
		m.appendLog(ErrorStyle.Render("Usage: add <card> <pile>"))
		return
	}
	card, ok := m.ungroupedByIndex(args[0])
	if !ok {
		return
	}
	pile, ok := m.pileByIndex(args[1])
	if !ok {
		return
	}

	result := m.session.TryAddCard(card.ID, pile.ID)
	switch result {
	case game.ResultAccepted:
		m.appendLog(SuccessStyle.Render(fmt.Sprintf("%s added to pile %s", card.Title, args[1])))
		m.announceCompletions(pile.ID)
	case game.ResultRejectedMismatch:
		m.appendLog(ErrorStyle.Render(fmt.Sprintf("%s doesn't belong in pile %s. Mistakes: %d",
			card.Title, args[1], m.session.State().Mistakes)))
	case game.ResultPileComplete:
		m.appendLog(WarningStyle.Render("That pile is already complete."))
	default:
		m.appendLog(ErrorStyle.Render("Move ignored: " + result.String()))
	}
}

func (m *Model) cmdSplit(args []string) {
	if len(args) != 1 {
		m.appendLog(ErrorStyle.Render("Usage: split <pile>"))
		return
	}
	pile, ok := m.pileByIndex(args[0])
	if !ok {
		return
	}
	if m.session.Split(pile.ID).Accepted() {
		m.appendLog(WarningStyle.Render(fmt.Sprintf("Pile %s split, %d cards returned.", args[0], len(pile.CardIDs))))
	}
}

func (m *Model) announceCompletions(pileID string) {
	state := m.session.State()
	for _, p := range state.Piles {
		if p.ID == pileID && p.Complete {
			m.appendLog(RevealStyle.Render(fmt.Sprintf("Pile complete! Category revealed: %s", p.RevealedCategory)))
		}
	}
	if m.session.Won() {
		s := m.recorder.Snapshot()
		m.appendLog(RevealStyle.Render(fmt.Sprintf("You won! Mistakes: %d, accuracy: %.0f%%, time: %s",
			state.Mistakes, s.Accuracy()*100, m.session.Elapsed().Round(time.Second))))
	}
}

func (m *Model) showStats() {
	s := m.recorder.Snapshot()
	m.appendLog(InfoStyle.Render(fmt.Sprintf(
		"moves %d · mistakes %d · accuracy %.0f%% · completions %d · splits %d · resets %d · %.1f moves/min",
		s.Moves, s.Mistakes, s.Accuracy()*100, s.Completions, s.Splits, s.Resets, s.MovesPerMinute())))
}

func (m *Model) showHelp() {
	m.appendLog(InfoStyle.Render(strings.Join([]string{
		"cards            list ungrouped cards",
		"piles            list piles",
		"pair <a> <b>     start a pile from two cards",
		"add <card> <pile> add a card to a pile",
		"split <pile>     break a pile apart",
		"stats            show session statistics",
		"reset            start over",
		"quit             leave the game",
	}, "\n")))
}

func (m *Model) showCards() {
	ungrouped := game.UngroupedCards(m.session.State())
	lines := make([]string, 0, len(ungrouped)+1)
	lines = append(lines, InfoStyle.Render(fmt.Sprintf("%d ungrouped cards:", len(ungrouped))))
	for i, c := range ungrouped {
		lines = append(lines, CardStyle.Render(fmt.Sprintf("%4d. %s", i+1, c.Title)))
	}
	m.appendLog(strings.Join(lines, "\n"))
}

func (m *Model) showPiles() {
	state := m.session.State()
	if len(state.Piles) == 0 {
		m.appendLog(InfoStyle.Render("No piles yet. Start one with 'pair'."))
		return
	}
	lines := make([]string, 0, len(state.Piles))
	for i, p := range state.Piles {
		label := fmt.Sprintf("%3d. %d cards", i+1, len(p.CardIDs))
		if p.Complete {
			label += " · " + RevealStyle.Render(p.RevealedCategory)
		}
		titles := make([]string, 0, len(p.CardIDs))
		for _, c := range game.PileCards(state, p.ID) {
			titles = append(titles, c.Title)
		}
		lines = append(lines, PileStyle.Render(label)+CardStyle.Render(": "+strings.Join(titles, ", ")))
	}
	m.appendLog(strings.Join(lines, "\n"))
}

// ungroupedByIndex resolves a 1-based index into the current ungrouped list.
func (m *Model) ungroupedByIndex(arg string) (game.CardView, bool) {
	ungrouped := game.UngroupedCards(m.session.State())
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > len(ungrouped) {
		m.appendLog(ErrorStyle.Render("No such card: " + arg))
		return game.CardView{}, false
	}
	c := ungrouped[i-1]
	return game.CardView{ID: c.ID, Title: c.Title}, true
}

// pileByIndex resolves a 1-based index into the current pile list.
func (m *Model) pileByIndex(arg string) (game.Pile, bool) {
	piles := m.session.State().Piles
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > len(piles) {
		m.appendLog(ErrorStyle.Render("No such pile: " + arg))
		return game.Pile{}, false
	}
	return piles[i-1], true
}

func (m *Model) pileNumber(pileID string) int {
	for i, p := range m.session.State().Piles {
		if p.ID == pileID {
			return i + 1
		}
	}
	return 0
}

func (m *Model) appendLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

// Run starts the interactive program and blocks until the user quits.
func Run(session *game.Session, logger *log.Logger) error {
	program := tea.NewProgram(New(session, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
