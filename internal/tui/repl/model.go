// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model for the interactive teacup REPL
// Author:      msto63
// Created:     2025-06-25
// License:     MIT
// ============================================================================

package repl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/foundation/engine/interp"
	"github.com/msto63/teacup/internal/history"
	"github.com/msto63/teacup/internal/render"
)

// Entry is one evaluated line of the transcript
type Entry struct {
	Input    string
	Output   string
	Value    string
	Err      error
	Tree     string
	Duration time.Duration
}

// recordedMsg reports the outcome of writing an entry to history
type recordedMsg struct {
	err error
}

// Config holds REPL configuration
type Config struct {
	// NewEngine creates the engine; print writes to out
	NewEngine func(out io.Writer) (*engine.Engine, error)

	// Store records evaluations when set
	Store history.Store

	// ShowTree starts with parse trees visible
	ShowTree bool
}

// Model is the Bubbletea model for the REPL
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	showTree bool
	status   string

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Evaluation
	engine    *engine.Engine
	out       *bytes.Buffer
	store     history.Store
	sessionID string
	entries   []Entry

	// Input history
	inputHistory []string
	historyIndex int
	currentInput string
}

// New creates a new REPL model
func New(cfg Config) (Model, error) {
	if cfg.NewEngine == nil {
		return Model{}, mdwerror.New("engine constructor is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("repl.New")
	}

	out := &bytes.Buffer{}
	e, err := cfg.NewEngine(out)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Prompt = PromptStyle.Render(Prompt)
	ti.Placeholder = "expression (Enter to evaluate)"
	ti.CharLimit = 4096
	ti.Focus()

	return Model{
		input:        ti,
		engine:       e,
		out:          out,
		store:        cfg.Store,
		sessionID:    uuid.New().String(),
		showTree:     cfg.ShowTree,
		historyIndex: -1,
	}, nil
}

// Entries returns the transcript
func (m Model) Entries() []Entry {
	return m.entries
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 6
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.status = "history: " + msg.err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlT:
		m.showTree = !m.showTree
		m.updateViewportContent()
		return m, nil

	case tea.KeyCtrlL:
		m.entries = nil
		m.updateViewportContent()
		return m, nil

	case tea.KeyUp:
		m.recall(1)
		return m, nil

	case tea.KeyDown:
		m.recall(-1)
		return m, nil

	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		if line == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.inputHistory = append(m.inputHistory, line)
		m.historyIndex = -1
		m.currentInput = ""

		cmd := m.evaluate(line)
		m.updateViewportContent()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recall moves through previous inputs; step 1 goes back in time
func (m *Model) recall(step int) {
	if len(m.inputHistory) == 0 {
		return
	}
	if m.historyIndex == -1 {
		if step < 0 {
			return
		}
		m.currentInput = m.input.Value()
	}

	idx := m.historyIndex + step
	switch {
	case idx < 0:
		m.historyIndex = -1
		m.input.SetValue(m.currentInput)
	case idx >= len(m.inputHistory):
		return
	default:
		m.historyIndex = idx
		m.input.SetValue(m.inputHistory[len(m.inputHistory)-1-idx])
	}
	m.input.CursorEnd()
}

// evaluate runs one line and appends it to the transcript
func (m *Model) evaluate(line string) tea.Cmd {
	m.out.Reset()
	res, err := m.engine.Run(line)

	entry := Entry{Input: line, Output: m.out.String(), Err: err}
	if res != nil {
		entry.Duration = res.Duration
	}
	if err == nil {
		entry.Value = interp.Format(res.Value)
	}
	if tree, perr := engine.ParseWith(m.engine, line, render.NewTreeFinalizer(m.engine.Grammar().Classifier)); perr == nil {
		entry.Tree = render.Styled(tree)
	}
	m.entries = append(m.entries, entry)

	if m.store == nil {
		return nil
	}
	rec := history.FromResult(m.sessionID, res, err)
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return recordedMsg{err: store.Record(ctx, rec)}
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading teacup..."
	}

	var b strings.Builder
	b.WriteString(LogoStyle.Render(Logo))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(FocusedInputStyle.Width(m.width - 4).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderStatusBar() string {
	tree := "off"
	if m.showTree {
		tree = "on"
	}
	text := fmt.Sprintf("%d evaluated · tree %s", len(m.entries), tree)
	if m.store != nil {
		text += " · history on"
	}
	if m.status != "" {
		text += " · " + m.status
	}
	return StatusBarStyle.Render(text)
}

func (m Model) renderHelpBar() string {
	hints := []string{
		RenderKeyHint("enter", "evaluate"),
		RenderKeyHint("↑/↓", "recall"),
		RenderKeyHint("ctrl+t", "tree"),
		RenderKeyHint("ctrl+l", "clear"),
		RenderKeyHint("esc", "quit"),
	}
	return strings.Join(hints, "  ")
}

// Transcript renders all entries without the surrounding UI
func (m Model) Transcript() string {
	var content strings.Builder
	for _, e := range m.entries {
		content.WriteString(PromptStyle.Render(Prompt) + InputEchoStyle.Render(e.Input))
		content.WriteString("\n")
		if m.showTree && e.Tree != "" {
			content.WriteString(TreePanelStyle.Render(e.Tree))
			content.WriteString("\n")
		}
		if e.Output != "" {
			content.WriteString(OutputStyle.Render(strings.TrimSuffix(e.Output, "\n")))
			content.WriteString("\n")
		}
		if e.Err != nil {
			content.WriteString(ErrorStyle.Render(e.Err.Error()))
		} else {
			content.WriteString(ValueStyle.Render(e.Value) + "  " + MetaStyle.Render(e.Duration.Round(time.Microsecond).String()))
		}
		content.WriteString("\n\n")
	}
	return content.String()
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.Transcript())
	m.viewport.GotoBottom()
}

// Run starts the REPL program
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
