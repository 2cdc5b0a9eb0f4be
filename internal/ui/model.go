package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage represents the current stage of analysis
type Stage int

const (
	StageLoadRules Stage = iota
	StageReadDocuments
	StageAnalyze
	StageDone
)

// Message types for updating the model
type (
	StageMsg         Stage
	OperationMsg     string
	DocumentStartMsg string
	DoneMsg          struct{ Err error }
	DocumentCountMsg int
)

// DocumentDoneMsg reports the outcome of one analysed document
type DocumentDoneMsg struct {
	Defects int
	Failed  bool
}

// Model is the Bubbletea model for progress display
type Model struct {
	stage     Stage
	spinner   spinner.Model
	progress  progress.Model
	currentOp string
	docCount  int
	docsDone  int
	defects   int
	failed    int
	width     int
	quitting  bool
	err       error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(progress.WithDefaultGradient())

	return Model{
		stage:    StageLoadRules,
		spinner:  s,
		progress: p,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 4
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)
		return m, nil

	case OperationMsg:
		m.currentOp = string(msg)
		return m, nil

	case DocumentStartMsg:
		m.currentOp = string(msg)
		return m, nil

	case DocumentCountMsg:
		m.docCount = int(msg)
		return m, nil

	case DocumentDoneMsg:
		m.docsDone++
		m.defects += msg.Defects
		if msg.Failed {
			m.failed++
		}
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	switch m.stage {
	case StageLoadRules:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading rule set...")

	case StageReadDocuments:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Reading documents")
		if m.currentOp != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.currentOp))
		}

	case StageAnalyze:
		if m.docCount > 0 {
			pct := float64(m.docsDone) / float64(m.docCount)
			sb.WriteString(m.progress.ViewAs(pct))
			sb.WriteString(fmt.Sprintf(" %d/%d", m.docsDone, m.docCount))
			sb.WriteString(m.tally())
			sb.WriteString("\n")
		}
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		if m.currentOp != "" {
			sb.WriteString(m.currentOp)
		} else {
			sb.WriteString("Analysing documents...")
		}
	}

	return sb.String()
}

// tally summarises the findings so far, e.g. " · 12 defects, 1 failed"
func (m Model) tally() string {
	if m.docsDone == 0 {
		return ""
	}
	t := fmt.Sprintf(" · %d %s", m.defects, plural(m.defects, "defect", "defects"))
	if m.failed > 0 {
		t += fmt.Sprintf(", %d failed", m.failed)
	}
	return t
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
