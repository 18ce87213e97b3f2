// Package ui renders live detector progress in a terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"axoproject/internal/detect"
	"axoproject/internal/manifest"
)

type progressModel struct {
	title   string
	events  <-chan detect.Event
	spinner spinner.Model
	prog    progress.Model
	items   []detectorItem
	index   map[manifest.Ecosystem]int
	width   int
	done    bool
}

type detectorItem struct {
	eco     manifest.Ecosystem
	status  detect.Status
	elapsed time.Duration
}

type eventMsg detect.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows one line per
// detector. It quits when events is closed.
func NewProgressModel(title string, ecosystems []manifest.Ecosystem, events <-chan detect.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]detectorItem, 0, len(ecosystems))
	index := make(map[manifest.Ecosystem]int, len(ecosystems))
	for i, eco := range ecosystems {
		items = append(items, detectorItem{eco: eco, status: detect.StatusQueued})
		index[eco] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(detect.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-12-14, 10)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		line := fmt.Sprintf("  %s %s", status, truncate(string(item.eco), nameWidth))
		if item.elapsed > 0 {
			line += fmt.Sprintf("  %s", item.elapsed.Round(time.Millisecond))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev detect.Event) tea.Cmd {
	idx, ok := m.index[ev.Ecosystem]
	if !ok {
		return nil
	}
	m.items[idx].status = ev.Status
	m.items[idx].elapsed = ev.Elapsed
	return m.prog.SetPercent(m.fraction())
}

// fraction is the share of detectors in a terminal state.
func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 1
	}
	settled := 0
	for _, item := range m.items {
		if isTerminal(item.status) {
			settled++
		}
	}
	return float64(settled) / float64(len(m.items))
}

func isTerminal(s detect.Status) bool {
	switch s {
	case detect.StatusFound, detect.StatusMissing, detect.StatusBroken, detect.StatusSkipped:
		return true
	}
	return false
}

func styleStatus(status detect.Status) lipgloss.Style {
	switch status {
	case detect.StatusFound:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case detect.StatusBroken:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case detect.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
