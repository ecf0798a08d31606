// Package wizard is the interactive project setup flow for silk new.
package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options is the result of the wizard (or its defaults).
type Options struct {
	Name     string
	Template string
	Port     int
}

// Defaults returns the options used when the wizard is skipped.
func Defaults(name string) Options {
	return Options{
		Name:     name,
		Template: "basic",
		Port:     4311,
	}
}

// Templates the wizard offers, in display order.
var templates = []struct {
	name  string
	label string
}{
	{"basic", "Basic - a single surface to start from"},
	{"dashboard", "Dashboard - sidebar and content layout"},
}

type step int

const (
	stepTemplate step = iota
	stepPort
	stepDone
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	opts     Options
	step     step
	cursor   int
	port     textinput.Model
	quitting bool
}

func newModel(name string) model {
	ti := textinput.New()
	ti.Placeholder = "4311"
	ti.CharLimit = 5
	ti.Width = 8

	return model{
		opts: Defaults(name),
		port: ti,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.step == stepTemplate && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.step == stepTemplate && m.cursor < len(templates)-1 {
				m.cursor++
			}

		case "enter":
			switch m.step {
			case stepTemplate:
				m.opts.Template = templates[m.cursor].name
				m.step = stepPort
				m.port.Focus()
				return m, textinput.Blink
			case stepPort:
				if v, err := strconv.Atoi(m.port.Value()); err == nil && v > 0 {
					m.opts.Port = v
				}
				m.step = stepDone
				return m, tea.Quit
			}
		}
	}

	if m.step == stepPort {
		var cmd tea.Cmd
		m.port, cmd = m.port.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting || m.step == stepDone {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Creating project: %s", m.opts.Name)))
	b.WriteString("\n\n")

	switch m.step {
	case stepTemplate:
		b.WriteString("Select a template:\n\n")
		for i, t := range templates {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("  > " + t.label))
			} else {
				b.WriteString("    " + t.label)
			}
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("\n  up/down to move, enter to select, esc to cancel\n"))

	case stepPort:
		b.WriteString("Development server port:\n\n  ")
		b.WriteString(m.port.View())
		b.WriteString(dimStyle.Render("\n\n  enter to accept, esc to cancel\n"))
	}

	return b.String()
}

// Run executes the wizard and returns the chosen options.
func Run(name string) (Options, error) {
	p := tea.NewProgram(newModel(name))
	final, err := p.Run()
	if err != nil {
		return Options{}, err
	}

	m := final.(model)
	if m.quitting {
		return Options{}, fmt.Errorf("cancelled")
	}
	return m.opts, nil
}
