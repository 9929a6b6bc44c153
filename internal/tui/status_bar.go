package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusBar shows one line of text, with a spinner while work is pending
type statusBar struct {
	text    string
	base    lipgloss.Style
	style   lipgloss.Style
	spinner spinner.Model
	loading bool
}

func newStatusBar(style lipgloss.Style) *statusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = style

	return &statusBar{
		base:    style,
		style:   style,
		spinner: s,
	}
}

// Start shows the spinner with text and returns the first tick
func (s *statusBar) Start(text string) tea.Cmd {
	s.text = text
	s.style = s.base
	if s.loading {
		return nil
	}
	s.loading = true
	return s.spinner.Tick
}

// Stop hides the spinner and shows text with style
func (s *statusBar) Stop(text string, style lipgloss.Style) {
	s.loading = false
	s.text = text
	s.style = style
}

func (s *statusBar) SetText(text string) {
	s.text = text
	s.style = s.base
}

func (s *statusBar) Text() string {
	return s.text
}

func (s *statusBar) Loading() bool {
	return s.loading
}

func (s *statusBar) Update(msg tea.Msg) tea.Cmd {
	if !s.loading {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

func (s *statusBar) View() string {
	if s.text == "" && !s.loading {
		return ""
	}
	if s.loading {
		return s.style.Render(s.spinner.View() + " " + s.text)
	}
	return s.style.Render(s.text)
}
