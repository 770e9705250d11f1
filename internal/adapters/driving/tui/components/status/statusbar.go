// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/keymap"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/styles"
)

// State represents the current view state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateSelected  State = "selected"
	StateBusy      State = "busy"
	StateSaved     State = "saved"
	StateError     State = "error"
)

// Bar displays view status, the signed-in user and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	user        string
	resultCount int
	hints       []key.Binding
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Width includes the style's padding, so the content gets what is left.
	inner := max(s.width-s.styles.StatusBar.GetHorizontalFrameSize(), 0)
	if room := inner - lipgloss.Width(left) - 1; lipgloss.Width(right) > room {
		right = ansi.Truncate(right, max(room, 0), "…")
	}

	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).MaxWidth(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, the message and the signed-in user.
func (s *Bar) renderLeft() string {
	var left string
	switch s.state {
	case StateSearching:
		left = s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			left = s.styles.Error.Render("Error: " + s.message)
		} else {
			left = s.styles.Error.Render("Error")
		}
	case StateSelected:
		left = s.styles.Normal.Render("Selected: " + s.message)
	case StateBusy:
		left = s.styles.Muted.Render(s.message)
	case StateSaved:
		left = s.styles.Success.Render(s.message)
	case StateResults:
		left = s.styles.Normal.Render(resultLabel(s.resultCount))
	case StateReady:
		left = s.styles.Muted.Render("Ready")
	default:
		left = s.styles.Muted.Render("Ready")
	}

	if s.user != "" {
		left = s.styles.Subtitle.Render(s.user) + s.styles.Muted.Render(" • ") + left
	}
	return left
}

func resultLabel(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.hints
	if len(bindings) == 0 {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the message shown with the error, selected, busy and
// saved states.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetUser sets the signed-in user's display name.
func (s *Bar) SetUser(user string) {
	s.user = user
}

// User returns the signed-in user's display name.
func (s *Bar) User() string {
	return s.user
}

// SetResultCount sets the match count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current match count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetHints replaces the keybinding hints. Nil restores the short help.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its ready state, keeping the user.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
}
