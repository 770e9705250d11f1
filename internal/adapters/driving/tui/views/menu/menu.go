// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/messages"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool // If true, selecting this item quits the app

	// disabled items are shown but cannot be chosen.
	disabled bool
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	user     string
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Patient lookup", Hint: "name, phone, national ID or patient number", View: messages.ViewPatients},
			{Label: "Consumable lookup", Hint: "name, SKU, description or category", View: messages.ViewConsumables},
			{Label: "Staff lookup", Hint: "username, email or department", View: messages.ViewStaff},
			{Label: "Record usage", Hint: "log consumables used for a patient", View: messages.ViewUsage},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.move(-1)
			return v, nil

		case "down", "j":
			v.move(1)
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			if item.disabled {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) move(delta int) {
	next := v.selected + delta
	if next >= 0 && next < len(v.items) {
		v.selected = next
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Good Eyes Front Desk"))
	b.WriteString("\n\n")

	subtitle := "Patient, consumable and staff lookup"
	if v.user != "" {
		subtitle = "Signed in as " + v.user
	}
	b.WriteString(v.styles.Muted.Render(subtitle))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if item.disabled {
			style = v.styles.Muted
		}
		if i == v.selected {
			cursor = "> "
			style = v.styles.FocusedLabel
		}

		line := cursor + style.Render(item.Label)
		if item.disabled {
			line += v.styles.Muted.Render("  (not permitted)")
		} else if i == v.selected && item.Hint != "" {
			line += v.styles.Muted.Render("  " + item.Hint)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetUser sets the signed-in user shown under the title.
func (v *View) SetUser(name string) {
	v.user = name
}

// SetEnabled enables or disables the item that opens view.
func (v *View) SetEnabled(view messages.ViewType, enabled bool) {
	for i := range v.items {
		if !v.items[i].Quit && v.items[i].View == view {
			v.items[i].disabled = !enabled
		}
	}
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
