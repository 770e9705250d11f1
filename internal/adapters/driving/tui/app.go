package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/keymap"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/messages"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/styles"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/views/lookup"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/views/menu"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/views/usage"
	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/pickers"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView        *menu.View
	patientsView    *lookup.View[domain.Patient]
	consumablesView *lookup.View[domain.ConsumableItem]
	staffView       *lookup.View[domain.StaffMember]
	usageView       *usage.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where the help view returns to.
	previousView messages.ViewType

	// user is the signed-in user's display name, empty when signed out.
	user string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	debounce := ports.Settings.Get().Search.Debounce
	dir := ports.Directory

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		help:   help.New(),

		menuView: menu.NewView(s),
		patientsView: lookup.NewView(s, km, "Patient lookup",
			pickers.Patients(), dir.SearchPatients, lookup.PatientDetails, debounce),
		consumablesView: lookup.NewView(s, km, "Consumable lookup",
			pickers.Consumables(), dir.SearchConsumables, lookup.ConsumableDetails, debounce),
		staffView: lookup.NewView(s, km, "Staff lookup",
			pickers.Staff(), dir.SearchStaff, lookup.StaffDetails, debounce),
		usageView: usage.NewView(s, km, dir, debounce),

		currentView:  messages.ViewMenu,
		previousView: messages.ViewMenu,
	}
	a.applySettings(ports.Settings.Get())
	a.loadSession()
	return a, nil
}

// WithContext sets the context for the app and every backend call it makes.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.patientsView.WithContext(ctx)
	a.consumablesView.WithContext(ctx)
	a.staffView.WithContext(ctx)
	a.usageView.WithContext(ctx)
	return a
}

// loadSession shows the signed-in user and gates views by role.
func (a *App) loadSession() {
	a.user = ""
	if sess, err := a.ports.Auth.Session(); err == nil && sess != nil {
		a.user = sess.DisplayName()
	} else {
		logger.Debug("No session for TUI: %v", err)
	}

	perms := a.ports.Auth.Permissions()
	a.menuView.SetUser(a.user)
	a.menuView.SetEnabled(messages.ViewUsage, perms.CanRecordUsage())
	a.usageView.SetPermissions(perms)

	a.patientsView.SetUser(a.user)
	a.consumablesView.SetUser(a.user)
	a.staffView.SetUser(a.user)
	a.usageView.SetUser(a.user)
}

// applySettings pushes search tuning into every selector.
func (a *App) applySettings(s domain.Settings) {
	a.patientsView.SetMinQueryLength(s.Search.MinQueryLength)
	a.consumablesView.SetMinQueryLength(s.Search.MinQueryLength)
	a.staffView.SetMinQueryLength(s.Search.MinQueryLength)
	a.usageView.SetMinQueryLength(s.Search.MinQueryLength)

	a.patientsView.SetDebounce(s.Search.Debounce)
	a.consumablesView.SetDebounce(s.Search.Debounce)
	a.staffView.SetDebounce(s.Search.Debounce)
	a.usageView.SetDebounce(s.Search.Debounce)
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("Good Eyes Front Desk"),
		a.listenConfig(),
	)
}

// listenConfig waits for the next config file change.
func (a *App) listenConfig() tea.Cmd {
	changes := a.ports.ConfigChanges
	if changes == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			return messages.ConfigChanged{}
		case <-ctx.Done():
			return nil
		}
	}
}

// reloadSettings re-reads the config file off the update loop.
func (a *App) reloadSettings() tea.Cmd {
	settings := a.ports.Settings
	return func() tea.Msg {
		err := settings.Reload()
		return messages.SettingsApplied{Settings: settings.Get(), Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case tea.MouseMsg:
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ConfigChanged:
		logger.Info("Config file changed, reloading settings")
		return a, tea.Batch(a.reloadSettings(), a.listenConfig())

	case messages.SettingsApplied:
		if msg.Err != nil {
			logger.Warn("Keeping previous settings: %v", msg.Err)
			a.err = msg.Err
			return a, nil
		}
		a.applySettings(msg.Settings)
		return a, nil

	case messages.UsageRecorded:
		var cmd tea.Cmd
		a.usageView, cmd = a.usageView.Update(msg)
		if msg.Err != nil {
			logger.Warn("Recording usage failed: %v", msg.Err)
		} else {
			logger.Info("Recorded usage of item %d", msg.Usage.ConsumableItemID)
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Error("%v", msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Search timers, results, spinner ticks and cursor blinks are addressed
	// to a single field, so every view may see them.
	var cmds [4]tea.Cmd
	a.patientsView, cmds[0] = a.patientsView.Update(msg)
	a.consumablesView, cmds[1] = a.consumablesView.Update(msg)
	a.staffView, cmds[2] = a.staffView.Update(msg)
	a.usageView, cmds[3] = a.usageView.Update(msg)
	return a, tea.Batch(cmds[:]...)
}

// updateCurrent routes input to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewPatients:
		a.patientsView, cmd = a.patientsView.Update(msg)
	case messages.ViewConsumables:
		a.consumablesView, cmd = a.consumablesView.Update(msg)
	case messages.ViewStaff:
		a.staffView, cmd = a.staffView.Update(msg)
	case messages.ViewUsage:
		a.usageView, cmd = a.usageView.Update(msg)
	case messages.ViewHelp:
		if km, ok := msg.(tea.KeyMsg); ok &&
			(key.Matches(km, a.keymap.Back) || key.Matches(km, a.keymap.Help)) {
			a.currentView = a.previousView
		}
	}
	return cmd
}

// switchTo activates view. Lookups start empty each time they are opened
// from the menu; the usage form keeps a half-filled entry.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	from := a.currentView
	if view == messages.ViewHelp {
		a.previousView = from
	}
	a.currentView = view

	if from == messages.ViewHelp {
		return nil
	}

	switch view {
	case messages.ViewPatients:
		a.patientsView.Reset()
		return a.patientsView.Init()
	case messages.ViewConsumables:
		a.consumablesView.Reset()
		return a.consumablesView.Init()
	case messages.ViewStaff:
		a.staffView.Reset()
		return a.staffView.Init()
	case messages.ViewUsage:
		return a.usageView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPatients:
		return a.patientsView.View()
	case messages.ViewConsumables:
		return a.consumablesView.View()
	case messages.ViewStaff:
		return a.staffView.View()
	case messages.ViewUsage:
		return a.usageView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the key bindings.
func (a *App) viewHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Help"),
		"",
		a.help.FullHelpView(a.keymap.FullHelp()),
		"",
		a.styles.Muted.Render("Type at least two characters in a selector to search. "+
			"Enter picks the highlighted match, ctrl+u clears."),
		"",
		a.styles.Help.Render("[esc] back"),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	)
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// User returns the signed-in user's display name.
func (a *App) User() string {
	return a.user
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width

	a.menuView.SetDimensions(width, height)
	a.patientsView.SetDimensions(width, height)
	a.consumablesView.SetDimensions(width, height)
	a.staffView.SetDimensions(width, height)
	a.usageView.SetDimensions(width, height)
}

// Patients returns the patient lookup view.
func (a *App) Patients() *lookup.View[domain.Patient] {
	return a.patientsView
}

// Consumables returns the consumable lookup view.
func (a *App) Consumables() *lookup.View[domain.ConsumableItem] {
	return a.consumablesView
}

// Staff returns the staff lookup view.
func (a *App) Staff() *lookup.View[domain.StaffMember] {
	return a.staffView
}

// Usage returns the record usage form.
func (a *App) Usage() *usage.View {
	return a.usageView
}

// Menu returns the main menu.
func (a *App) Menu() *menu.View {
	return a.menuView
}
