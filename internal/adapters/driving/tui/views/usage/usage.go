// Package usage provides the consumable usage form for the TUI.
package usage

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/components/status"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/keymap"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/messages"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/styles"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/views/lookup"
	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/pickers"
	"github.com/goodeyes/frontdesk/internal/core/ports/driving"
	"github.com/goodeyes/frontdesk/internal/core/selector"
)

// Form fields in tab order. focusNone means nothing has focus.
const (
	focusNone = iota - 1
	focusPatient
	focusConsumable
	focusQuantity
	focusPurpose
	focusSubmit
	focusCount
)

// View represents the record usage form.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	directory driving.DirectoryService
	ctx       context.Context

	patient    *lookup.Field[domain.Patient]
	consumable *lookup.Field[domain.ConsumableItem]
	quantity   textinput.Model
	purpose    textinput.Model

	focus      int
	canRecord  bool
	submitting bool
	formErr    error
	notice     string

	width  int
	height int
	ready  bool
}

// NewView creates a new usage form.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	directory driving.DirectoryService,
	debounce time.Duration,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	var searchPatients lookup.SearchFunc[domain.Patient]
	var searchConsumables lookup.SearchFunc[domain.ConsumableItem]
	if directory != nil {
		searchPatients = directory.SearchPatients
		searchConsumables = directory.SearchConsumables
	}

	quantity := textinput.New()
	quantity.Placeholder = "1"
	quantity.Prompt = "› "
	quantity.CharLimit = 12
	quantity.Width = 12

	purpose := textinput.New()
	purpose.Placeholder = "e.g. dressing after minor surgery"
	purpose.Prompt = "› "
	purpose.CharLimit = 200

	v := &View{
		styles:     s,
		keymap:     km,
		statusbar:  status.NewBar(s, km),
		directory:  directory,
		ctx:        context.Background(),
		patient:    lookup.NewField(pickers.Patients(), searchPatients, debounce, s, km),
		consumable: lookup.NewField(pickers.Consumables(), searchConsumables, debounce, s, km),
		quantity:   quantity,
		purpose:    purpose,
		focus:      focusNone,
		canRecord:  true,
		width:      80,
		height:     24,
	}
	v.layout()
	v.syncStatus()
	return v
}

// WithContext sets the context for searches and submissions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	v.patient.WithContext(ctx)
	v.consumable.WithContext(ctx)
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	if !v.canRecord {
		return nil
	}
	cmd := v.setFocus(focusPatient)
	v.finish()
	return cmd
}

// Update handles messages for the usage form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		cmd = v.handleKey(msg)

	case tea.MouseMsg:
		cmd = v.handleMouse(msg)

	case messages.UsageRecorded:
		cmd = v.handleRecorded(msg)

	default:
		var cmds [4]tea.Cmd
		_, cmds[0] = v.patient.Update(msg)
		_, cmds[1] = v.consumable.Update(msg)
		v.quantity, cmds[2] = v.quantity.Update(msg)
		v.purpose, cmds[3] = v.purpose.Update(msg)
		cmd = tea.Batch(cmds[:]...)
	}

	v.finish()
	return v, cmd
}

// finish recomputes mouse origins and the status bar after any change.
func (v *View) finish() {
	v.layout()
	v.syncStatus()
}

//nolint:gocyclo // one branch per focused field
func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !v.canRecord {
		switch {
		case key.Matches(msg, v.keymap.Back):
			return changeView(messages.ViewMenu)
		case key.Matches(msg, v.keymap.Help):
			return changeView(messages.ViewHelp)
		}
		return nil
	}

	// The form is read-only until the save finishes.
	if v.submitting {
		if key.Matches(msg, v.keymap.Back) {
			return changeView(messages.ViewMenu)
		}
		return nil
	}

	v.notice = ""

	switch {
	case key.Matches(msg, v.keymap.NextField):
		return v.setFocus((v.focus + 1) % focusCount)
	case key.Matches(msg, v.keymap.PrevField):
		if v.focus <= focusPatient {
			return v.setFocus(focusCount - 1)
		}
		return v.setFocus(v.focus - 1)
	}

	switch v.focus {
	case focusPatient:
		effects, cmd := v.patient.Update(msg)
		return v.afterField(v.patient.Focused(), hasSelect(effects), cmd)

	case focusConsumable:
		effects, cmd := v.consumable.Update(msg)
		return v.afterField(v.consumable.Focused(), hasSelect(effects), cmd)

	case focusQuantity, focusPurpose:
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v.setFocus(focusNone)
		case key.Matches(msg, v.keymap.Select):
			return v.setFocus(v.focus + 1)
		}
		var cmd tea.Cmd
		if v.focus == focusQuantity {
			v.quantity, cmd = v.quantity.Update(msg)
		} else {
			v.purpose, cmd = v.purpose.Update(msg)
		}
		v.formErr = nil
		return cmd

	case focusSubmit:
		switch {
		case key.Matches(msg, v.keymap.Select):
			return v.submit()
		case key.Matches(msg, v.keymap.Back):
			return v.setFocus(focusNone)
		}
		return nil
	}

	// Nothing focused.
	switch {
	case key.Matches(msg, v.keymap.Back):
		v.stopSearches()
		return changeView(messages.ViewMenu)
	case key.Matches(msg, v.keymap.Help):
		return changeView(messages.ViewHelp)
	case key.Matches(msg, v.keymap.Focus), key.Matches(msg, v.keymap.Select):
		return v.setFocus(focusPatient)
	}
	return nil
}

// afterField moves focus on after a selection, or drops it when the
// selector blurred itself.
func (v *View) afterField(focused, selected bool, cmd tea.Cmd) tea.Cmd {
	v.formErr = nil
	switch {
	case selected:
		return tea.Batch(cmd, v.setFocus(v.focus+1))
	case !focused:
		v.focus = focusNone
	}
	return cmd
}

// handleMouse lets both selectors hit-test the click, then moves form focus
// to whichever one took it.
func (v *View) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if v.submitting {
		return nil
	}
	wasPatient, wasConsumable := v.patient.Focused(), v.consumable.Focused()

	pe, pcmd := v.patient.Update(msg)
	ce, ccmd := v.consumable.Update(msg)
	cmd := tea.Batch(pcmd, ccmd)

	switch {
	case hasSelect(pe):
		return tea.Batch(cmd, v.setFocus(focusConsumable))
	case hasSelect(ce):
		return tea.Batch(cmd, v.setFocus(focusQuantity))
	case v.patient.Focused() && !wasPatient:
		return tea.Batch(cmd, v.setFocus(focusPatient))
	case v.consumable.Focused() && !wasConsumable:
		return tea.Batch(cmd, v.setFocus(focusConsumable))
	}
	return cmd
}

func (v *View) setFocus(i int) tea.Cmd {
	v.patient.Blur()
	v.consumable.Blur()
	v.quantity.Blur()
	v.purpose.Blur()

	v.focus = i
	switch i {
	case focusPatient:
		return v.patient.Focus()
	case focusConsumable:
		return v.consumable.Focus()
	case focusQuantity:
		return v.quantity.Focus()
	case focusPurpose:
		return v.purpose.Focus()
	}
	return nil
}

// buildUsage validates the form.
func (v *View) buildUsage() (domain.ConsumableUsage, error) {
	if !v.canRecord {
		return domain.ConsumableUsage{}, domain.ErrForbidden
	}

	item, ok := v.consumable.Selected()
	if !ok {
		return domain.ConsumableUsage{}, ErrNoConsumable
	}

	raw := strings.TrimSpace(v.quantity.Value())
	if raw == "" {
		raw = v.quantity.Placeholder
	}
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil || qty <= 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return domain.ConsumableUsage{}, ErrInvalidQuantity
	}
	if qty > item.CurrentStock {
		return domain.ConsumableUsage{}, fmt.Errorf("%w: only %s %s of %s left",
			ErrInsufficientStock, pickers.FormatQuantity(item.CurrentStock), item.UnitOfMeasure, item.Name)
	}

	usage := domain.ConsumableUsage{
		ConsumableItemID: item.ID,
		QuantityUsed:     qty,
		Purpose:          strings.TrimSpace(v.purpose.Value()),
	}
	if p, ok := v.patient.Selected(); ok {
		usage.PatientID = p.ID
	}
	return usage, nil
}

func (v *View) submit() tea.Cmd {
	if v.submitting {
		return nil
	}

	usage, err := v.buildUsage()
	if err != nil {
		v.formErr = err
		return nil
	}

	v.formErr = nil
	v.submitting = true
	v.stopSearches()

	done := messages.UsageRecorded{Usage: usage}
	done.Item, _ = v.consumable.Selected()
	if p, ok := v.patient.Selected(); ok {
		done.Patient = &p
	}

	directory, ctx := v.directory, v.ctx
	return func() tea.Msg {
		if directory == nil {
			done.Err = ErrNoDirectory
			return done
		}
		done.Err = directory.RecordUsage(ctx, usage)
		return done
	}
}

func (v *View) handleRecorded(msg messages.UsageRecorded) tea.Cmd {
	v.submitting = false
	if msg.Err != nil {
		v.formErr = msg.Err
		return nil
	}

	notice := fmt.Sprintf("Recorded %s %s of %s",
		pickers.FormatQuantity(msg.Usage.QuantityUsed), msg.Item.UnitOfMeasure, msg.Item.Name)
	if msg.Patient != nil {
		notice += " for " + msg.Patient.FullName()
	}

	v.Reset()
	v.notice = notice
	return v.setFocus(focusPatient)
}

func (v *View) stopSearches() {
	v.patient.Stop()
	v.consumable.Stop()
}

// syncStatus derives the status bar from the form.
func (v *View) syncStatus() {
	v.statusbar.Clear()
	switch {
	case v.submitting:
		v.statusbar.SetState(status.StateBusy)
		v.statusbar.SetMessage("Saving...")
	case v.formErr != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(lookup.DescribeError(v.formErr))
	case v.patient.Err() != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(lookup.DescribeError(v.patient.Err()))
	case v.consumable.Err() != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(lookup.DescribeError(v.consumable.Err()))
	case v.patient.Loading() || v.consumable.Loading():
		v.statusbar.SetState(status.StateSearching)
	case v.notice != "":
		v.statusbar.SetState(status.StateSaved)
		v.statusbar.SetMessage(v.notice)
	}

	switch v.focus {
	case focusPatient, focusConsumable:
		v.statusbar.SetHints(append([]key.Binding{v.keymap.NextField}, v.keymap.SelectorHelp()...))
	case focusNone:
		v.statusbar.SetHints(nil)
	default:
		v.statusbar.SetHints(v.keymap.FormHelp())
	}
}

// headerHeight is the number of lines above the patient selector.
func (v *View) headerHeight() int {
	if v.canRecord {
		return 2
	}
	return 4
}

// layout records where each selector is drawn so clicks land on the right
// rows. It must follow the section order of View.
func (v *View) layout() {
	y := v.headerHeight()
	v.patient.SetOrigin(0, y)
	y += v.patient.Height() + 1
	v.consumable.SetOrigin(0, y)
}

// View renders the usage form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 16)
	sections = append(sections, v.styles.Title.Render("Record consumable usage"), "")
	if !v.canRecord {
		sections = append(sections,
			v.styles.Warning.Render("Your role cannot record usage. Ask a doctor, receptionist or administrator."), "")
	}

	sections = append(sections, v.patient.View(), "", v.consumable.View(), "")

	unit := "Quantity"
	if item, ok := v.consumable.Selected(); ok && item.UnitOfMeasure != "" {
		unit = fmt.Sprintf("Quantity (%s, %s in stock)", item.UnitOfMeasure, pickers.FormatQuantity(item.CurrentStock))
	}
	sections = append(sections,
		v.label(unit, focusQuantity), v.quantity.View(), "",
		v.label("Purpose (optional)", focusPurpose), v.purpose.View(), "",
		v.button(), "",
	)

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) label(text string, field int) string {
	if v.focus == field {
		return v.styles.FocusedLabel.Render(text)
	}
	return v.styles.Label.Render(text)
}

func (v *View) button() string {
	text := "Record usage"
	if v.submitting {
		text = "Saving..."
	}
	if v.focus == focusSubmit {
		return v.styles.FocusedButton.Render(text)
	}
	return v.styles.Button.Render(text)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	fieldWidth := min(width, 100)
	v.patient.SetWidth(fieldWidth)
	v.consumable.SetWidth(fieldWidth)
	v.purpose.Width = max(fieldWidth-4, 10)
	v.statusbar.SetWidth(width)
	v.layout()
}

// SetPermissions enables the form only for roles that may record usage.
func (v *View) SetPermissions(p domain.Permissions) {
	v.canRecord = p.CanRecordUsage()
	v.patient.SetDisabled(!v.canRecord)
	v.consumable.SetDisabled(!v.canRecord)
	if !v.canRecord {
		v.setFocus(focusNone)
	}
	v.finish()
}

// SetMinQueryLength changes how many characters trigger a search.
func (v *View) SetMinQueryLength(n int) {
	v.patient.SetMinQueryLength(n)
	v.consumable.SetMinQueryLength(n)
}

// SetDebounce changes the quiet window before a search runs.
func (v *View) SetDebounce(window time.Duration) {
	v.patient.SetDebounce(window)
	v.consumable.SetDebounce(window)
}

// SetUser sets the signed-in user shown in the status bar.
func (v *View) SetUser(name string) {
	v.statusbar.SetUser(name)
}

// Reset clears every field.
func (v *View) Reset() {
	v.patient.Reset()
	v.consumable.Reset()
	v.quantity.SetValue("")
	v.purpose.SetValue("")
	v.setFocus(focusNone)
	v.submitting = false
	v.formErr = nil
	v.notice = ""
	v.finish()
}

// Patient returns the patient selector.
func (v *View) Patient() *lookup.Field[domain.Patient] {
	return v.patient
}

// Consumable returns the consumable selector.
func (v *View) Consumable() *lookup.Field[domain.ConsumableItem] {
	return v.consumable
}

// Status returns the form's status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Err returns the last validation or submission error.
func (v *View) Err() error {
	return v.formErr
}

// CanRecord reports whether the form accepts input.
func (v *View) CanRecord() bool {
	return v.canRecord
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

func hasSelect[T any](effects []selector.Effect[T]) bool {
	for _, e := range effects {
		if e.Kind == selector.EffectSelect {
			return true
		}
	}
	return false
}
