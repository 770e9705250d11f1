package lookup

import (
	"strconv"
	"strings"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/pickers"
)

// Row is one labelled line of the detail pane.
type Row struct {
	Label string
	Value string

	// Warn highlights the value, e.g. stock below the reorder point.
	Warn bool
}

// DetailFunc describes a selected record for the detail pane.
type DetailFunc[T any] func(T) []Row

const notRecorded = "—"

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return notRecorded
	}
	return s
}

// PatientDetails describes a patient.
func PatientDetails(p domain.Patient) []Row {
	dob, age := notRecorded, notRecorded
	if p.DateOfBirth != nil {
		dob = p.DateOfBirth.Format("02/01/2006")
	}
	if p.AgeInYears != nil {
		age = strconv.Itoa(*p.AgeInYears)
	}

	return []Row{
		{Label: "Patient number", Value: orNone(p.PatientNumber)},
		{Label: "Name", Value: orNone(p.FullName())},
		{Label: "Gender", Value: orNone(p.Gender)},
		{Label: "Date of birth", Value: dob},
		{Label: "Age", Value: age},
		{Label: "Phone", Value: orNone(p.Phone)},
		{Label: "Alternative phone", Value: orNone(p.AlternativePhone)},
		{Label: "National ID", Value: orNone(p.NationalID)},
	}
}

// ConsumableDetails describes a consumable item.
func ConsumableDetails(c domain.ConsumableItem) []Row {
	status := "Active"
	if !c.IsActive {
		status = "Inactive"
	}
	stock := pickers.FormatQuantity(c.CurrentStock) + " " + c.UnitOfMeasure
	if c.NeedsReorder() {
		stock += " (reorder)"
	}

	return []Row{
		{Label: "Name", Value: orNone(c.Name)},
		{Label: "SKU", Value: orNone(c.SKU)},
		{Label: "Category", Value: orNone(c.CategoryName)},
		{Label: "Description", Value: orNone(c.Description)},
		{Label: "In stock", Value: strings.TrimSpace(stock), Warn: c.NeedsReorder()},
		{Label: "Reorder point", Value: pickers.FormatQuantity(c.ReorderPoint)},
		{Label: "Cost per unit", Value: pickers.FormatUGX(c.CostPerUnit)},
		{Label: "Status", Value: status, Warn: !c.IsActive},
	}
}

// StaffDetails describes a staff member.
func StaffDetails(s domain.StaffMember) []Row {
	return []Row{
		{Label: "Username", Value: orNone(s.Username)},
		{Label: "Email", Value: orNone(s.Email)},
		{Label: "Department", Value: orNone(s.DepartmentName)},
		{Label: "Roles", Value: orNone(strings.Join(s.RoleNames(), ", "))},
	}
}
