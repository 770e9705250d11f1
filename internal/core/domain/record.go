package domain

import (
	"fmt"
	"time"
)

// RecordKind identifies a family of lookup records.
type RecordKind string

// Record kinds served by the directory.
const (
	RecordKindPatient    RecordKind = "patients"
	RecordKindConsumable RecordKind = "consumables"
	RecordKindStaff      RecordKind = "staff"
)

// RecordKinds lists every kind in display order.
func RecordKinds() []RecordKind {
	return []RecordKind{RecordKindPatient, RecordKindConsumable, RecordKindStaff}
}

// ParseRecordKind accepts the kind name or its singular form.
func ParseRecordKind(s string) (RecordKind, error) {
	switch s {
	case "patients", "patient":
		return RecordKindPatient, nil
	case "consumables", "consumable":
		return RecordKindConsumable, nil
	case "staff", "personnel":
		return RecordKindStaff, nil
	default:
		return "", fmt.Errorf("%w: record kind %q", ErrUnsupportedType, s)
	}
}

// String returns the kind name.
func (k RecordKind) String() string {
	return string(k)
}

// CacheStats summarises the local record cache for one kind.
type CacheStats struct {
	Kind     RecordKind
	Count    int
	LastSync time.Time
}
