package domain

// ConsumableItem is a stocked consumable tracked by the inventory module.
type ConsumableItem struct {
	ID          int64
	Name        string
	SKU         string
	Description string

	// CategoryName is denormalised from the item's category.
	CategoryName string

	// UnitOfMeasure is the stock unit (e.g. "bottle", "piece").
	UnitOfMeasure string

	CurrentStock float64
	ReorderPoint float64

	// CostPerUnit is in Uganda shillings.
	CostPerUnit float64

	IsActive bool
}

// NeedsReorder reports whether stock is at or below the reorder point.
// Items without a reorder point never need reordering.
func (c *ConsumableItem) NeedsReorder() bool {
	return c.ReorderPoint > 0 && c.CurrentStock <= c.ReorderPoint
}

// ConsumableUsage records consumption of a consumable item, optionally
// against a patient.
type ConsumableUsage struct {
	ConsumableItemID int64
	QuantityUsed     float64

	// PatientID is zero when usage is not tied to a patient.
	PatientID int64

	Purpose string
	Notes   string
}

// Validate checks the usage has an item and a positive quantity.
func (u *ConsumableUsage) Validate() error {
	if u.ConsumableItemID <= 0 {
		return ErrInvalidInput
	}
	if u.QuantityUsed <= 0 {
		return ErrInvalidInput
	}
	return nil
}
