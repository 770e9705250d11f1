package pickers

import (
	"fmt"
	"strconv"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/selector"
)

// Consumables returns the consumable item selector strategy.
func Consumables() selector.Strategy[domain.ConsumableItem] {
	name := selector.StringField("name", func(c domain.ConsumableItem) string { return c.Name })
	return selector.Strategy[domain.ConsumableItem]{
		Label:       "Consumable Item",
		Placeholder: "Search for consumable items by name, SKU, or description...",
		Config: selector.Config[domain.ConsumableItem]{
			Fields: []selector.Field[domain.ConsumableItem]{
				name,
				selector.StringField("sku", func(c domain.ConsumableItem) string { return c.SKU }),
				selector.StringField("description", func(c domain.ConsumableItem) string { return c.Description }),
				selector.StringField("categoryName", func(c domain.ConsumableItem) string { return c.CategoryName }),
			},
			MinQueryLength:   selector.DefaultMinQueryLength,
			Display:          name,
			NoResultsMessage: "No consumable items found",
		},
		Renderer: selector.Renderer[domain.ConsumableItem]{
			Candidate: consumableLines,
			Selected:  consumableSelected,
		},
	}
}

func consumableLines(c domain.ConsumableItem) []string {
	return []string{
		c.Name,
		fmt.Sprintf("SKU: %s • Stock: %s %s", c.SKU, FormatQuantity(c.CurrentStock), c.UnitOfMeasure),
		fmt.Sprintf("%s • %s per %s", c.CategoryName, FormatUGX(c.CostPerUnit), c.UnitOfMeasure),
	}
}

func consumableSelected(c domain.ConsumableItem) string {
	return fmt.Sprintf("%s (%s)", c.Name, c.SKU)
}

// FormatQuantity renders a stock quantity without trailing zeros.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
