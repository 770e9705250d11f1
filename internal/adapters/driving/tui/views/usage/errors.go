package usage

import "errors"

// Error definitions for the usage form.
var (
	// ErrNoDirectory indicates that no directory service was provided.
	ErrNoDirectory = errors.New("directory service is required")

	// ErrNoConsumable indicates the form was submitted without an item.
	ErrNoConsumable = errors.New("choose a consumable item")

	// ErrInvalidQuantity indicates the quantity is not a positive number.
	ErrInvalidQuantity = errors.New("quantity must be a positive number")

	// ErrInsufficientStock indicates the quantity exceeds the item's stock.
	ErrInsufficientStock = errors.New("not enough stock")
)
