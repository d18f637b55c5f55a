package models

// AddCartItemRequest carries the food snapshot the view layer already has
// from the catalog; name and price are copied into the line item as-is and
// never re-synced with later catalog changes.
type AddCartItemRequest struct {
	FoodID   int64   `json:"food_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    Decimal `json:"price" validate:"gte=0"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity" validate:"omitempty,min=1"`
}

// Quantity is absolute, not additive. Zero or negative removes the line.
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}
