package models

type Food struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       Decimal `json:"price"`
	Stock       int64   `json:"stock"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Restaurant  *int64  `json:"restaurant,omitempty"`
	Available   bool    `json:"available"`
}

type CreateFoodRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description,omitempty"`
	Price       Decimal `json:"price" validate:"required,gt=0"`
	Stock       int64   `json:"stock" validate:"gte=0"`
	Category    string  `json:"category" validate:"omitempty,oneof=Main Appetizer Dessert Drink Side"`
	Available   *bool   `json:"available,omitempty"`
}

type UpdateFoodRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string  `json:"description,omitempty"`
	Price       *Decimal `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int64   `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,oneof=Main Appetizer Dessert Drink Side"`
	Available   *bool    `json:"available,omitempty"`
}
