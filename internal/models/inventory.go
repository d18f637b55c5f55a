package models

import "time"

type InventoryItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  Decimal   `json:"quantity"`
	Unit      string    `json:"unit"`
	Supplier  string    `json:"supplier,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type CreateInventoryRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Quantity Decimal `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"omitempty,oneof=kg g l ml pcs boxes packs"`
	Supplier string  `json:"supplier,omitempty" validate:"omitempty,max=200"`
}

type UpdateInventoryRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Quantity *Decimal `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Unit     *string  `json:"unit,omitempty" validate:"omitempty,oneof=kg g l ml pcs boxes packs"`
	Supplier *string  `json:"supplier,omitempty" validate:"omitempty,max=200"`
}

type UpdateInventoryQuantityRequest struct {
	Quantity Decimal `json:"quantity" validate:"gte=0"`
}
