package dto

import "time"

// CreateMaterialRequest body para POST /api/materiales.
type CreateMaterialRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MaterialResponse material del registro.
type MaterialResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
