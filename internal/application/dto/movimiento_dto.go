package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovimientoResponse movimiento del libro, para listados de auditoría.
type MovimientoResponse struct {
	ID             string          `json:"id"`
	TransactionID  string          `json:"transaction_id"`
	MaterialID     *string         `json:"material_id"`
	NombreMaterial string          `json:"material"`
	ProyectoID     *string         `json:"proyecto_id"`
	Tipo           string          `json:"tipo"`
	Direccion      string          `json:"direccion,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Observacion    string          `json:"observacion,omitempty"`
	Date           time.Time       `json:"date"`
	CreatedBy      string          `json:"created_by,omitempty"`
}
