package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el stock actual de un material en un proyecto (tabla materializada).
// ProyectoID nil es el bucket "sin asignar".
type Stock struct {
	MaterialID string
	ProyectoID *string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}

// SaldoStock es el modelo de lectura para el export: un saldo por (material, proyecto)
// con los nombres ya resueltos.
type SaldoStock struct {
	MaterialID     string
	SKU            string
	Nombre         string
	Descripcion    string
	ProyectoID     *string
	NombreProyecto string // vacío cuando ProyectoID es nil
	Cantidad       decimal.Decimal
}
