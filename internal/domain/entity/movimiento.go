package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoTipoAJUSTE = "AJUSTE" // generado por conciliación de planilla
	MovimientoTipoIN     = "IN"     // entrada directa
	MovimientoTipoOUT    = "OUT"    // salida directa
)

// Dirección de un movimiento de ajuste.
const (
	DireccionINGRESO = "INGRESO" // cantidad declarada > cantidad en sistema
	DireccionEGRESO  = "EGRESO"  // cantidad declarada < cantidad en sistema
)

// Movimiento representa un movimiento de stock registrado en el libro.
// Para ajustes, Cantidad es siempre positiva y Direccion indica el signo;
// Observacion conserva los valores sistema/planilla/delta para auditoría.
type Movimiento struct {
	ID             string
	TransactionID  string // agrupa los movimientos de un mismo lote de ajuste
	CompanyID      string
	MaterialID     *string // nil cuando la fila se procesó solo por nombre
	NombreMaterial string
	ProyectoID     *string // nil = sin asignar
	Tipo           string  // AJUSTE, IN, OUT
	Direccion      string  // INGRESO, EGRESO
	Cantidad       decimal.Decimal
	Observacion    string
	Date           time.Time
	CreatedAt      time.Time
	CreatedBy      string // UserID
}
