package entity

import "time"

// Material representa un material del inventario (registro maestro, multi-proyecto).
// El stock se maneja por proyecto en Stock; un material recién creado inicia con stock 0.
type Material struct {
	ID          string
	CompanyID   string
	SKU         string // código por empresa, opcional en materiales creados desde planilla
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
