package entity

import "time"

// NombreSinAsignar es el rótulo reservado del bucket "sin proyecto" en las planillas.
// Dentro del sistema ese bucket se modela como ProyectoID == nil; el literal solo
// existe en la frontera de import/export.
const NombreSinAsignar = "Sin asignar"

// Proyecto representa un proyecto al que se atribuye stock (obra, faena, contrato).
type Proyecto struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
