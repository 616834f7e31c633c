package dto

import "time"

// CreateProyectoRequest body para POST /api/proyectos.
type CreateProyectoRequest struct {
	Name string `json:"name"`
}

// ProyectoResponse proyecto del directorio.
type ProyectoResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
