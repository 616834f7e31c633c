package repository

import "github.com/operia/stock-ajustes-api/internal/domain/entity"

// ProyectoRepository define el puerto del directorio de proyectos.
type ProyectoRepository interface {
	Create(proyecto *entity.Proyecto) error
	GetByID(id string) (*entity.Proyecto, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Proyecto, error)
}
