package repository

import (
	"context"

	"github.com/operia/stock-ajustes-api/internal/domain/entity"
)

// MaterialRepository define el puerto del registro de materiales.
// CreateBatch es todo-o-nada: si falla la creación de un material del lote,
// ninguno queda persistido (lo garantiza el adaptador vía transacción).
type MaterialRepository interface {
	Create(material *entity.Material) error
	CreateBatch(ctx context.Context, materiales []*entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Material, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Material, error)
	// MapByCompany devuelve todos los materiales de la empresa indexados por ID,
	// para validar referencias de la planilla sin N consultas.
	MapByCompany(companyID string) (map[string]*entity.Material, error)
}
