package repository

import "github.com/operia/stock-ajustes-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por material+proyecto.
// ProyectoID nil direcciona el bucket "sin asignar". Usado dentro de transacciones
// para garantizar consistencia al aplicar lotes de ajuste.
type StockRepository interface {
	Get(materialID string, proyectoID *string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(materialID string, proyectoID *string) (*entity.Stock, error)
	// ListSaldosByCompany devuelve todos los saldos de la empresa con nombres resueltos
	// (base del snapshot y del export).
	ListSaldosByCompany(companyID string) ([]*entity.SaldoStock, error)
}
