package repository

import "github.com/operia/stock-ajustes-api/internal/domain/entity"

// MovimientoRepository define el puerto del libro de movimientos.
type MovimientoRepository interface {
	Create(movimiento *entity.Movimiento) error
	ListByTransaction(companyID, transactionID string) ([]*entity.Movimiento, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Movimiento, error)
}
