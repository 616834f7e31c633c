package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const columnasMovimiento = `id, transaction_id, company_id, material_id, material_nombre, proyecto_id, tipo, direccion, cantidad, observacion, date, created_at, created_by`

// Create persiste un movimiento del libro.
func (r *MovimientoRepo) Create(m *entity.Movimiento) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos (` + columnasMovimiento + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TransactionID, m.CompanyID, m.MaterialID, m.NombreMaterial, m.ProyectoID,
		m.Tipo, m.Direccion, m.Cantidad, m.Observacion, m.Date, m.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// ListByTransaction lista los movimientos de un lote (transaction_id) de la empresa.
func (r *MovimientoRepo) ListByTransaction(companyID, transactionID string) ([]*entity.Movimiento, error) {
	query := `
		SELECT ` + columnasMovimiento + `
		FROM movimientos WHERE company_id = $1 AND transaction_id = $2
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, companyID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list by transaction: %w", err)
	}
	defer rows.Close()
	return scanMovimientos(rows)
}

// ListByCompany lista movimientos de la empresa, más recientes primero.
func (r *MovimientoRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Movimiento, error) {
	query := `
		SELECT ` + columnasMovimiento + `
		FROM movimientos WHERE company_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by company: %w", err)
	}
	defer rows.Close()
	return scanMovimientos(rows)
}

func scanMovimientos(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.Movimiento, error) {
	var list []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.CompanyID, &m.MaterialID, &m.NombreMaterial,
			&m.ProyectoID, &m.Tipo, &m.Direccion, &m.Cantidad, &m.Observacion,
			&m.Date, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
