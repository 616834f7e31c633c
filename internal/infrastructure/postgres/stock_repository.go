package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// proyecto_id NULL es el bucket "sin asignar"; la tabla tiene unique
// (material_id, proyecto_id) NULLS NOT DISTINCT para que el upsert lo cubra.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un material en un proyecto (o en el bucket sin asignar).
func (r *StockRepo) Get(materialID string, proyectoID *string) (*entity.Stock, error) {
	query := `
		SELECT material_id, proyecto_id, quantity, updated_at
		FROM stock WHERE material_id = $1 AND proyecto_id IS NOT DISTINCT FROM $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, materialID, proyectoID).Scan(
		&s.MaterialID, &s.ProyectoID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{MaterialID: materialID, ProyectoID: proyectoID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por material y proyecto).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (material_id, proyecto_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (material_id, proyecto_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.MaterialID, stock.ProyectoID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(materialID string, proyectoID *string) (*entity.Stock, error) {
	query := `
		SELECT material_id, proyecto_id, quantity, updated_at
		FROM stock WHERE material_id = $1 AND proyecto_id IS NOT DISTINCT FROM $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, materialID, proyectoID).Scan(
		&s.MaterialID, &s.ProyectoID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{MaterialID: materialID, ProyectoID: proyectoID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ListSaldosByCompany devuelve los saldos de la empresa con nombres de material y
// proyecto resueltos (base del snapshot de conciliación y del export).
func (r *StockRepo) ListSaldosByCompany(companyID string) ([]*entity.SaldoStock, error) {
	query := `
		SELECT s.material_id, m.sku, m.name, m.description, s.proyecto_id, COALESCE(p.name, ''), s.quantity
		FROM stock s
		JOIN materiales m ON m.id = s.material_id
		LEFT JOIN proyectos p ON p.id = s.proyecto_id
		WHERE m.company_id = $1
		ORDER BY m.name, p.name NULLS FIRST`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list saldos: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaldoStock
	for rows.Next() {
		var s entity.SaldoStock
		if err := rows.Scan(&s.MaterialID, &s.SKU, &s.Nombre, &s.Descripcion, &s.ProyectoID, &s.NombreProyecto, &s.Cantidad); err != nil {
			return nil, fmt.Errorf("scan saldo: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
