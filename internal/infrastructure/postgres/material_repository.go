package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/operia/stock-ajustes-api/internal/domain"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const columnasMaterial = `id, company_id, sku, name, description, created_at, updated_at`

// Create persiste un material nuevo.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materiales (` + columnasMaterial + `)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.CompanyID, m.SKU, m.Name, m.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// CreateBatch crea el lote completo de materiales dentro de una transacción.
// Si una inserción falla, se revierte todo el lote.
func (r *MaterialRepo) CreateBatch(ctx context.Context, materiales []*entity.Material) error {
	if len(materiales) == 0 {
		return nil
	}
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO materiales (` + columnasMaterial + `)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	for _, m := range materiales {
		if _, err := tx.Exec(ctx, query, m.ID, m.CompanyID, m.SKU, m.Name, m.Description); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("material %q: %w", m.Name, domain.ErrDuplicate)
			}
			return fmt.Errorf("create material %q: %w", m.Name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// GetByID obtiene un material por su ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + columnasMaterial + ` FROM materiales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCompanyAndSKU obtiene un material por SKU dentro de la empresa.
func (r *MaterialRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Material, error) {
	query := `SELECT ` + columnasMaterial + ` FROM materiales WHERE company_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, sku))
}

// ListByCompany lista materiales de la empresa, ordenados por nombre.
func (r *MaterialRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT ` + columnasMaterial + `
		FROM materiales WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materiales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.SKU, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// MapByCompany devuelve todos los materiales de la empresa indexados por ID.
func (r *MaterialRepo) MapByCompany(companyID string) (map[string]*entity.Material, error) {
	query := `SELECT ` + columnasMaterial + ` FROM materiales WHERE company_id = $1`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("map materiales: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.Material)
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.SKU, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out[m.ID] = &m
	}
	return out, rows.Err()
}

func (r *MaterialRepo) scanOne(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.CompanyID, &m.SKU, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}
