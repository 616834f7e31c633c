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

var _ repository.ProyectoRepository = (*ProyectoRepo)(nil)

// ProyectoRepo implementación de ProyectoRepository sobre PostgreSQL.
type ProyectoRepo struct {
	q Querier
}

// NewProyectoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProyectoRepository(q Querier) *ProyectoRepo {
	return &ProyectoRepo{q: q}
}

// Create persiste un proyecto nuevo. El nombre es único por empresa.
func (r *ProyectoRepo) Create(p *entity.Proyecto) error {
	query := `
		INSERT INTO proyectos (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.CompanyID, p.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create proyecto: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por su ID.
func (r *ProyectoRepo) GetByID(id string) (*entity.Proyecto, error) {
	query := `SELECT id, company_id, name, created_at, updated_at FROM proyectos WHERE id = $1`
	var p entity.Proyecto
	err := r.q.QueryRow(context.Background(), query, id).Scan(&p.ID, &p.CompanyID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get proyecto: %w", err)
	}
	return &p, nil
}

// ListByCompany lista proyectos de la empresa, ordenados por nombre.
func (r *ProyectoRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Proyecto, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM proyectos WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proyectos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proyecto
	for rows.Next() {
		var p entity.Proyecto
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proyecto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
