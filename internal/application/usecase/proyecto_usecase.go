package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/operia/stock-ajustes-api/internal/application/dto"
	"github.com/operia/stock-ajustes-api/internal/domain"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

// ProyectoUseCase CRUD del directorio de proyectos.
type ProyectoUseCase struct {
	repo repository.ProyectoRepository
}

// NewProyectoUseCase construye el caso de uso.
func NewProyectoUseCase(repo repository.ProyectoRepository) *ProyectoUseCase {
	return &ProyectoUseCase{repo: repo}
}

// Create registra un proyecto. El nombre reservado del bucket sin asignar no es un proyecto válido.
func (uc *ProyectoUseCase) Create(companyID string, in dto.CreateProyectoRequest) (*dto.ProyectoResponse, error) {
	if in.Name == "" || in.Name == entity.NombreSinAsignar {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	proyecto := &entity.Proyecto{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(proyecto); err != nil {
		return nil, err
	}
	return toProyectoResponse(proyecto), nil
}

// List lista los proyectos de la empresa con paginación.
func (uc *ProyectoUseCase) List(companyID string, page dto.PageRequest) ([]*dto.ProyectoResponse, error) {
	page.DefaultPage()
	proyectos, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProyectoResponse, 0, len(proyectos))
	for _, p := range proyectos {
		out = append(out, toProyectoResponse(p))
	}
	return out, nil
}

func toProyectoResponse(p *entity.Proyecto) *dto.ProyectoResponse {
	return &dto.ProyectoResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
