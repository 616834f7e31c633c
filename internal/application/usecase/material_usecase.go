package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/operia/stock-ajustes-api/internal/application/dto"
	"github.com/operia/stock-ajustes-api/internal/domain"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

// MaterialUseCase CRUD del registro de materiales.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create registra un material nuevo. El SKU es único por empresa si no es vacío.
func (uc *MaterialUseCase) Create(companyID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, err := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	material := &entity.Material{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material verificando que pertenezca a la empresa.
func (uc *MaterialUseCase) GetByID(companyID, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toMaterialResponse(material), nil
}

// List lista los materiales de la empresa con paginación.
func (uc *MaterialUseCase) List(companyID string, page dto.PageRequest) ([]*dto.MaterialResponse, error) {
	page.DefaultPage()
	materiales, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, 0, len(materiales))
	for _, m := range materiales {
		out = append(out, toMaterialResponse(m))
	}
	return out, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		SKU:         m.SKU,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
