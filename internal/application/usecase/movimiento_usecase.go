package usecase

import (
	"context"
	"time"

	"github.com/operia/stock-ajustes-api/internal/application/dto"
	"github.com/operia/stock-ajustes-api/internal/domain"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

// ActaAjuste son los datos para la representación PDF de un lote de ajuste.
type ActaAjuste struct {
	TransactionID string
	CompanyID     string
	Fecha         time.Time
	Usuario       string
	Movimientos   []*entity.Movimiento
}

// ActaPDFGenerator genera el acta de ajuste (PDF) de un lote registrado.
type ActaPDFGenerator interface {
	GenerarActa(ctx context.Context, acta ActaAjuste) ([]byte, error)
}

// MovimientoUseCase consultas de auditoría sobre el libro de movimientos.
type MovimientoUseCase struct {
	repo repository.MovimientoRepository
	pdf  ActaPDFGenerator
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(repo repository.MovimientoRepository, pdf ActaPDFGenerator) *MovimientoUseCase {
	return &MovimientoUseCase{repo: repo, pdf: pdf}
}

// Listar lista movimientos de la empresa; con transactionID filtra un lote concreto.
func (uc *MovimientoUseCase) Listar(companyID, transactionID string, page dto.PageRequest) ([]*dto.MovimientoResponse, error) {
	var movimientos []*entity.Movimiento
	var err error
	if transactionID != "" {
		movimientos, err = uc.repo.ListByTransaction(companyID, transactionID)
	} else {
		page.DefaultPage()
		movimientos, err = uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		out = append(out, toMovimientoResponse(m))
	}
	return out, nil
}

// GenerarActa arma el acta PDF del lote de ajuste identificado por transactionID.
func (uc *MovimientoUseCase) GenerarActa(ctx context.Context, companyID, transactionID string) ([]byte, error) {
	movimientos, err := uc.repo.ListByTransaction(companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if len(movimientos) == 0 {
		return nil, domain.ErrNotFound
	}
	acta := ActaAjuste{
		TransactionID: transactionID,
		CompanyID:     companyID,
		Fecha:         movimientos[0].Date,
		Usuario:       movimientos[0].CreatedBy,
		Movimientos:   movimientos,
	}
	return uc.pdf.GenerarActa(ctx, acta)
}

func toMovimientoResponse(m *entity.Movimiento) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:             m.ID,
		TransactionID:  m.TransactionID,
		MaterialID:     m.MaterialID,
		NombreMaterial: m.NombreMaterial,
		ProyectoID:     m.ProyectoID,
		Tipo:           m.Tipo,
		Direccion:      m.Direccion,
		Cantidad:       m.Cantidad,
		Observacion:    m.Observacion,
		Date:           m.Date,
		CreatedBy:      m.CreatedBy,
	}
}
