package ajuste

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/operia/stock-ajustes-api/internal/domain"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

// Política aplicada a las filas sin identificador de material. Es una decisión
// de lote, no por fila: el usuario ve todas las filas nuevas y elige una sola vez.
type Politica string

const (
	// PoliticaCrearMateriales crea los materiales nuevos en el registro y adopta sus IDs.
	PoliticaCrearMateriales Politica = "crear"
	// PoliticaSoloNombre procesa las filas nuevas solo por nombre, sin crear materiales.
	PoliticaSoloNombre Politica = "solo_nombre"
)

// Resolver resuelve las filas sin identificador según la política elegida.
type Resolver struct {
	materiales repository.MaterialRepository
}

// NewResolver construye el resolver sobre el registro de materiales.
func NewResolver(materiales repository.MaterialRepository) *Resolver {
	return &Resolver{materiales: materiales}
}

// Resolver aplica la política a las filas nuevas y devuelve el conjunto de IDs
// de materiales creados en esta ejecución (su baseline de stock es 0, ignorando
// cualquier valor del snapshot).
//
// En modo crear, la creación es todo-o-nada: si falla, ningún material queda
// creado y se devuelve domain.ErrCreacionMateriales; el caller puede reintentar
// con PoliticaSoloNombre.
func (r *Resolver) Resolver(ctx context.Context, companyID string, filas []*FilaStock, politica Politica) (map[string]bool, error) {
	creados := make(map[string]bool)

	var nuevas []*FilaStock
	for _, f := range filas {
		if f.EsNuevo {
			nuevas = append(nuevas, f)
		}
	}
	if len(nuevas) == 0 {
		return creados, nil
	}

	switch politica {
	case PoliticaSoloNombre:
		// Las filas quedan sin identificador; el diff usa baseline 0.
		return creados, nil
	case PoliticaCrearMateriales:
		now := time.Now()
		materiales := make([]*entity.Material, 0, len(nuevas))
		for _, f := range nuevas {
			materiales = append(materiales, &entity.Material{
				ID:          uuid.New().String(),
				CompanyID:   companyID,
				SKU:         f.SKU,
				Name:        f.Nombre,
				Description: f.Descripcion,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		if err := r.materiales.CreateBatch(ctx, materiales); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCreacionMateriales, err)
		}
		for i, f := range nuevas {
			f.MaterialID = materiales[i].ID
			creados[materiales[i].ID] = true
		}
		return creados, nil
	default:
		return nil, fmt.Errorf("%w: política desconocida %q", domain.ErrInvalidInput, politica)
	}
}
