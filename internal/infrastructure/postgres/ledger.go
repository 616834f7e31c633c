package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

var _ ajuste.Ledger = (*Ledger)(nil)

// Ledger registra lotes de ajuste en el libro de movimientos.
// Cada lote corre en una transacción: se bloquea la fila de stock (FOR UPDATE),
// se aplica el delta y se inserta el movimiento; si algo falla, nada del lote persiste.
type Ledger struct {
	tx *TxRunner
}

// NewLedger construye el libro sobre el runner transaccional.
func NewLedger(tx *TxRunner) *Ledger {
	return &Ledger{tx: tx}
}

// RegistrarLote aplica un lote de ajuste de forma atómica y devuelve su transaction ID.
func (l *Ledger) RegistrarLote(ctx context.Context, lote ajuste.LoteAjuste) (string, error) {
	transactionID := uuid.New().String()

	err := l.tx.Run(ctx, func(movRepo repository.MovimientoRepository, stockRepo repository.StockRepository) error {
		for _, c := range lote.Movimientos {
			// Filas procesadas solo por nombre no tocan stock: quedan solo en el libro.
			if c.MaterialID != nil {
				stock, err := stockRepo.GetForUpdate(*c.MaterialID, lote.ProyectoID)
				if err != nil {
					return err
				}
				stock.Quantity = stock.Quantity.Add(c.Delta)
				if err := stockRepo.Upsert(stock); err != nil {
					return err
				}
			}

			mov := &entity.Movimiento{
				ID:             uuid.New().String(),
				TransactionID:  transactionID,
				CompanyID:      lote.CompanyID,
				MaterialID:     c.MaterialID,
				NombreMaterial: c.NombreMaterial,
				ProyectoID:     lote.ProyectoID,
				Tipo:           entity.MovimientoTipoAJUSTE,
				Direccion:      c.Direccion,
				Cantidad:       c.Cantidad,
				Observacion: fmt.Sprintf("Ajuste por planilla: sistema=%s, planilla=%s, delta=%s",
					c.CantidadSistema.String(), c.CantidadDeclarada.String(), c.Delta.String()),
				Date:      lote.Fecha,
				CreatedAt: lote.Fecha,
				CreatedBy: lote.Usuario,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("registrar lote %s: %w", lote.NombreProyecto, err)
	}
	return transactionID, nil
}
