package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

var _ ajuste.SnapshotProvider = (*SnapshotProvider)(nil)

// SnapshotProvider toma fotos del stock del sistema leyendo los saldos de la empresa.
type SnapshotProvider struct {
	stockRepo repository.StockRepository
}

// NewSnapshotProvider construye el proveedor de snapshots.
func NewSnapshotProvider(stockRepo repository.StockRepository) *SnapshotProvider {
	return &SnapshotProvider{stockRepo: stockRepo}
}

// Tomar lee los saldos actuales de la empresa y arma el snapshot con marca de tiempo.
func (p *SnapshotProvider) Tomar(ctx context.Context, companyID string) (*ajuste.Snapshot, error) {
	saldos, err := p.stockRepo.ListSaldosByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("tomar snapshot: %w", err)
	}
	return ajuste.NewSnapshot(time.Now(), saldos), nil
}
