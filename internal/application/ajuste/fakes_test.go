package ajuste_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "00000000-0000-0000-0000-0000000000aa"

// encabezadosCompletos en el orden del export.
var encabezadosCompletos = []string{"ID Material", "Nombre", "SKU", "Descripción", "Stock Actual", "Proyecto"}

// buildPlanilla arma un xlsx en memoria con los encabezados y filas dadas.
func buildPlanilla(t *testing.T, encabezados []string, filas [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, h := range encabezados {
		celda, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", celda, h))
	}
	for r, fila := range filas {
		for c, v := range fila {
			celda, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", celda, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// dec es un atajo para literales decimales en los tests.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorios y puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeMaterialRepo struct {
	materiales map[string]*entity.Material
	batchErr   error // si no es nil, CreateBatch falla sin persistir nada
	creados    []*entity.Material
}

func newFakeMaterialRepo(materiales ...*entity.Material) *fakeMaterialRepo {
	m := make(map[string]*entity.Material, len(materiales))
	for _, mat := range materiales {
		m[mat.ID] = mat
	}
	return &fakeMaterialRepo{materiales: m}
}

func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	r.materiales[m.ID] = m
	return nil
}

func (r *fakeMaterialRepo) CreateBatch(_ context.Context, materiales []*entity.Material) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	for _, m := range materiales {
		r.materiales[m.ID] = m
		r.creados = append(r.creados, m)
	}
	return nil
}

func (r *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.materiales[id], nil
}

func (r *fakeMaterialRepo) GetByCompanyAndSKU(_, sku string) (*entity.Material, error) {
	for _, m := range r.materiales {
		if m.SKU == sku {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMaterialRepo) ListByCompany(string, int, int) ([]*entity.Material, error) {
	out := make([]*entity.Material, 0, len(r.materiales))
	for _, m := range r.materiales {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMaterialRepo) MapByCompany(string) (map[string]*entity.Material, error) {
	return r.materiales, nil
}

type fakeProyectoRepo struct {
	proyectos []*entity.Proyecto
}

func (r *fakeProyectoRepo) Create(p *entity.Proyecto) error {
	r.proyectos = append(r.proyectos, p)
	return nil
}

func (r *fakeProyectoRepo) GetByID(id string) (*entity.Proyecto, error) {
	for _, p := range r.proyectos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.New("no encontrado")
}

func (r *fakeProyectoRepo) ListByCompany(string, int, int) ([]*entity.Proyecto, error) {
	return r.proyectos, nil
}

type fakeStockRepo struct {
	saldos []*entity.SaldoStock
}

func (r *fakeStockRepo) Get(materialID string, proyectoID *string) (*entity.Stock, error) {
	for _, s := range r.saldos {
		if s.MaterialID == materialID && igualProyecto(s.ProyectoID, proyectoID) {
			return &entity.Stock{MaterialID: materialID, ProyectoID: proyectoID, Quantity: s.Cantidad}, nil
		}
	}
	return &entity.Stock{MaterialID: materialID, ProyectoID: proyectoID, Quantity: decimal.Zero}, nil
}

func (r *fakeStockRepo) Upsert(*entity.Stock) error { return nil }

func (r *fakeStockRepo) GetForUpdate(materialID string, proyectoID *string) (*entity.Stock, error) {
	return r.Get(materialID, proyectoID)
}

func (r *fakeStockRepo) ListSaldosByCompany(string) ([]*entity.SaldoStock, error) {
	return r.saldos, nil
}

func igualProyecto(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// fakeSnapshotProvider devuelve siempre el mismo snapshot prearmado.
type fakeSnapshotProvider struct {
	snap *ajuste.Snapshot
}

func (p *fakeSnapshotProvider) Tomar(context.Context, string) (*ajuste.Snapshot, error) {
	return p.snap, nil
}

func snapshotDe(saldos ...*entity.SaldoStock) *ajuste.Snapshot {
	return ajuste.NewSnapshot(time.Now(), saldos)
}

// fakeLedger registra lotes en memoria. fallosPorProyecto inyecta N fallos antes
// de aceptar el lote de ese proyecto (clave = nombre del proyecto).
type fakeLedger struct {
	fallosPorProyecto map[string]int
	intentos          map[string]int
	lotes             []ajuste.LoteAjuste
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		fallosPorProyecto: make(map[string]int),
		intentos:          make(map[string]int),
	}
}

func (l *fakeLedger) RegistrarLote(_ context.Context, lote ajuste.LoteAjuste) (string, error) {
	clave := lote.NombreProyecto
	l.intentos[clave]++
	if l.fallosPorProyecto[clave] > 0 {
		l.fallosPorProyecto[clave]--
		return "", fmt.Errorf("libro no disponible para %q", clave)
	}
	l.lotes = append(l.lotes, lote)
	return fmt.Sprintf("tx-%d", len(l.lotes)), nil
}
