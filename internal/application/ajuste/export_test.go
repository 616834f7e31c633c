package ajuste_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
)

func saldosDeTest() []*entity.SaldoStock {
	return []*entity.SaldoStock{
		{MaterialID: "mat-1", SKU: "CEM-01", Nombre: "Cemento", Descripcion: "Saco 25kg", ProyectoID: ptr("proy-1"), NombreProyecto: "Obra Norte", Cantidad: dec("10")},
		{MaterialID: "mat-2", SKU: "", Nombre: "Arena", Descripcion: "", ProyectoID: nil, NombreProyecto: "", Cantidad: dec("5.25")},
	}
}

func TestExportar_EsquemaYContenido(t *testing.T) {
	exportador := ajuste.NewExportador(&fakeStockRepo{saldos: saldosDeTest()})

	contenido, err := exportador.Exportar(context.Background(), testCompanyID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(contenido))
	require.NoError(t, err)
	defer f.Close()

	hojas := f.GetSheetList()
	require.Contains(t, hojas, "Stock")
	require.Contains(t, hojas, "Instrucciones")

	filas, err := f.GetRows("Stock")
	require.NoError(t, err)
	require.Len(t, filas, 3, "encabezado más una fila por saldo")
	assert.Equal(t, encabezadosCompletos, filas[0])
	assert.Equal(t, "Cemento", filas[1][1])
	assert.Equal(t, "Obra Norte", filas[1][5])
	assert.Equal(t, entity.NombreSinAsignar, filas[2][5], "saldo sin proyecto usa el rótulo reservado")

	instrucciones, err := f.GetRows("Instrucciones")
	require.NoError(t, err)
	assert.NotEmpty(t, instrucciones)
}

// El export y el import comparten esquema: reimportar la planilla sin editarla
// no debe producir ningún movimiento.
func TestExportar_ReimportarSinEditarProduceCeroCandidatos(t *testing.T) {
	saldos := saldosDeTest()
	exportador := ajuste.NewExportador(&fakeStockRepo{saldos: saldos})

	contenido, err := exportador.Exportar(context.Background(), testCompanyID)
	require.NoError(t, err)

	encabezados, crudas, err := ajuste.Parsear(contenido)
	require.NoError(t, err)
	canonicos, err := ajuste.ValidarEncabezado(encabezados)
	require.NoError(t, err)

	validador := ajuste.NewValidador(
		[]*entity.Proyecto{{ID: "proy-1", CompanyID: testCompanyID, Name: "Obra Norte"}},
		map[string]*entity.Material{
			"mat-1": {ID: "mat-1", CompanyID: testCompanyID, Name: "Cemento"},
			"mat-2": {ID: "mat-2", CompanyID: testCompanyID, Name: "Arena"},
		},
	)
	filas, errores := validador.ValidarPlanilla(canonicos, crudas)
	require.Empty(t, errores)
	require.Len(t, filas, 2)

	candidatos := ajuste.DiferenciarTodo(filas, ajuste.NewSnapshot(time.Now(), saldos), nil)
	assert.Empty(t, candidatos, "sin ediciones no hay deltas")
}
