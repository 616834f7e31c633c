package ajuste_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/domain"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Parsear
// ──────────────────────────────────────────────────────────────────────────────

func TestParsear_PlanillaValida(t *testing.T) {
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"mat-1", "Cemento", "CEM-01", "Saco 25kg", "10", "Obra Norte"},
		{"", "Arena", "", "", "5", ""},
	})

	encabezados, crudas, err := ajuste.Parsear(contenido)
	require.NoError(t, err)
	assert.Equal(t, encabezadosCompletos, encabezados)
	require.Len(t, crudas, 2)
	assert.Equal(t, 2, crudas[0].Linea, "la primera fila de datos es la línea 2")
	assert.Equal(t, "Cemento", crudas[0].Valores["Nombre"])
	assert.Equal(t, 3, crudas[1].Linea)
}

func TestParsear_DescartaFilasVacias(t *testing.T) {
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"", "Cemento", "", "", "10", ""},
		{"", "", "", "", "", ""},
		{"", "Arena", "", "", "5", ""},
	})

	_, crudas, err := ajuste.Parsear(contenido)
	require.NoError(t, err)
	require.Len(t, crudas, 2)
	assert.Equal(t, 4, crudas[1].Linea, "la línea original se conserva al saltar filas vacías")
}

func TestParsear_ArchivoIlegible(t *testing.T) {
	_, _, err := ajuste.Parsear([]byte("esto no es un xlsx"))
	assert.ErrorIs(t, err, domain.ErrArchivoInvalido)
}

func TestParsear_SinFilasDeDatos(t *testing.T) {
	contenido := buildPlanilla(t, encabezadosCompletos, nil)
	_, _, err := ajuste.Parsear(contenido)
	assert.ErrorIs(t, err, domain.ErrArchivoInvalido)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidarEncabezado
// ──────────────────────────────────────────────────────────────────────────────

func TestValidarEncabezado_EsquemaCompleto(t *testing.T) {
	canonicos, err := ajuste.ValidarEncabezado(encabezadosCompletos)
	require.NoError(t, err)
	assert.Len(t, canonicos, 6)
	assert.Equal(t, "Descripción", canonicos["Descripción"])
}

func TestValidarEncabezado_ToleranteATildesYMayusculas(t *testing.T) {
	canonicos, err := ajuste.ValidarEncabezado([]string{"nombre", "DESCRIPCION", "stock actual", "Proyecto"})
	require.NoError(t, err)
	assert.Equal(t, "Nombre", canonicos["nombre"])
	assert.Equal(t, "Descripción", canonicos["DESCRIPCION"])
}

func TestValidarEncabezado_ColumnaDesconocida(t *testing.T) {
	_, err := ajuste.ValidarEncabezado([]string{"Nombre", "Stock Actual", "Proyecto", "Bodega"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bodega")
}

func TestValidarEncabezado_ColumnaDuplicada(t *testing.T) {
	_, err := ajuste.ValidarEncabezado([]string{"Nombre", "nombre", "Stock Actual", "Proyecto"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicada")
}

func TestValidarEncabezado_FaltaObligatoria(t *testing.T) {
	_, err := ajuste.ValidarEncabezado([]string{"Nombre", "Proyecto"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stock Actual")
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidarPlanilla
// ──────────────────────────────────────────────────────────────────────────────

func testValidador() *ajuste.Validador {
	now := time.Now()
	proyectos := []*entity.Proyecto{
		{ID: "proy-1", CompanyID: testCompanyID, Name: "Obra Norte", CreatedAt: now},
		{ID: "proy-2", CompanyID: testCompanyID, Name: "Obra Sur", CreatedAt: now},
	}
	materiales := map[string]*entity.Material{
		"mat-1": {ID: "mat-1", CompanyID: testCompanyID, Name: "Cemento"},
	}
	return ajuste.NewValidador(proyectos, materiales)
}

func validar(t *testing.T, filas [][]string) ([]*ajuste.FilaStock, []ajuste.ErrorFila) {
	t.Helper()
	contenido := buildPlanilla(t, encabezadosCompletos, filas)
	encabezados, crudas, err := ajuste.Parsear(contenido)
	require.NoError(t, err)
	canonicos, err := ajuste.ValidarEncabezado(encabezados)
	require.NoError(t, err)
	return testValidador().ValidarPlanilla(canonicos, crudas)
}

func TestValidarPlanilla_FilasValidas(t *testing.T) {
	filas, errores := validar(t, [][]string{
		{"mat-1", "Cemento", "", "", "10", "Obra Norte"},
		{"", "Material Nuevo", "MN-01", "desc", "3,5", ""},
	})
	require.Empty(t, errores)
	require.Len(t, filas, 2)

	assert.Equal(t, "mat-1", filas[0].MaterialID)
	assert.False(t, filas[0].EsNuevo)
	require.NotNil(t, filas[0].ProyectoID)
	assert.Equal(t, "proy-1", *filas[0].ProyectoID)

	assert.True(t, filas[1].EsNuevo, "fila sin ID Material es candidata a material nuevo")
	assert.Nil(t, filas[1].ProyectoID, "proyecto vacío va al bucket sin asignar")
	assert.True(t, filas[1].CantidadDeclarada.Equal(dec("3.5")), "la coma decimal se acepta")
}

func TestValidarPlanilla_RotuloSinAsignar(t *testing.T) {
	filas, errores := validar(t, [][]string{
		{"mat-1", "Cemento", "", "", "10", entity.NombreSinAsignar},
	})
	require.Empty(t, errores)
	assert.Nil(t, filas[0].ProyectoID)
}

func TestValidarPlanilla_NombreObligatorio(t *testing.T) {
	_, errores := validar(t, [][]string{
		{"mat-1", "", "", "", "10", ""},
	})
	require.Len(t, errores, 1)
	assert.Equal(t, 2, errores[0].Linea)
	assert.Contains(t, errores[0].Mensaje, "nombre")
}

func TestValidarPlanilla_MaterialInexistente(t *testing.T) {
	_, errores := validar(t, [][]string{
		{"mat-fantasma", "Algo", "", "", "10", ""},
	})
	require.Len(t, errores, 1)
	assert.Contains(t, errores[0].Mensaje, "mat-fantasma")
}

func TestValidarPlanilla_CantidadInvalida(t *testing.T) {
	_, errores := validar(t, [][]string{
		{"mat-1", "Cemento", "", "", "muchos", ""},
		{"", "Arena", "", "", "-4", ""},
		{"", "Grava", "", "", "", ""},
	})
	require.Len(t, errores, 3)
	assert.Contains(t, errores[0].Mensaje, "no numérica")
	assert.Contains(t, errores[1].Mensaje, "negativa")
	assert.Contains(t, errores[2].Mensaje, "obligatoria")
}

func TestValidarPlanilla_ProyectoInexistente(t *testing.T) {
	_, errores := validar(t, [][]string{
		{"mat-1", "Cemento", "", "", "10", "Obra Fantasma"},
	})
	require.Len(t, errores, 1)
	assert.Contains(t, errores[0].Mensaje, "Obra Fantasma")
}

func TestValidarPlanilla_FilaDuplicadaMismoMaterialYProyecto(t *testing.T) {
	_, errores := validar(t, [][]string{
		{"mat-1", "Cemento", "", "", "10", "Obra Norte"},
		{"mat-1", "Cemento", "", "", "12", "Obra Norte"},
	})
	require.Len(t, errores, 1)
	assert.Equal(t, 3, errores[0].Linea)
	assert.Contains(t, errores[0].Mensaje, "duplicada")
}

func TestValidarPlanilla_MismoMaterialDistintoProyectoEsValido(t *testing.T) {
	filas, errores := validar(t, [][]string{
		{"mat-1", "Cemento", "", "", "10", "Obra Norte"},
		{"mat-1", "Cemento", "", "", "4", "Obra Sur"},
		{"mat-1", "Cemento", "", "", "1", ""},
	})
	require.Empty(t, errores)
	assert.Len(t, filas, 3)
}

func TestValidarPlanilla_TodoONada(t *testing.T) {
	// Una sola fila mala invalida el archivo completo: no se devuelven filas.
	filas, errores := validar(t, [][]string{
		{"mat-1", "Cemento", "", "", "10", "Obra Norte"},
		{"", "Arena", "", "", "no-numero", ""},
	})
	assert.NotEmpty(t, errores)
	assert.Nil(t, filas)
}
