package ajuste_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/domain"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/pkg/logger"
)

// entorno arma el caso de uso completo con fakes: dos materiales existentes,
// un proyecto y stock 10 (Obra Norte) / 5 (sin asignar).
type entorno struct {
	uc       *ajuste.ImportarUseCase
	material *fakeMaterialRepo
	ledger   *fakeLedger
}

func nuevoEntorno() *entorno {
	materialRepo := newFakeMaterialRepo(
		&entity.Material{ID: "mat-1", CompanyID: testCompanyID, Name: "Cemento"},
		&entity.Material{ID: "mat-2", CompanyID: testCompanyID, Name: "Arena"},
	)
	proyectoRepo := &fakeProyectoRepo{proyectos: []*entity.Proyecto{
		{ID: "proy-1", CompanyID: testCompanyID, Name: "Obra Norte", CreatedAt: time.Now()},
	}}
	snapshots := &fakeSnapshotProvider{snap: snapshotDe(
		&entity.SaldoStock{MaterialID: "mat-1", ProyectoID: ptr("proy-1"), Cantidad: dec("10")},
		&entity.SaldoStock{MaterialID: "mat-2", ProyectoID: nil, Cantidad: dec("5")},
	)}
	ledger := newFakeLedger()
	submitter := ajuste.NewSubmitter(ledger, ajuste.PoliticaReintentos{BackoffInicial: time.Millisecond})
	uc := ajuste.NewImportarUseCase(
		materialRepo, proyectoRepo, snapshots,
		ajuste.NewResolver(materialRepo), submitter, logger.Nop(),
	)
	return &entorno{uc: uc, material: materialRepo, ledger: ledger}
}

func TestPrevisualizar_SinEfectosYConCandidatos(t *testing.T) {
	env := nuevoEntorno()
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"mat-1", "Cemento", "", "", "12", "Obra Norte"},
		{"mat-2", "Arena", "", "", "5", ""},
		{"", "Grava", "", "", "3", ""},
	})

	prev, err := env.uc.Previsualizar(context.Background(), testCompanyID, contenido)
	require.NoError(t, err)

	assert.Empty(t, prev.Errores)
	require.Len(t, prev.FilasNuevas, 1)
	assert.Equal(t, "Grava", prev.FilasNuevas[0].Nombre)
	assert.Equal(t, entity.NombreSinAsignar, prev.FilasNuevas[0].Proyecto)

	// mat-2 sin cambio se descarta; mat-1 (+2) y Grava (+3) son candidatos.
	require.Len(t, prev.Candidatos, 2)
	assert.True(t, prev.Candidatos[0].Delta.Equal(dec("2")))
	assert.True(t, prev.Candidatos[1].Delta.Equal(dec("3")))

	assert.Equal(t, ajuste.PasoResolverNuevos, prev.Paso.Nombre, "hay filas nuevas pendientes de decisión")
	assert.False(t, prev.TomadoEn.IsZero())

	// Sin efectos: nada creado, nada registrado.
	assert.Empty(t, env.material.creados)
	assert.Empty(t, env.ledger.lotes)
}

func TestPrevisualizar_SinFilasNuevasPasaARevision(t *testing.T) {
	env := nuevoEntorno()
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"mat-1", "Cemento", "", "", "12", "Obra Norte"},
	})

	prev, err := env.uc.Previsualizar(context.Background(), testCompanyID, contenido)
	require.NoError(t, err)
	assert.Equal(t, ajuste.PasoRevisarCambios, prev.Paso.Nombre)
	assert.Empty(t, prev.FilasNuevas)
}

func TestPrevisualizar_ErroresDeValidacion(t *testing.T) {
	env := nuevoEntorno()
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"mat-1", "Cemento", "", "", "no-numero", ""},
	})

	prev, err := env.uc.Previsualizar(context.Background(), testCompanyID, contenido)
	require.NoError(t, err)
	require.Len(t, prev.Errores, 1)
	assert.Empty(t, prev.Candidatos)
}

func TestPrevisualizar_ArchivoIlegible(t *testing.T) {
	env := nuevoEntorno()
	_, err := env.uc.Previsualizar(context.Background(), testCompanyID, []byte("basura"))
	assert.ErrorIs(t, err, domain.ErrArchivoInvalido)
}

func TestConfirmar_PoliticaCrearRegistraLotesPorProyecto(t *testing.T) {
	env := nuevoEntorno()
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"mat-1", "Cemento", "", "", "12", "Obra Norte"},
		{"mat-2", "Arena", "", "", "5", ""}, // sin cambio
		{"", "Grava", "GR-01", "", "3", ""},
	})

	resultado, errores, err := env.uc.Confirmar(context.Background(), testCompanyID, "user-1", contenido, ajuste.PoliticaCrearMateriales)
	require.NoError(t, err)
	assert.Empty(t, errores)

	// La fila nueva creó su material.
	require.Len(t, env.material.creados, 1)
	assert.Equal(t, "Grava", env.material.creados[0].Name)

	// Dos lotes: Obra Norte (mat-1) y sin asignar (Grava).
	assert.Equal(t, 2, resultado.Exitosos)
	assert.Equal(t, 0, resultado.Fallidos)
	require.Len(t, env.ledger.lotes, 2)

	loteNorte := env.ledger.lotes[0]
	require.NotNil(t, loteNorte.ProyectoID)
	assert.Equal(t, "proy-1", *loteNorte.ProyectoID)
	require.Len(t, loteNorte.Movimientos, 1)
	assert.Equal(t, entity.DireccionINGRESO, loteNorte.Movimientos[0].Direccion)

	loteSinAsignar := env.ledger.lotes[1]
	assert.Nil(t, loteSinAsignar.ProyectoID)
	require.Len(t, loteSinAsignar.Movimientos, 1)
	require.NotNil(t, loteSinAsignar.Movimientos[0].MaterialID, "con política crear la fila adopta el ID nuevo")
	assert.True(t, loteSinAsignar.Movimientos[0].CantidadSistema.IsZero(), "material recién creado parte de 0")
}

func TestConfirmar_PoliticaSoloNombreNoCreaMateriales(t *testing.T) {
	env := nuevoEntorno()
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"", "Grava", "", "", "3", ""},
	})

	resultado, _, err := env.uc.Confirmar(context.Background(), testCompanyID, "user-1", contenido, ajuste.PoliticaSoloNombre)
	require.NoError(t, err)

	assert.Empty(t, env.material.creados)
	require.Len(t, env.ledger.lotes, 1)
	mov := env.ledger.lotes[0].Movimientos[0]
	assert.Nil(t, mov.MaterialID, "solo por nombre: el movimiento no referencia material")
	assert.Equal(t, "Grava", mov.NombreMaterial)
	assert.Equal(t, 1, resultado.Exitosos)
}

func TestConfirmar_ErroresDeValidacionDetienenTodo(t *testing.T) {
	env := nuevoEntorno()
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"mat-1", "Cemento", "", "", "12", "Obra Norte"},
		{"", "Grava", "", "", "-1", ""},
	})

	resultado, errores, err := env.uc.Confirmar(context.Background(), testCompanyID, "user-1", contenido, ajuste.PoliticaCrearMateriales)
	require.ErrorIs(t, err, domain.ErrValidacion)
	assert.Nil(t, resultado)
	require.Len(t, errores, 1)
	assert.Empty(t, env.ledger.lotes, "ninguna fila válida se procesa si alguna falla")
	assert.Empty(t, env.material.creados)
}

func TestConfirmar_FilasNuevasSinPoliticaEsError(t *testing.T) {
	env := nuevoEntorno()
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"", "Grava", "", "", "3", ""},
	})

	_, _, err := env.uc.Confirmar(context.Background(), testCompanyID, "user-1", contenido, "")
	require.Error(t, err, "con filas nuevas la política es obligatoria")
	assert.Empty(t, env.ledger.lotes)
}

func TestConfirmar_CreacionFallidaAbortaSinMovimientos(t *testing.T) {
	env := nuevoEntorno()
	env.material.batchErr = assert.AnError
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"", "Grava", "", "", "3", ""},
	})

	_, _, err := env.uc.Confirmar(context.Background(), testCompanyID, "user-1", contenido, ajuste.PoliticaCrearMateriales)
	require.ErrorIs(t, err, domain.ErrCreacionMateriales)
	assert.Empty(t, env.ledger.lotes, "sin materiales creados no se registra ningún lote")
}

func TestConfirmar_SinCambiosNoRegistraLotes(t *testing.T) {
	env := nuevoEntorno()
	contenido := buildPlanilla(t, encabezadosCompletos, [][]string{
		{"mat-1", "Cemento", "", "", "10", "Obra Norte"},
		{"mat-2", "Arena", "", "", "5", ""},
	})

	resultado, _, err := env.uc.Confirmar(context.Background(), testCompanyID, "user-1", contenido, "")
	require.NoError(t, err)
	assert.Zero(t, resultado.Exitosos)
	assert.Zero(t, resultado.Fallidos)
	assert.Empty(t, env.ledger.lotes)
}
