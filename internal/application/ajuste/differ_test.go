package ajuste_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
)

func TestDiferenciar_DeclaradaMayorEsIngreso(t *testing.T) {
	snap := snapshotDe(&entity.SaldoStock{MaterialID: "mat-1", ProyectoID: ptr("proy-1"), Cantidad: dec("10")})
	fila := &ajuste.FilaStock{MaterialID: "mat-1", Nombre: "Cemento", ProyectoID: ptr("proy-1"), NombreProyecto: "Obra Norte", CantidadDeclarada: dec("15")}

	c := ajuste.Diferenciar(fila, snap, nil)
	require.NotNil(t, c)
	assert.Equal(t, entity.DireccionINGRESO, c.Direccion)
	assert.True(t, c.Delta.Equal(dec("5")))
	assert.True(t, c.Cantidad.Equal(dec("5")))
	assert.True(t, c.CantidadSistema.Equal(dec("10")))
}

func TestDiferenciar_DeclaradaMenorEsEgreso(t *testing.T) {
	snap := snapshotDe(&entity.SaldoStock{MaterialID: "mat-1", ProyectoID: nil, Cantidad: dec("10")})
	fila := &ajuste.FilaStock{MaterialID: "mat-1", Nombre: "Cemento", CantidadDeclarada: dec("4")}

	c := ajuste.Diferenciar(fila, snap, nil)
	require.NotNil(t, c)
	assert.Equal(t, entity.DireccionEGRESO, c.Direccion)
	assert.True(t, c.Delta.Equal(dec("-6")), "el delta conserva el signo")
	assert.True(t, c.Cantidad.Equal(dec("6")), "la cantidad es siempre positiva")
}

func TestDiferenciar_SinCambioNoProduceCandidato(t *testing.T) {
	snap := snapshotDe(&entity.SaldoStock{MaterialID: "mat-1", ProyectoID: nil, Cantidad: dec("10")})
	fila := &ajuste.FilaStock{MaterialID: "mat-1", Nombre: "Cemento", CantidadDeclarada: dec("10")}

	assert.Nil(t, ajuste.Diferenciar(fila, snap, nil))
}

func TestDiferenciar_ProyectoDireccionaSoloSuBucket(t *testing.T) {
	// El mismo material tiene saldo en dos buckets; la fila solo compara el suyo.
	snap := snapshotDe(
		&entity.SaldoStock{MaterialID: "mat-1", ProyectoID: ptr("proy-1"), Cantidad: dec("10")},
		&entity.SaldoStock{MaterialID: "mat-1", ProyectoID: nil, Cantidad: dec("99")},
	)
	fila := &ajuste.FilaStock{MaterialID: "mat-1", Nombre: "Cemento", ProyectoID: ptr("proy-1"), CantidadDeclarada: dec("12")}

	c := ajuste.Diferenciar(fila, snap, nil)
	require.NotNil(t, c)
	assert.True(t, c.CantidadSistema.Equal(dec("10")), "nunca contra el total del material")
	assert.True(t, c.Delta.Equal(dec("2")))
}

func TestDiferenciar_FilaNuevaSinIDUsaBaselineCero(t *testing.T) {
	snap := snapshotDe()
	fila := &ajuste.FilaStock{Nombre: "Material Nuevo", CantidadDeclarada: dec("7"), EsNuevo: true}

	c := ajuste.Diferenciar(fila, snap, nil)
	require.NotNil(t, c)
	assert.Nil(t, c.MaterialID)
	assert.Equal(t, entity.DireccionINGRESO, c.Direccion)
	assert.True(t, c.Delta.Equal(dec("7")))
}

func TestDiferenciar_MaterialReciencCreadoIgnoraSnapshot(t *testing.T) {
	// Un valor residual del snapshot para un material creado en esta ejecución
	// sería stale: la baseline es 0.
	snap := snapshotDe(&entity.SaldoStock{MaterialID: "mat-nuevo", ProyectoID: nil, Cantidad: dec("50")})
	fila := &ajuste.FilaStock{MaterialID: "mat-nuevo", Nombre: "Recién Creado", CantidadDeclarada: dec("7")}

	c := ajuste.Diferenciar(fila, snap, map[string]bool{"mat-nuevo": true})
	require.NotNil(t, c)
	require.NotNil(t, c.MaterialID)
	assert.Equal(t, "mat-nuevo", *c.MaterialID)
	assert.True(t, c.CantidadSistema.IsZero())
	assert.True(t, c.Delta.Equal(dec("7")))
}

func TestDiferenciar_FilaNuevaDeclaradaCeroSinCandidato(t *testing.T) {
	fila := &ajuste.FilaStock{Nombre: "Nuevo Vacío", CantidadDeclarada: dec("0"), EsNuevo: true}
	assert.Nil(t, ajuste.Diferenciar(fila, snapshotDe(), nil))
}

func TestDiferenciarTodo_PreservaOrdenYDescartaSinCambio(t *testing.T) {
	snap := snapshotDe(
		&entity.SaldoStock{MaterialID: "mat-1", ProyectoID: nil, Cantidad: dec("10")},
		&entity.SaldoStock{MaterialID: "mat-2", ProyectoID: nil, Cantidad: dec("5")},
	)
	filas := []*ajuste.FilaStock{
		{MaterialID: "mat-1", Nombre: "A", CantidadDeclarada: dec("12")},
		{MaterialID: "mat-2", Nombre: "B", CantidadDeclarada: dec("5")}, // sin cambio
		{Nombre: "C", CantidadDeclarada: dec("3"), EsNuevo: true},
	}

	candidatos := ajuste.DiferenciarTodo(filas, snap, nil)
	require.Len(t, candidatos, 2)
	assert.Equal(t, "A", candidatos[0].NombreMaterial)
	assert.Equal(t, "C", candidatos[1].NombreMaterial)
}
