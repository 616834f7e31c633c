package ajuste

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/operia/stock-ajustes-api/internal/domain/entity"
)

// Snapshot es una foto del stock del sistema en un instante conocido, indexada
// por (material, proyecto). ProyectoID nil direcciona el bucket "sin asignar",
// nunca el total del material.
type Snapshot struct {
	TomadoEn   time.Time
	cantidades map[string]decimal.Decimal
}

// NewSnapshot construye el snapshot desde los saldos del sistema.
func NewSnapshot(tomadoEn time.Time, saldos []*entity.SaldoStock) *Snapshot {
	cantidades := make(map[string]decimal.Decimal, len(saldos))
	for _, s := range saldos {
		cantidades[claveStock(s.MaterialID, s.ProyectoID)] = s.Cantidad
	}
	return &Snapshot{TomadoEn: tomadoEn, cantidades: cantidades}
}

// Cantidad devuelve el stock del par (material, proyecto); 0 si no hay saldo registrado.
func (s *Snapshot) Cantidad(materialID string, proyectoID *string) decimal.Decimal {
	if q, ok := s.cantidades[claveStock(materialID, proyectoID)]; ok {
		return q
	}
	return decimal.Zero
}

func claveStock(materialID string, proyectoID *string) string {
	if proyectoID == nil {
		return materialID + "|(sin asignar)"
	}
	return materialID + "|" + *proyectoID
}

// Diferenciar compara la cantidad declarada de una fila contra el snapshot y
// devuelve el candidato a movimiento, o nil si el delta es cero.
//
// La baseline del sistema es 0 para filas sin identificador y para materiales
// creados en esta misma ejecución (un valor residual del snapshot sería stale).
func Diferenciar(fila *FilaStock, snap *Snapshot, creados map[string]bool) *Candidato {
	var sistema decimal.Decimal
	var materialID *string
	switch {
	case fila.MaterialID == "":
		sistema = decimal.Zero
	case creados[fila.MaterialID]:
		sistema = decimal.Zero
		id := fila.MaterialID
		materialID = &id
	default:
		sistema = snap.Cantidad(fila.MaterialID, fila.ProyectoID)
		id := fila.MaterialID
		materialID = &id
	}

	delta := fila.CantidadDeclarada.Sub(sistema)
	if delta.IsZero() {
		return nil
	}
	direccion := entity.DireccionINGRESO
	if delta.IsNegative() {
		direccion = entity.DireccionEGRESO
	}
	return &Candidato{
		MaterialID:        materialID,
		NombreMaterial:    fila.Nombre,
		ProyectoID:        fila.ProyectoID,
		NombreProyecto:    fila.NombreProyecto,
		CantidadSistema:   sistema,
		CantidadDeclarada: fila.CantidadDeclarada,
		Delta:             delta,
		Direccion:         direccion,
		Cantidad:          delta.Abs(),
	}
}

// DiferenciarTodo aplica Diferenciar a cada fila, preservando el orden y
// descartando las filas sin cambio.
func DiferenciarTodo(filas []*FilaStock, snap *Snapshot, creados map[string]bool) []Candidato {
	var candidatos []Candidato
	for _, fila := range filas {
		if c := Diferenciar(fila, snap, creados); c != nil {
			candidatos = append(candidatos, *c)
		}
	}
	return candidatos
}
