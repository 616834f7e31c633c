// Package ajuste implementa la conciliación de stock por planilla:
// import xlsx → validación → resolución de materiales nuevos → diff contra el
// snapshot del sistema → agrupación por proyecto → envío de lotes al libro de
// movimientos. Todo el flujo es de un solo paso, sin estado compartido entre
// ejecuciones; el único efecto persistente ocurre al registrar los lotes.
package ajuste

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilaStock es una fila validada de la planilla.
// MaterialID vacío marca la fila como "material nuevo": su destino lo decide
// la política elegida por el usuario (crear el material o procesar solo por nombre).
type FilaStock struct {
	Linea             int    // fila en la hoja (1 = encabezado)
	MaterialID        string // vacío = material nuevo
	Nombre            string
	SKU               string
	Descripcion       string
	CantidadDeclarada decimal.Decimal
	NombreProyecto    string  // vacío cuando la fila es del bucket sin asignar
	ProyectoID        *string // nil = sin asignar
	EsNuevo           bool
}

// ErrorFila es un error de validación asociado a una fila concreta.
type ErrorFila struct {
	Linea   int    `json:"linea"`
	Mensaje string `json:"mensaje"`
}

// Candidato es un movimiento de ajuste derivado de una fila con delta distinto de cero.
// Invariantes: Cantidad = |Delta| > 0; Direccion es INGRESO si Delta > 0, EGRESO si Delta < 0.
type Candidato struct {
	MaterialID        *string // nil cuando la fila se procesa solo por nombre
	NombreMaterial    string
	ProyectoID        *string // nil = sin asignar
	NombreProyecto    string
	CantidadSistema   decimal.Decimal
	CantidadDeclarada decimal.Decimal
	Delta             decimal.Decimal // declarada - sistema, con signo
	Direccion         string          // entity.DireccionINGRESO | entity.DireccionEGRESO
	Cantidad          decimal.Decimal // |Delta|
}

// Grupo agrupa los candidatos de un mismo proyecto, en orden de entrada.
type Grupo struct {
	ProyectoID     *string // nil = sin asignar
	NombreProyecto string
	Candidatos     []Candidato
}

// LoteAjuste es el paquete que se envía al libro de movimientos por cada grupo.
// Se construye en memoria, se envía una vez y se descarta; no se persiste localmente.
type LoteAjuste struct {
	CompanyID      string
	ProyectoID     *string
	NombreProyecto string
	Movimientos    []Candidato
	Usuario        string
	Fecha          time.Time
}

// ResultadoLote es el resultado del envío de un lote de proyecto.
type ResultadoLote struct {
	ProyectoID     *string `json:"proyecto_id"`
	NombreProyecto string  `json:"proyecto"`
	TransactionID  string  `json:"transaction_id,omitempty"`
	Movimientos    int     `json:"movimientos"`
	Error          string  `json:"error,omitempty"`
}

// ResultadoEnvio acumula los resultados por proyecto. El envío es "mejor esfuerzo":
// el fallo de un lote no bloquea los demás.
type ResultadoEnvio struct {
	Exitosos int             `json:"exitosos"`
	Fallidos int             `json:"fallidos"`
	Lotes    []ResultadoLote `json:"lotes"`
}
