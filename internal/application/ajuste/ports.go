package ajuste

import "context"

// SnapshotProvider toma una foto del stock del sistema para una empresa.
// El snapshot lleva marca de tiempo explícita: el diff siempre se hace contra
// un estado con "as-of" conocido, nunca contra una lista en memoria de edad ambigua.
type SnapshotProvider interface {
	Tomar(ctx context.Context, companyID string) (*Snapshot, error)
}

// Ledger registra un lote de ajuste en el libro de movimientos de forma atómica
// y devuelve el transaction ID del lote. Un error implica que ningún movimiento
// del lote quedó registrado.
type Ledger interface {
	RegistrarLote(ctx context.Context, lote LoteAjuste) (string, error)
}
