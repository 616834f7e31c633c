package ajuste

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// PoliticaReintentos controla los reintentos por lote. Los reintentos son
// explícitos y configurables; no se depende de los defaults del transporte.
type PoliticaReintentos struct {
	MaxReintentos  int           // 0 = un solo intento
	BackoffInicial time.Duration // intervalo inicial del backoff exponencial
}

// Submitter envía los lotes de ajuste al libro de movimientos, un proyecto a la
// vez y en orden. El fallo de un lote no bloquea los siguientes: el resultado
// reporta éxitos y fallos por proyecto.
type Submitter struct {
	ledger     Ledger
	reintentos PoliticaReintentos
}

// NewSubmitter construye el submitter.
func NewSubmitter(ledger Ledger, reintentos PoliticaReintentos) *Submitter {
	if reintentos.BackoffInicial <= 0 {
		reintentos.BackoffInicial = 200 * time.Millisecond
	}
	return &Submitter{ledger: ledger, reintentos: reintentos}
}

// Enviar procesa los grupos secuencialmente. Cada lote se reintenta con backoff
// exponencial según la política; agotados los reintentos, el error queda
// registrado en el resultado y se continúa con el siguiente proyecto.
func (s *Submitter) Enviar(ctx context.Context, companyID, userID string, grupos []Grupo) ResultadoEnvio {
	resultado := ResultadoEnvio{}
	for _, grupo := range grupos {
		lote := LoteAjuste{
			CompanyID:      companyID,
			ProyectoID:     grupo.ProyectoID,
			NombreProyecto: grupo.NombreProyecto,
			Movimientos:    grupo.Candidatos,
			Usuario:        userID,
			Fecha:          time.Now(),
		}

		var transactionID string
		operacion := func() error {
			txID, err := s.ledger.RegistrarLote(ctx, lote)
			if err != nil {
				return err
			}
			transactionID = txID
			return nil
		}

		b := backoff.NewExponentialBackOff()
		b.InitialInterval = s.reintentos.BackoffInicial
		err := backoff.Retry(operacion, backoff.WithContext(
			backoff.WithMaxRetries(b, uint64(s.reintentos.MaxReintentos)), ctx))

		rl := ResultadoLote{
			ProyectoID:     grupo.ProyectoID,
			NombreProyecto: grupo.NombreProyecto,
			Movimientos:    len(grupo.Candidatos),
		}
		if err != nil {
			rl.Error = err.Error()
			resultado.Fallidos++
		} else {
			rl.TransactionID = transactionID
			resultado.Exitosos++
		}
		resultado.Lotes = append(resultado.Lotes, rl)
	}
	return resultado
}
