package ajuste

import (
	"context"
	"time"

	"github.com/operia/stock-ajustes-api/internal/domain"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
	"github.com/operia/stock-ajustes-api/pkg/logger"
)

// maxListado tope al listar proyectos de una empresa para el import.
const maxListado = 10000

// FilaNueva describe una fila sin identificador en la previsualización.
type FilaNueva struct {
	Linea       int    `json:"linea"`
	Nombre      string `json:"nombre"`
	SKU         string `json:"sku,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
	Proyecto    string `json:"proyecto"`
}

// Previsualizacion es el resultado de un import sin efectos: candidatos
// propuestos, filas nuevas pendientes de decisión y errores de validación.
type Previsualizacion struct {
	Paso        Paso        `json:"estado"`
	TomadoEn    time.Time   `json:"snapshot_tomado_en"`
	FilasNuevas []FilaNueva `json:"filas_nuevas,omitempty"`
	Candidatos  []Candidato `json:"candidatos,omitempty"`
	Errores     []ErrorFila `json:"errores,omitempty"`
}

// ImportarUseCase orquesta el flujo completo de conciliación:
// parse → validar → (resolver nuevos) → diff → agrupar → enviar.
type ImportarUseCase struct {
	materiales repository.MaterialRepository
	proyectos  repository.ProyectoRepository
	snapshots  SnapshotProvider
	resolver   *Resolver
	submitter  *Submitter
	log        *logger.Logger
}

// NewImportarUseCase construye el caso de uso.
func NewImportarUseCase(
	materiales repository.MaterialRepository,
	proyectos repository.ProyectoRepository,
	snapshots SnapshotProvider,
	resolver *Resolver,
	submitter *Submitter,
	log *logger.Logger,
) *ImportarUseCase {
	return &ImportarUseCase{
		materiales: materiales,
		proyectos:  proyectos,
		snapshots:  snapshots,
		resolver:   resolver,
		submitter:  submitter,
		log:        log,
	}
}

// validar corre parse + validación de esquema y filas. Los errores de archivo
// (ParseError, esquema) cortan con error; los errores por fila se devuelven en
// la lista y detienen el import completo antes del diff.
func (uc *ImportarUseCase) validar(companyID string, contenido []byte) ([]*FilaStock, []ErrorFila, error) {
	encabezados, crudas, err := Parsear(contenido)
	if err != nil {
		return nil, nil, err
	}
	canonicos, err := ValidarEncabezado(encabezados)
	if err != nil {
		return nil, nil, err
	}

	proyectos, err := uc.proyectos.ListByCompany(companyID, maxListado, 0)
	if err != nil {
		return nil, nil, err
	}
	materiales, err := uc.materiales.MapByCompany(companyID)
	if err != nil {
		return nil, nil, err
	}

	filas, errores := NewValidador(proyectos, materiales).ValidarPlanilla(canonicos, crudas)
	if len(errores) > 0 {
		return nil, errores, nil
	}
	return filas, nil, nil
}

// Previsualizar procesa la planilla sin efectos: no crea materiales ni registra
// movimientos. Las filas nuevas se reportan para la decisión de política y se
// diferencian con baseline 0 para mostrar el ingreso que producirían.
func (uc *ImportarUseCase) Previsualizar(ctx context.Context, companyID string, contenido []byte) (*Previsualizacion, error) {
	filas, errores, err := uc.validar(companyID, contenido)
	if err != nil {
		return nil, err
	}
	if len(errores) > 0 {
		return &Previsualizacion{Paso: PasoInicial(), Errores: errores}, nil
	}

	var nuevas []FilaNueva
	for _, f := range filas {
		if f.EsNuevo {
			proyecto := entity.NombreSinAsignar
			if f.ProyectoID != nil {
				proyecto = f.NombreProyecto
			}
			nuevas = append(nuevas, FilaNueva{
				Linea: f.Linea, Nombre: f.Nombre, SKU: f.SKU,
				Descripcion: f.Descripcion, Proyecto: proyecto,
			})
		}
	}

	snap, err := uc.snapshots.Tomar(ctx, companyID)
	if err != nil {
		return nil, err
	}
	candidatos := DiferenciarTodo(filas, snap, nil)

	paso, err := Reducir(PasoInicial(), EventoArchivoValidado{FilasNuevas: len(nuevas)})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Int("filas", len(filas)).
		Int("nuevas", len(nuevas)).
		Int("candidatos", len(candidatos)).
		Msg("previsualización de ajuste generada")

	return &Previsualizacion{
		Paso:        paso,
		TomadoEn:    snap.TomadoEn,
		FilasNuevas: nuevas,
		Candidatos:  candidatos,
		Errores:     nil,
	}, nil
}

// Confirmar ejecuta el flujo completo con efectos: resuelve las filas nuevas
// según la política, toma el snapshot, diferencia, agrupa por proyecto y envía
// los lotes al libro. Devuelve el resultado por proyecto (éxito parcial posible)
// o la lista de errores de validación con domain.ErrValidacion.
func (uc *ImportarUseCase) Confirmar(ctx context.Context, companyID, userID string, contenido []byte, politica Politica) (*ResultadoEnvio, []ErrorFila, error) {
	filas, errores, err := uc.validar(companyID, contenido)
	if err != nil {
		return nil, nil, err
	}
	if len(errores) > 0 {
		return nil, errores, domain.ErrValidacion
	}

	// La máquina de pasos valida la secuencia completa antes de tocar nada.
	nuevas := 0
	for _, f := range filas {
		if f.EsNuevo {
			nuevas++
		}
	}
	paso, err := Reducir(PasoInicial(), EventoArchivoValidado{FilasNuevas: nuevas})
	if err != nil {
		return nil, nil, err
	}
	if paso.Nombre == PasoResolverNuevos {
		if paso, err = Reducir(paso, EventoPoliticaElegida{Politica: politica}); err != nil {
			return nil, nil, err
		}
	}
	if paso, err = Reducir(paso, EventoCambiosAceptados{}); err != nil {
		return nil, nil, err
	}

	creados, err := uc.resolver.Resolver(ctx, companyID, filas, politicaEfectiva(politica, nuevas))
	if err != nil {
		return nil, nil, err
	}

	snap, err := uc.snapshots.Tomar(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	candidatos := DiferenciarTodo(filas, snap, creados)
	grupos := AgruparPorProyecto(candidatos)

	resultado := uc.submitter.Enviar(ctx, companyID, userID, grupos)

	uc.log.Info().
		Str("company_id", companyID).
		Str("user_id", userID).
		Int("candidatos", len(candidatos)).
		Int("lotes_ok", resultado.Exitosos).
		Int("lotes_error", resultado.Fallidos).
		Msg("ajuste de stock confirmado")

	return &resultado, nil, nil
}

// politicaEfectiva: sin filas nuevas la política es irrelevante; se usa
// solo_nombre para no exigirla en la petición.
func politicaEfectiva(p Politica, nuevas int) Politica {
	if nuevas == 0 && p == "" {
		return PoliticaSoloNombre
	}
	return p
}
