package ajuste

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/operia/stock-ajustes-api/internal/domain/entity"
)

// columnasConocidas mapea encabezados normalizados (sin tildes, minúsculas) al
// encabezado canónico. Cualquier encabezado fuera de este conjunto rechaza el import.
var columnasConocidas = map[string]string{
	"id material":  ColIDMaterial,
	"nombre":       ColNombre,
	"sku":          ColSKU,
	"descripcion":  ColDescripcion,
	"stock actual": ColStockActual,
	"proyecto":     ColProyecto,
}

// columnasObligatorias deben existir en el encabezado; las demás son opcionales.
var columnasObligatorias = []string{ColNombre, ColStockActual, ColProyecto}

var quitarTildes = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizarEncabezado compara encabezados de forma tolerante a tildes y mayúsculas
// ("Descripción" y "descripcion" son la misma columna).
func normalizarEncabezado(h string) string {
	s, _, err := transform.String(quitarTildes, h)
	if err != nil {
		s = h
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidarEncabezado verifica el esquema de la planilla: todas las columnas
// obligatorias presentes y ninguna desconocida. Devuelve el mapa encabezado
// original → canónico. Un encabezado inválido aborta el import completo.
func ValidarEncabezado(encabezados []string) (map[string]string, error) {
	canonicos := make(map[string]string, len(encabezados))
	vistos := make(map[string]bool, len(encabezados))
	for _, h := range encabezados {
		if h == "" {
			continue
		}
		canon, ok := columnasConocidas[normalizarEncabezado(h)]
		if !ok {
			return nil, fmt.Errorf("columna desconocida en la planilla: %q", h)
		}
		if vistos[canon] {
			return nil, fmt.Errorf("columna duplicada en la planilla: %q", canon)
		}
		vistos[canon] = true
		canonicos[h] = canon
	}
	for _, req := range columnasObligatorias {
		if !vistos[req] {
			return nil, fmt.Errorf("falta la columna obligatoria %q", req)
		}
	}
	return canonicos, nil
}

// Validador valida filas crudas contra el directorio de proyectos y el registro
// de materiales de la empresa.
type Validador struct {
	proyectosPorNombre map[string]string           // nombre → id
	nombresProyecto    map[string]string           // id → nombre
	materiales         map[string]*entity.Material // id → material
}

// NewValidador construye el validador con los proyectos y materiales vigentes.
func NewValidador(proyectos []*entity.Proyecto, materiales map[string]*entity.Material) *Validador {
	porNombre := make(map[string]string, len(proyectos))
	nombres := make(map[string]string, len(proyectos))
	for _, p := range proyectos {
		porNombre[p.Name] = p.ID
		nombres[p.ID] = p.Name
	}
	return &Validador{proyectosPorNombre: porNombre, nombresProyecto: nombres, materiales: materiales}
}

// ValidarPlanilla valida todas las filas. Si alguna falla, el import se detiene
// completo: devuelve la lista de errores y ninguna fila (todo-o-nada a nivel archivo).
// Filas duplicadas para el mismo (material, proyecto) se rechazan: dos filas
// contra el mismo snapshot producirían doble conteo.
func (v *Validador) ValidarPlanilla(canonicos map[string]string, crudas []FilaCruda) ([]*FilaStock, []ErrorFila) {
	var filas []*FilaStock
	var errores []ErrorFila
	vistos := make(map[string]int) // clave material+proyecto → línea de la primera aparición

	for _, cruda := range crudas {
		fila, errs := v.validarFila(canonicos, cruda)
		if len(errs) > 0 {
			errores = append(errores, errs...)
			continue
		}
		clave := claveFila(fila)
		if previa, ok := vistos[clave]; ok {
			errores = append(errores, ErrorFila{
				Linea:   cruda.Linea,
				Mensaje: fmt.Sprintf("fila duplicada para el mismo material y proyecto (ya aparece en la línea %d)", previa),
			})
			continue
		}
		vistos[clave] = cruda.Linea
		filas = append(filas, fila)
	}
	if len(errores) > 0 {
		return nil, errores
	}
	return filas, nil
}

func (v *Validador) validarFila(canonicos map[string]string, cruda FilaCruda) (*FilaStock, []ErrorFila) {
	valor := func(canon string) string {
		for original, c := range canonicos {
			if c == canon {
				return cruda.Valores[original]
			}
		}
		return ""
	}

	var errs []ErrorFila
	falla := func(formato string, args ...any) {
		errs = append(errs, ErrorFila{Linea: cruda.Linea, Mensaje: fmt.Sprintf(formato, args...)})
	}

	fila := &FilaStock{
		Linea:       cruda.Linea,
		MaterialID:  valor(ColIDMaterial),
		Nombre:      valor(ColNombre),
		SKU:         valor(ColSKU),
		Descripcion: valor(ColDescripcion),
	}

	if fila.Nombre == "" {
		falla("el nombre del material es obligatorio")
	}

	// Material: con identificador debe existir; sin identificador es candidato a nuevo.
	if fila.MaterialID != "" {
		if _, ok := v.materiales[fila.MaterialID]; !ok {
			falla("el material %q no existe en el sistema", fila.MaterialID)
		}
	} else if fila.Nombre != "" {
		fila.EsNuevo = true
	}

	// Cantidad: número finito >= 0. Se acepta coma decimal (planillas en español).
	crudaCantidad := valor(ColStockActual)
	if crudaCantidad == "" {
		falla("la cantidad de stock es obligatoria")
	} else {
		cantidad, err := decimal.NewFromString(strings.ReplaceAll(crudaCantidad, ",", "."))
		switch {
		case err != nil:
			falla("cantidad no numérica: %q", crudaCantidad)
		case cantidad.IsNegative():
			falla("la cantidad no puede ser negativa: %s", cantidad)
		default:
			fila.CantidadDeclarada = cantidad
		}
	}

	// Proyecto: vacío o el rótulo reservado van al bucket sin asignar (ProyectoID nil);
	// cualquier otro nombre debe resolverse en el directorio de proyectos.
	nombreProyecto := valor(ColProyecto)
	if nombreProyecto != "" && nombreProyecto != entity.NombreSinAsignar {
		id, ok := v.proyectosPorNombre[nombreProyecto]
		if !ok {
			falla("el proyecto %q no existe en el sistema", nombreProyecto)
		} else {
			fila.ProyectoID = &id
			fila.NombreProyecto = nombreProyecto
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return fila, nil
}

// claveFila identifica el par (material, proyecto) de una fila para detectar
// duplicados; los materiales nuevos se identifican por nombre.
func claveFila(f *FilaStock) string {
	material := f.MaterialID
	if material == "" {
		material = "nombre:" + f.Nombre
	}
	proyecto := "(sin asignar)"
	if f.ProyectoID != nil {
		proyecto = *f.ProyectoID
	}
	return material + "|" + proyecto
}
