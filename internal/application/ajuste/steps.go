package ajuste

import "fmt"

// Pasos del flujo de conciliación. La máquina es independiente de cualquier UI:
// un valor Paso más un reductor puro de transiciones.
const (
	PasoSeleccionArchivo = "seleccion_archivo"
	PasoResolverNuevos   = "resolver_nuevos"
	PasoRevisarCambios   = "revisar_cambios"
	PasoConfirmado       = "confirmado"
)

// Paso es el estado del flujo más los datos que la transición necesita.
type Paso struct {
	Nombre      string   `json:"paso"`
	FilasNuevas int      `json:"filas_nuevas,omitempty"` // filas sin identificador pendientes de decisión
	Politica    Politica `json:"politica,omitempty"`     // decisión tomada en resolver_nuevos
}

// Evento dispara una transición del flujo.
type Evento interface{ evento() }

// EventoArchivoValidado la planilla se parseó y validó sin errores.
type EventoArchivoValidado struct{ FilasNuevas int }

// EventoPoliticaElegida el usuario decidió qué hacer con las filas nuevas.
type EventoPoliticaElegida struct{ Politica Politica }

// EventoCambiosAceptados el usuario confirmó los movimientos propuestos.
type EventoCambiosAceptados struct{}

// EventoReiniciar vuelve al inicio (nuevo archivo); válido desde cualquier paso.
type EventoReiniciar struct{}

func (EventoArchivoValidado) evento()  {}
func (EventoPoliticaElegida) evento()  {}
func (EventoCambiosAceptados) evento() {}
func (EventoReiniciar) evento()        {}

// PasoInicial devuelve el estado de arranque del flujo.
func PasoInicial() Paso { return Paso{Nombre: PasoSeleccionArchivo} }

// Reducir aplica un evento al paso actual y devuelve el siguiente. Una
// combinación paso/evento no contemplada es un error, nunca un cambio silencioso.
func Reducir(p Paso, ev Evento) (Paso, error) {
	if _, ok := ev.(EventoReiniciar); ok {
		return PasoInicial(), nil
	}
	switch p.Nombre {
	case PasoSeleccionArchivo:
		if e, ok := ev.(EventoArchivoValidado); ok {
			if e.FilasNuevas > 0 {
				return Paso{Nombre: PasoResolverNuevos, FilasNuevas: e.FilasNuevas}, nil
			}
			return Paso{Nombre: PasoRevisarCambios}, nil
		}
	case PasoResolverNuevos:
		if e, ok := ev.(EventoPoliticaElegida); ok {
			if e.Politica != PoliticaCrearMateriales && e.Politica != PoliticaSoloNombre {
				return p, fmt.Errorf("política inválida: %q", e.Politica)
			}
			return Paso{Nombre: PasoRevisarCambios, FilasNuevas: p.FilasNuevas, Politica: e.Politica}, nil
		}
	case PasoRevisarCambios:
		if _, ok := ev.(EventoCambiosAceptados); ok {
			return Paso{Nombre: PasoConfirmado, FilasNuevas: p.FilasNuevas, Politica: p.Politica}, nil
		}
	}
	return p, fmt.Errorf("transición inválida: evento %T en paso %q", ev, p.Nombre)
}
