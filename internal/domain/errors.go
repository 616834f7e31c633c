package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrArchivoInvalido el archivo no pudo decodificarse como planilla o no tiene filas de datos.
	ErrArchivoInvalido = errors.New("archivo de planilla inválido")
	// ErrValidacion la planilla tiene filas inválidas; el import se detiene completo.
	ErrValidacion = errors.New("la planilla contiene filas inválidas")
	// ErrCreacionMateriales la creación de materiales nuevos falló; ningún material quedó creado.
	ErrCreacionMateriales = errors.New("creación de materiales nuevos fallida")
)
