package ajuste

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/operia/stock-ajustes-api/internal/domain"
)

// Encabezados exactos de la planilla de stock (los mismos que produce el export).
const (
	ColIDMaterial  = "ID Material"
	ColNombre      = "Nombre"
	ColSKU         = "SKU"
	ColDescripcion = "Descripción"
	ColStockActual = "Stock Actual"
	ColProyecto    = "Proyecto"
)

// FilaCruda es una fila de la planilla sin validar, con los valores por encabezado.
type FilaCruda struct {
	Linea   int // número de fila en la hoja; la 1 es el encabezado
	Valores map[string]string
}

// Parsear decodifica el contenido xlsx y devuelve los encabezados y las filas de
// datos en orden. Filas completamente vacías se descartan. Devuelve
// domain.ErrArchivoInvalido si el archivo no es una planilla legible o no tiene
// filas de datos.
func Parsear(contenido []byte) ([]string, []FilaCruda, error) {
	f, err := excelize.OpenReader(bytes.NewReader(contenido))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrArchivoInvalido, err)
	}
	defer f.Close()

	hojas := f.GetSheetList()
	if len(hojas) == 0 {
		return nil, nil, fmt.Errorf("%w: sin hojas", domain.ErrArchivoInvalido)
	}
	// La primera hoja es la de datos; "Instrucciones" u otras se ignoran.
	filas, err := f.GetRows(hojas[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrArchivoInvalido, err)
	}
	if len(filas) == 0 {
		return nil, nil, fmt.Errorf("%w: hoja vacía", domain.ErrArchivoInvalido)
	}

	encabezados := make([]string, 0, len(filas[0]))
	for _, h := range filas[0] {
		encabezados = append(encabezados, strings.TrimSpace(h))
	}

	var crudas []FilaCruda
	for i, fila := range filas[1:] {
		vacia := true
		valores := make(map[string]string, len(encabezados))
		for j, h := range encabezados {
			var v string
			if j < len(fila) {
				v = strings.TrimSpace(fila[j])
			}
			if v != "" {
				vacia = false
			}
			valores[h] = v
		}
		if vacia {
			continue
		}
		crudas = append(crudas, FilaCruda{Linea: i + 2, Valores: valores})
	}
	if len(crudas) == 0 {
		return nil, nil, fmt.Errorf("%w: sin filas de datos", domain.ErrArchivoInvalido)
	}
	return encabezados, crudas, nil
}
