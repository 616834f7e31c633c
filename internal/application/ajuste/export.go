package ajuste

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

// hojaStock y hojaInstrucciones son los nombres de hoja del archivo exportado.
const (
	hojaStock         = "Stock"
	hojaInstrucciones = "Instrucciones"
)

var instrucciones = []string{
	"Cómo ajustar el stock con esta planilla:",
	"",
	"1. No modifique los encabezados ni agregue columnas.",
	"2. Edite la columna 'Stock Actual' con la cantidad real contada.",
	"3. Para un material nuevo deje 'ID Material' vacío y complete 'Nombre'.",
	"4. Use el proyecto '" + entity.NombreSinAsignar + "' (o deje la celda vacía) para stock sin proyecto.",
	"5. Las cantidades deben ser números mayores o iguales a 0.",
	"6. No repita el mismo material y proyecto en dos filas.",
	"7. Importe el archivo desde el sistema: solo se registran las diferencias",
	"   contra el stock vigente (ingresos y egresos de ajuste).",
}

// Exportador genera la planilla de stock vigente de una empresa, con el mismo
// esquema de columnas que acepta el import. Reimportarla sin editar produce
// cero movimientos.
type Exportador struct {
	stocks repository.StockRepository
}

// NewExportador construye el exportador.
func NewExportador(stocks repository.StockRepository) *Exportador {
	return &Exportador{stocks: stocks}
}

// Exportar devuelve el xlsx con una fila por saldo (material, proyecto) más la
// hoja de instrucciones.
func (e *Exportador) Exportar(_ context.Context, companyID string) ([]byte, error) {
	saldos, err := e.stocks.ListSaldosByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("listar saldos: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", hojaStock)
	encabezados := []string{ColIDMaterial, ColNombre, ColSKU, ColDescripcion, ColStockActual, ColProyecto}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hojaStock, celda, h); err != nil {
			return nil, fmt.Errorf("escribir encabezado: %w", err)
		}
	}

	for i, s := range saldos {
		proyecto := entity.NombreSinAsignar
		if s.ProyectoID != nil {
			proyecto = s.NombreProyecto
		}
		valores := []any{s.MaterialID, s.Nombre, s.SKU, s.Descripcion, s.Cantidad.String(), proyecto}
		for j, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(hojaStock, celda, v); err != nil {
				return nil, fmt.Errorf("escribir fila %d: %w", i+2, err)
			}
		}
	}

	if _, err := f.NewSheet(hojaInstrucciones); err != nil {
		return nil, fmt.Errorf("crear hoja de instrucciones: %w", err)
	}
	for i, linea := range instrucciones {
		celda, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue(hojaInstrucciones, celda, linea); err != nil {
			return nil, fmt.Errorf("escribir instrucciones: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar planilla: %w", err)
	}
	return buf.Bytes(), nil
}
