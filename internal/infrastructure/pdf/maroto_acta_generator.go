// Package pdf implementa la generación del Acta de Ajuste de Inventario:
// la constancia imprimible de un lote de conciliación registrado en el libro.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° de lote + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS DEL AJUSTE: usuario / proyecto / lote                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Proyecto | Dirección | Cantidad          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: movimientos / ingresos / egresos                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de auditoría                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/operia/stock-ajustes-api/internal/application/usecase"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
	"github.com/operia/stock-ajustes-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoActaGenerator implementa usecase.ActaPDFGenerator usando Maroto v2.
type MarotoActaGenerator struct {
	companyRepo repository.CompanyRepository
}

// NewMarotoActaGenerator construye el generador.
func NewMarotoActaGenerator(companyRepo repository.CompanyRepository) *MarotoActaGenerator {
	return &MarotoActaGenerator{companyRepo: companyRepo}
}

var _ usecase.ActaPDFGenerator = (*MarotoActaGenerator)(nil)

// GenerarActa genera el PDF del acta y devuelve sus bytes.
func (g *MarotoActaGenerator) GenerarActa(_ context.Context, acta usecase.ActaAjuste) ([]byte, error) {
	company, err := g.companyRepo.GetByID(acta.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("pdf: empresa del acta: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Ajuste de Inventario", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(actaHeaderRow(acta, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(datosAjusteRow(acta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tablaHeaderRow())
	for _, r := range tablaMovimientoRows(acta.Movimientos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(resumenRow(acta.Movimientos))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// actaHeaderRow: razón social + NIT (izq) y lote + fecha (der).
func actaHeaderRow(acta usecase.ActaAjuste, company *entity.Company) core.Row {
	fecha := acta.Fecha.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ACTA DE AJUSTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Lote "+abreviarID(acta.TransactionID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// datosAjusteRow: responsable y lote completo.
func datosAjusteRow(acta usecase.ActaAjuste) core.Row {
	usuario := acta.Usuario
	if usuario == "" {
		usuario = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL AJUSTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Registrado por: %s   |   Lote: %s", usuario, acta.TransactionID),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tablaHeaderRow: cabecera de la tabla de movimientos.
func tablaHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 5, align.Left),
		h("Proyecto", 3, align.Left),
		h("Dirección", 2, align.Center),
		h("Cantidad", 2, align.Right),
	)
}

// tablaMovimientoRows: una fila por movimiento del lote.
func tablaMovimientoRows(movimientos []*entity.Movimiento) []core.Row {
	result := make([]core.Row, 0, len(movimientos))
	for _, mv := range movimientos {
		dirColor := colorGreen
		if mv.Direccion == entity.DireccionEGRESO {
			dirColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				mv.NombreMaterial,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nombreProyecto(mv.ProyectoID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				mv.Direccion,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: dirColor},
			)),
			col.New(2).Add(text.New(
				mv.Cantidad.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// resumenRow: conteo de movimientos por dirección.
func resumenRow(movimientos []*entity.Movimiento) core.Row {
	var ingresos, egresos int
	for _, mv := range movimientos {
		if mv.Direccion == entity.DireccionINGRESO {
			ingresos++
		} else {
			egresos++
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Movimientos:"),
			label("Ingresos:"),
			label("Egresos:"),
		),
		col.New(4).Add(
			value(fmt.Sprintf("%d", len(movimientos)), nil),
			value(fmt.Sprintf("%d", ingresos), colorGreen),
			value(fmt.Sprintf("%d", egresos), colorRed),
		),
	)
}

// footerRow: leyenda de auditoría.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Acta generada por el sistema de conciliación de inventario. "+
				"Los valores sistema/planilla/delta de cada movimiento quedan registrados "+
				"en la observación del libro de movimientos.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nombreProyecto(proyectoID *string) string {
	if proyectoID == nil {
		return entity.NombreSinAsignar
	}
	return abreviarID(*proyectoID)
}

// abreviarID recorta un UUID a su primer bloque para encabezados legibles.
func abreviarID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
