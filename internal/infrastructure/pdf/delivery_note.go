// Package pdf genera el albarán de entrega/devolución en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Albarán / Devolución  │  N° + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PEDIDO: número + cliente + dirección de entrega             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descripción | Unidad | Cant | P.Unit | Total│
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: filas / cantidad / total (+ aviso de monedas mixtas)   │
//	│  QR con el número de albarán + notas                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	appdelivery "github.com/jhoicas/Siparis-api/internal/application/delivery"
	"github.com/jhoicas/Siparis-api/internal/domain/delivery"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/pkg/money"
)

var _ appdelivery.NoteRenderer = (*DeliveryNoteRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorReturn  = &props.Color{Red: 160, Green: 40, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// DeliveryNoteRenderer implementa delivery.NoteRenderer usando Maroto v2.
type DeliveryNoteRenderer struct {
	company string
}

// NewDeliveryNoteRenderer construye el generador. company aparece como autor y en la cabecera.
func NewDeliveryNoteRenderer(company string) *DeliveryNoteRenderer {
	return &DeliveryNoteRenderer{company: company}
}

// RenderDeliveryNote genera el PDF y devuelve sus bytes.
func (g *DeliveryNoteRenderer) RenderDeliveryNote(_ context.Context, note appdelivery.Note) ([]byte, error) {
	if note.Delivery == nil {
		return nil, fmt.Errorf("pdf: albarán sin entrega")
	}
	accent := colorPrimary
	if note.Delivery.Kind == entity.DeliveryKindReturn {
		accent = colorReturn
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(note.Delivery)+" "+note.Delivery.DeliveryNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, note.Delivery, accent))
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.5}))
	m.AddRows(orderRow(note.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(accent))
	m.AddRows(tableRows(note.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))
	m.AddRows(footerRows(note.Footer, accent)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(qrRow(note.Delivery))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func title(d *entity.Delivery) string {
	if d.Kind == entity.DeliveryKindReturn {
		return "NOTA DE DEVOLUCIÓN"
	}
	return "ALBARÁN DE ENTREGA"
}

// headerRow: empresa (izq) y tipo + número + fecha (der).
func headerRow(company string, d *entity.Delivery, accent *props.Color) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, delivery.Placeholder), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(title(d), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: accent, Top: 1,
			}),
			text.New(d.DeliveryNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+d.DeliveryDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderRow: pedido de origen, cliente y dirección de entrega.
func orderRow(o *entity.Order) core.Row {
	number, customer, address := delivery.Placeholder, delivery.Placeholder, delivery.Placeholder
	if o != nil {
		number = nonEmpty(o.OrderNumber, delivery.Placeholder)
		customer = nonEmpty(o.CustomerName, delivery.Placeholder)
		address = nonEmpty(o.DeliveryAddress, delivery.Placeholder)
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PEDIDO "+number, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Dirección de entrega: "+address, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow(accent *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Unidad", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: accent})
}

// tableRows: una fila por item; cantidades y totales ya llevan signo.
func tableRows(rows []delivery.Row) []core.Row {
	out := make([]core.Row, 0, len(rows))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, r := range rows {
		out = append(out, row.New(7).Add(
			cell(r.Code, 2, align.Left),
			cell(r.Name, 4, align.Left),
			cell(r.Unit, 1, align.Center),
			cell(strconv.FormatInt(r.DeliveredQuantity, 10), 1, align.Right),
			cell(money.Format(r.UnitPrice, r.Currency), 2, align.Right),
			cell(money.Format(r.TotalPrice, r.Currency), 2, align.Right),
		))
	}
	return out
}

// footerRows: totales de las filas; con monedas mixtas se advierte que no hay conversión.
func footerRows(f delivery.Footer, accent *props.Color) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	rows := []core.Row{
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(label("Líneas / cantidad:")),
			col.New(3).Add(text.New(fmt.Sprintf("%d / %d", f.Rows, f.DeliveredQuantity), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			})),
		),
		row.New(8).Add(
			col.New(6),
			col.New(3).Add(label("TOTAL:")),
			col.New(3).Add(text.New(money.Format(f.TotalPrice, f.Currency), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: accent, Right: 1,
			})),
		),
	}
	if f.MixedCurrency {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Atención: las líneas usan monedas distintas; el total suma importes sin convertir.", props.Text{
				Size: 7, Align: align.Right, Color: colorReturn, Top: 1,
			}),
		)))
	}
	return rows
}

// qrRow: QR con el número del albarán y notas.
func qrRow(d *entity.Delivery) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(d.DeliveryNumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Notas", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 3}),
			text.New(nonEmpty(d.Notes, delivery.Placeholder), props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
			text.New("Firma y sello de recepción: ______________________", props.Text{Size: 8, Top: 30, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
