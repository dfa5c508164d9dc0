// Package delivery aplana entregas y devoluciones en filas con signo y precio,
// y calcula el pie de totales sobre las filas visibles.
package delivery

import (
	"strings"
	"time"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

// Placeholder texto mostrado cuando falta un dato de la línea.
const Placeholder = "—"

// Row fila de entrega lista para mostrar. Cantidades y montos ya llevan el signo
// (negativos en devoluciones) y los montos están en unidades menores.
type Row struct {
	DeliveryID        string
	DeliveryNumber    string
	DeliveryDate      time.Time
	Kind              string
	OrderID           string
	OrderNumber       string
	ItemID            string
	Custom            bool
	ProductID         string
	Code              string
	Name              string
	Unit              string
	Currency          string
	UnitPrice         int64
	DeliveredQuantity int64
	TotalPrice        int64
}

// Footer totales de un conjunto de filas. Currency es la de la primera fila;
// MixedCurrency marca que alguna fila usa otra moneda (los totales no se convierten).
type Footer struct {
	Rows              int
	DeliveredQuantity int64
	TotalPrice        int64
	Currency          string
	MixedCurrency     bool
}

// BuildRows convierte una entrega (con sus líneas resueltas) en filas.
// order puede ser nil: el número de pedido se muestra como placeholder.
func BuildRows(d *entity.Delivery, order *entity.Order) []Row {
	if d == nil {
		return nil
	}
	sign := d.Sign()
	orderNumber := Placeholder
	if order != nil && order.OrderNumber != "" {
		orderNumber = order.OrderNumber
	}
	rows := make([]Row, 0, len(d.Items))
	for _, item := range d.Items {
		row := Row{
			DeliveryID:     d.ID,
			DeliveryNumber: d.DeliveryNumber,
			DeliveryDate:   d.DeliveryDate,
			Kind:           d.Kind,
			OrderID:        d.OrderID,
			OrderNumber:    orderNumber,
			ItemID:         item.ID,
			Custom:         item.Ref.Custom,
			Code:           Placeholder,
			Name:           Placeholder,
			Unit:           entity.DefaultUnit,
			Currency:       entity.DefaultCurrency,
		}
		if item.Line != nil {
			info := entity.DescribeLine(item.Line)
			row.ProductID = info.ProductID
			row.UnitPrice = info.UnitPrice
			row.Code = orDefault(info.Code, Placeholder)
			row.Name = orDefault(info.Name, Placeholder)
			row.Unit = orDefault(info.Unit, entity.DefaultUnit)
			row.Currency = orDefault(info.Currency, entity.DefaultCurrency)
		}
		row.DeliveredQuantity = sign * item.DeliveredQuantity
		row.TotalPrice = row.UnitPrice * row.DeliveredQuantity
		rows = append(rows, row)
	}
	return rows
}

// Summarize suma cantidades y montos de las filas dadas (las visibles tras filtrar).
func Summarize(rows []Row) Footer {
	f := Footer{Rows: len(rows), Currency: entity.DefaultCurrency}
	for i, r := range rows {
		if i == 0 {
			f.Currency = r.Currency
		} else if r.Currency != f.Currency {
			f.MixedCurrency = true
		}
		f.DeliveredQuantity += r.DeliveredQuantity
		f.TotalPrice += r.TotalPrice
	}
	return f
}

// Filter opciones de filtrado de filas antes de calcular el pie.
type Filter struct {
	Kind   string // DELIVERY, RETURN o vacío
	Search string // coincide con código o nombre (sin distinguir mayúsculas)
}

// Apply devuelve las filas que cumplen el filtro, conservando el orden.
func (f Filter) Apply(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Kind != "" && r.Kind != f.Kind {
			continue
		}
		if f.Search != "" && !containsFold(r.Code, f.Search) && !containsFold(r.Name, f.Search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
