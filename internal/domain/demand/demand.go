// Package demand define las estadísticas de demanda por cliente y producto.
package demand

import "time"

// Campos de orden permitidos para el reporte.
const (
	SortCustomerName  = "customer_name"
	SortProductName   = "product_name"
	SortOrderedTimes  = "ordered_times"
	SortTotalPieces   = "total_pieces"
	SortAvgPieces     = "avg_pieces_per_order"
	SortLastOrderDate = "last_order_date"
)

// SortFields allow-list de campos de orden.
var SortFields = []string{
	SortCustomerName, SortProductName, SortOrderedTimes,
	SortTotalPieces, SortAvgPieces, SortLastOrderDate,
}

// Stat fila agrupada por (cliente, producto).
type Stat struct {
	CustomerID    string
	CustomerCode  string
	CustomerName  string
	ProductID     string
	ProductCode   string
	ProductName   string
	OrderedTimes  int64 // pedidos distintos
	TotalPieces   int64
	LastOrderDate time.Time
}

// AvgPiecesPerOrder media simple total_pieces / ordered_times (0 si no hay pedidos).
func (s Stat) AvgPiecesPerOrder() float64 {
	return Average(s.TotalPieces, s.OrderedTimes)
}

// Average divide sin ponderar; 0 cuando times es 0.
func Average(pieces, times int64) float64 {
	if times == 0 {
		return 0
	}
	return float64(pieces) / float64(times)
}

// Line línea histórica de pedido usada para agrupar en memoria.
type Line struct {
	OrderID      string
	OrderDate    time.Time
	CustomerID   string
	CustomerCode string
	CustomerName string
	ProductID    string
	ProductCode  string
	ProductName  string
	Quantity     int64
}

// Group agrupa líneas por (cliente, producto) conservando el orden de primera aparición.
func Group(lines []Line) []Stat {
	type key struct{ customer, product string }
	idx := make(map[key]int)
	orders := make(map[key]map[string]struct{})
	var out []Stat
	for _, l := range lines {
		k := key{l.CustomerID, l.ProductID}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			orders[k] = make(map[string]struct{})
			out = append(out, Stat{
				CustomerID: l.CustomerID, CustomerCode: l.CustomerCode, CustomerName: l.CustomerName,
				ProductID: l.ProductID, ProductCode: l.ProductCode, ProductName: l.ProductName,
			})
		}
		s := &out[i]
		s.TotalPieces += l.Quantity
		if _, seen := orders[k][l.OrderID]; !seen {
			orders[k][l.OrderID] = struct{}{}
			s.OrderedTimes++
		}
		if l.OrderDate.After(s.LastOrderDate) {
			s.LastOrderDate = l.OrderDate
		}
	}
	return out
}
