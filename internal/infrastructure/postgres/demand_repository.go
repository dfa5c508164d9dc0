package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Siparis-api/internal/domain/demand"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

var _ repository.DemandRepository = (*DemandRepo)(nil)

// demandSort columnas de orden sobre el conjunto agrupado.
var demandSort = map[string]string{
	demand.SortCustomerName:  "c.name",
	demand.SortProductName:   "p.name",
	demand.SortOrderedTimes:  "ordered_times",
	demand.SortTotalPieces:   "total_pieces",
	demand.SortAvgPieces:     "SUM(oi.quantity)::float8 / COUNT(DISTINCT o.id)",
	demand.SortLastOrderDate: "last_order_date",
}

const demandFrom = `
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	JOIN customers c ON c.id = o.customer_id
	JOIN products p ON p.id = oi.product_id
	WHERE o.order_date BETWEEN $1::date AND $2::date
	  AND ($3 = '' OR o.customer_id = $3)`

const demandGroup = ` GROUP BY o.customer_id, c.code, c.name, oi.product_id, p.code, p.name`

// DemandRepo agrega la demanda en la BD. Solo cuentan líneas de catálogo.
type DemandRepo struct {
	q Querier
}

// NewDemandRepository construye el adaptador.
func NewDemandRepository(q Querier) *DemandRepo {
	return &DemandRepo{q: q}
}

// Report agrupa por (cliente, producto), ordena y pagina en SQL. Limit 0 devuelve todos los grupos.
func (r *DemandRepo) Report(ctx context.Context, f repository.DemandFilter) ([]demand.Stat, int, error) {
	args := []any{f.From.Format("2006-01-02"), f.To.Format("2006-01-02"), f.CustomerID}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM (SELECT 1`+demandFrom+demandGroup+`) g`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count demand: %w", err)
	}

	col, ok := demandSort[f.Sort]
	if !ok {
		col = demandSort[demand.SortTotalPieces]
	}
	dir := "ASC"
	if f.Direction == "desc" {
		dir = "DESC"
	}
	query := `
		SELECT o.customer_id, c.code, c.name, oi.product_id, p.code, p.name,
		       COUNT(DISTINCT o.id) AS ordered_times,
		       SUM(oi.quantity)::BIGINT AS total_pieces,
		       MAX(o.order_date) AS last_order_date` +
		demandFrom + demandGroup +
		fmt.Sprintf(" ORDER BY %s %s, c.name, p.name", col, dir)
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += " LIMIT $4 OFFSET $5"
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("demand report: %w", err)
	}
	defer rows.Close()
	var out []demand.Stat
	for rows.Next() {
		var s demand.Stat
		if err := rows.Scan(&s.CustomerID, &s.CustomerCode, &s.CustomerName, &s.ProductID, &s.ProductCode, &s.ProductName,
			&s.OrderedTimes, &s.TotalPieces, &s.LastOrderDate); err != nil {
			return nil, 0, fmt.Errorf("scan demand: %w", err)
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// Lines líneas de catálogo sin agrupar (customerID vacío = todos).
func (r *DemandRepo) Lines(ctx context.Context, customerID string, from, to time.Time) ([]demand.Line, error) {
	rows, err := r.q.Query(ctx, `
		SELECT o.id, o.order_date, o.customer_id, c.code, c.name, oi.product_id, p.code, p.name, oi.quantity`+
		demandFrom+` ORDER BY o.order_date, o.id, oi.position`,
		from.Format("2006-01-02"), to.Format("2006-01-02"), customerID)
	if err != nil {
		return nil, fmt.Errorf("demand lines: %w", err)
	}
	defer rows.Close()
	var out []demand.Line
	for rows.Next() {
		var l demand.Line
		if err := rows.Scan(&l.OrderID, &l.OrderDate, &l.CustomerID, &l.CustomerCode, &l.CustomerName,
			&l.ProductID, &l.ProductCode, &l.ProductName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan demand line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
