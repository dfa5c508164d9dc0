package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.order_number, o.order_date, o.customer_id, COALESCE(c.name, ''), o.status, o.currency,
	       o.delivery_address, o.total_amount, o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN customers c ON c.id = o.customer_id`

var orderList = listSpec{
	columns: map[string]string{
		"order_number":  "o.order_number",
		"order_date":    "o.order_date",
		"customer_name": "c.name",
		"customer_id":   "o.customer_id",
		"status":        "o.status",
		"currency":      "o.currency",
		"total_amount":  "o.total_amount",
	},
	search:   []string{"o.order_number", "c.name"},
	tiebreak: "o.id",
}

// OrderRepo pedidos con líneas de catálogo (order_items) y custom (custom_order_items).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta cabecera y líneas en una sola tx (savepoint si ya hay una abierta).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	err := inTx(ctx, r.q, func(tx pgx.Tx) error {
		if o.OrderNumber == "" {
			n, err := nextNumber(ctx, tx, "orders", "order_number", entity.OrderNumberPrefix(o.OrderDate))
			if err != nil {
				return err
			}
			o.OrderNumber = n
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (id, order_number, order_date, customer_id, status, currency, delivery_address, total_amount, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			o.ID, o.OrderNumber, o.OrderDate, o.CustomerID, o.Status, o.Currency, o.DeliveryAddress, o.TotalAmount, o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			return err
		}
		for pos, line := range o.Lines {
			switch l := line.(type) {
			case entity.CatalogLine:
				_, err = tx.Exec(ctx, `
					INSERT INTO order_items (id, order_id, position, product_id, quantity, unit_price, currency)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					l.ID, o.ID, pos, l.ProductID, l.Quantity, l.UnitPrice, l.Currency)
			case entity.CustomLine:
				_, err = tx.Exec(ctx, `
					INSERT INTO custom_order_items (id, order_id, position, code, name, unit, quantity, unit_price, currency)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
					l.ID, o.ID, pos, l.Code, l.Name, l.Unit, l.Quantity, l.UnitPrice, l.Currency)
			default:
				err = fmt.Errorf("tipo de línea no soportado %T", line)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert order: %w", mapWriteErr(err))
	}
	return nil
}

// GetByID devuelve el pedido con sus líneas en el orden de alta.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT oi.id, false, oi.product_id, COALESCE(p.code, ''), COALESCE(p.name, ''), COALESCE(p.unit, ''),
		       oi.quantity, oi.unit_price, oi.currency, oi.position
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		UNION ALL
		SELECT ci.id, true, NULL, ci.code, ci.name, ci.unit, ci.quantity, ci.unit_price, ci.currency, ci.position
		FROM custom_order_items ci
		WHERE ci.order_id = $1
		ORDER BY 10, 1`, id)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			lineID, code, name, unit, currency string
			productID                          *string
			custom                             bool
			qty, price                         int64
			pos                                int
		)
		if err := rows.Scan(&lineID, &custom, &productID, &code, &name, &unit, &qty, &price, &currency, &pos); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		if custom {
			o.Lines = append(o.Lines, entity.CustomLine{ID: lineID, OrderID: o.ID, Code: code, Name: name,
				Unit: unit, Quantity: qty, UnitPrice: price, Currency: currency})
			continue
		}
		o.Lines = append(o.Lines, entity.CatalogLine{ID: lineID, OrderID: o.ID, ProductID: deref(productID),
			ProductCode: code, ProductName: name, Unit: unit, Quantity: qty, UnitPrice: price, Currency: currency})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

// List devuelve cabeceras (sin líneas).
func (r *OrderRepo) List(ctx context.Context, q listquery.Query) ([]*entity.Order, int, error) {
	w := orderList.where(q)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM orders o LEFT JOIN customers c ON c.id = o.customer_id`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	rows, err := r.q.Query(ctx, orderSelect+w.sql()+orderList.page(q, w), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Delete borra el pedido y sus líneas. Con entregas registradas devuelve ErrConflict.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", mapWriteErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.OrderDate, &o.CustomerID, &o.CustomerName, &o.Status, &o.Currency,
		&o.DeliveryAddress, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
