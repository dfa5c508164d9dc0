package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliverySelect = `SELECT id, delivery_number, order_id, delivery_date, kind, notes, created_by, created_at FROM deliveries`

var deliveryList = listSpec{
	columns: map[string]string{
		"delivery_number": "delivery_number",
		"delivery_date":   "delivery_date",
		"kind":            "kind",
		"order_id":        "order_id",
		"created_at":      "created_at",
	},
	search:   []string{"delivery_number", "notes"},
	tiebreak: "id",
}

// DeliveryRepo entregas y devoluciones con sus items.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create inserta cabecera e items. Cada item va a order_item_id o custom_order_item_id según Ref.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	err := inTx(ctx, r.q, func(tx pgx.Tx) error {
		if d.DeliveryNumber == "" {
			n, err := nextNumber(ctx, tx, "deliveries", "delivery_number", entity.DeliveryNumberPrefix(d.Kind, d.DeliveryDate))
			if err != nil {
				return err
			}
			d.DeliveryNumber = n
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO deliveries (id, delivery_number, order_id, delivery_date, kind, notes, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, d.DeliveryNumber, d.OrderID, d.DeliveryDate, d.Kind, d.Notes, d.CreatedBy, d.CreatedAt,
		)
		if err != nil {
			return err
		}
		for pos, item := range d.Items {
			var catalogID, customID *string
			if item.Ref.Custom {
				customID = &item.Ref.ID
			} else {
				catalogID = &item.Ref.ID
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO delivery_items (id, delivery_id, position, order_item_id, custom_order_item_id, delivered_quantity)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, d.ID, pos, catalogID, customID, item.DeliveredQuantity)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOrderItemNotFound
		}
		return fmt.Errorf("insert delivery: %w", mapWriteErr(err))
	}
	return nil
}

// GetByID devuelve la entrega con sus items (sin resolver las líneas).
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, deliverySelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Delivery{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// List cabeceras de entregas con la cantidad de items.
func (r *DeliveryRepo) List(ctx context.Context, q listquery.Query) ([]*entity.Delivery, int, error) {
	w := deliveryList.where(q)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM deliveries`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}
	list, err := r.queryMany(ctx, deliverySelect+w.sql()+deliveryList.page(q, w), w.args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, r.loadItems(ctx, list)
}

// ListByOrder entregas de un pedido en orden cronológico, con items.
func (r *DeliveryRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Delivery, error) {
	list, err := r.queryMany(ctx, deliverySelect+` WHERE order_id = $1 ORDER BY delivery_date, created_at, id`, orderID)
	if err != nil {
		return nil, err
	}
	return list, r.loadItems(ctx, list)
}

// Delete borra la entrega (los items caen en cascada).
func (r *DeliveryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDeliveryNotFound
	}
	return nil
}

func (r *DeliveryRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// loadItems carga los items de varias entregas en una sola consulta.
func (r *DeliveryRepo) loadItems(ctx context.Context, list []*entity.Delivery) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.Delivery, len(list))
	for i, d := range list {
		ids[i] = d.ID
		byID[d.ID] = d
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, delivery_id, order_item_id, custom_order_item_id, delivered_quantity
		FROM delivery_items WHERE delivery_id = ANY($1)
		ORDER BY delivery_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			item                entity.DeliveryItem
			catalogID, customID *string
		)
		if err := rows.Scan(&item.ID, &item.DeliveryID, &catalogID, &customID, &item.DeliveredQuantity); err != nil {
			return fmt.Errorf("scan delivery item: %w", err)
		}
		if customID != nil {
			item.Ref = entity.LineRef{ID: *customID, Custom: true}
		} else {
			item.Ref = entity.LineRef{ID: deref(catalogID)}
		}
		d := byID[item.DeliveryID]
		d.Items = append(d.Items, item)
	}
	return rows.Err()
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	if err := row.Scan(&d.ID, &d.DeliveryNumber, &d.OrderID, &d.DeliveryDate, &d.Kind, &d.Notes, &d.CreatedBy, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
