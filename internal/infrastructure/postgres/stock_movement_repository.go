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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, quantity, movement_type, reference_type, reference_id, notes, created_by, created_at`

var movementList = listSpec{
	columns: map[string]string{
		"created_at":     "created_at",
		"quantity":       "quantity",
		"movement_type":  "movement_type",
		"product_id":     "product_id",
		"reference_type": "reference_type",
		"reference_id":   "reference_id",
	},
	search:   []string{"notes"},
	tiebreak: "id",
}

// StockMovementRepo ledger de stock (solo inserción salvo corrección de cantidad/notas).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento ya firmado.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.ProductID, m.Quantity, m.MovementType, m.ReferenceType, m.ReferenceID, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id)
}

// GetForUpdate obtiene el movimiento bloqueando la fila.
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockMovementRepo) getOne(ctx context.Context, query, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// UpdateQuantity reemplaza cantidad (ya firmada) y notas.
func (r *StockMovementRepo) UpdateQuantity(ctx context.Context, id string, quantity int64, notes string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE stock_movements SET quantity = $2, notes = $3 WHERE id = $1`, id, quantity, notes)
	if err != nil {
		return fmt.Errorf("update stock movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// List lista movimientos con filtros y paginación.
func (r *StockMovementRepo) List(ctx context.Context, q listquery.Query) ([]*entity.StockMovement, int, error) {
	w := movementList.where(q)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}
	list, err := r.queryMany(ctx, `SELECT `+movementColumns+` FROM stock_movements`+w.sql()+movementList.page(q, w), w.args...)
	return list, total, err
}

// ListByProduct movimientos de un producto en orden cronológico.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.queryMany(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY created_at, id`, productID)
}

// ListByReference movimientos de un documento (entrega, transferencia...).
func (r *StockMovementRepo) ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error) {
	return r.queryMany(ctx, `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at, id`, referenceType, referenceID)
}

// Drift productos cuyo stock cacheado difiere de la suma del ledger.
func (r *StockMovementRepo) Drift(ctx context.Context) ([]repository.StockDrift, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.code, p.stock_quantity, COALESCE(SUM(m.quantity), 0)::BIGINT AS ledger
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id
		GROUP BY p.id, p.code, p.stock_quantity
		HAVING p.stock_quantity <> COALESCE(SUM(m.quantity), 0)
		ORDER BY p.code`)
	if err != nil {
		return nil, fmt.Errorf("stock drift: %w", err)
	}
	defer rows.Close()
	var out []repository.StockDrift
	for rows.Next() {
		var d repository.StockDrift
		if err := rows.Scan(&d.ProductID, &d.ProductCode, &d.Cached, &d.LedgerSum); err != nil {
			return nil, fmt.Errorf("scan stock drift: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *StockMovementRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(&m.ID, &m.ProductID, &m.Quantity, &m.MovementType, &m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
