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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, stock_quantity, min_stock_level, unit, price, currency, created_at, updated_at`

var productList = listSpec{
	columns: map[string]string{
		"code":           "code",
		"name":           "name",
		"stock_quantity": "stock_quantity",
		"price":          "price",
		"created_at":     "created_at",
		"unit":           "unit",
		"currency":       "currency",
	},
	search:   []string{"code", "name"},
	tiebreak: "id",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Code, p.Name, p.StockQuantity, p.MinStockLevel, p.Unit, p.Price, p.Currency, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

// GetForUpdate lee el producto bloqueando la fila hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos de catálogo. No modifica stock_quantity (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET code = $2, name = $3, min_stock_level = $4, unit = $5, price = $6, currency = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.MinStockLevel, p.Unit, p.Price, p.Currency, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStock fija el stock cacheado (usado por el ledger dentro de la tx).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, quantity int64) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// UpsertByCode inserta o actualiza los datos de catálogo por código; el stock no se toca.
func (r *ProductRepo) UpsertByCode(ctx context.Context, p *entity.Product) (bool, error) {
	var inserted bool
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, 0, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name, min_stock_level = EXCLUDED.min_stock_level, unit = EXCLUDED.unit,
			price = EXCLUDED.price, currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`,
		p.ID, p.Code, p.Name, p.MinStockLevel, p.Unit, p.Price, p.Currency, p.UpdatedAt,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert product: %w", err)
	}
	return inserted, nil
}

// List lista productos con filtros, búsqueda por código/nombre y paginación.
func (r *ProductRepo) List(ctx context.Context, q listquery.Query) ([]*entity.Product, int, error) {
	w := productList.where(q)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	query := `SELECT ` + productColumns + ` FROM products` + w.sql() + productList.page(q, w)
	list, err := r.queryMany(ctx, query, w.args...)
	return list, total, err
}

// ListLowStock productos con stock en o por debajo del mínimo, los más críticos primero.
func (r *ProductRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	return r.queryMany(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE stock_quantity <= min_stock_level
		ORDER BY stock_quantity - min_stock_level, code
		LIMIT $1`, limit)
}

// Delete elimina un producto por ID. Con movimientos o pedidos asociados devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.StockQuantity, &p.MinStockLevel, &p.Unit, &p.Price, &p.Currency, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
