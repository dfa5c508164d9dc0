package repository

import (
	"context"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica los datos de catálogo. No toca stock_quantity (solo vía ledger).
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, quantity int64) error
	// UpsertByCode crea o actualiza por código; devuelve true si lo creó.
	UpsertByCode(ctx context.Context, product *entity.Product) (bool, error)
	List(ctx context.Context, q listquery.Query) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
