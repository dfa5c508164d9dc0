package repository

import (
	"context"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// StockDrift producto cuyo stock cacheado no coincide con la suma del ledger.
type StockDrift struct {
	ProductID   string
	ProductCode string
	Cached      int64
	LedgerSum   int64
}

// StockMovementRepository define el puerto de persistencia del ledger de stock (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64, notes string) error
	List(ctx context.Context, q listquery.Query) ([]*entity.StockMovement, int, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error)
	Drift(ctx context.Context) ([]StockDrift, error)
}
