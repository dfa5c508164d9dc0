package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// OrderRepository persistencia de pedidos y sus líneas (catálogo y custom).
type OrderRepository interface {
	// Create inserta cabecera y líneas. Con OrderNumber vacío asigna el siguiente
	// número del día (entity.OrderNumberPrefix) en la misma transacción.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve el pedido con sus líneas resueltas.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// List devuelve solo cabeceras.
	List(ctx context.Context, q listquery.Query) ([]*entity.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
