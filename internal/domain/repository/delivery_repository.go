package repository

import (
	"context"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// DeliveryRepository persistencia de entregas y devoluciones.
// Los items se devuelven con Ref; la línea de pedido la resuelve el caso de uso.
type DeliveryRepository interface {
	// Create con DeliveryNumber vacío asigna el siguiente número del día
	// (entity.DeliveryNumberPrefix) en la misma transacción.
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	List(ctx context.Context, q listquery.Query) ([]*entity.Delivery, int, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Delivery, error)
	Delete(ctx context.Context, id string) error
}
