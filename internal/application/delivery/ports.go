package delivery

import (
	"context"

	"github.com/jhoicas/Siparis-api/internal/domain/delivery"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

// TxRunner transacción con los repositorios que toca una entrega: cabecera/items y ledger.
type TxRunner interface {
	RunDelivery(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error
}

// StockPoster escribe movimientos del ledger dentro de una tx abierta.
// Lo implementa inventory.RegisterMovementUseCase.
type StockPoster interface {
	PostInTx(ctx context.Context, movRepo repository.StockMovementRepository, productRepo repository.ProductRepository, m *entity.StockMovement) error
}

// Note datos del albarán de entrega.
type Note struct {
	Delivery *entity.Delivery
	Order    *entity.Order
	Rows     []delivery.Row
	Footer   delivery.Footer
}

// NoteRenderer genera el PDF del albarán.
type NoteRenderer interface {
	RenderDeliveryNote(ctx context.Context, note Note) ([]byte, error)
}
