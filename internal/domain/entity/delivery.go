package entity

import "time"

// Tipos de entrega.
const (
	DeliveryKindDelivery = "DELIVERY"
	DeliveryKindReturn   = "RETURN"
)

// Delivery entrega (o devolución) de líneas de un pedido.
type Delivery struct {
	ID             string
	DeliveryNumber string
	OrderID        string
	DeliveryDate   time.Time
	Kind           string
	Notes          string
	Items          []DeliveryItem
	CreatedBy      string
	CreatedAt      time.Time
}

// LineRef referencia exactamente una línea de pedido: de catálogo (order_items)
// o custom (custom_order_items).
type LineRef struct {
	ID     string
	Custom bool
}

// DeliveryItem cantidad entregada de una línea de pedido.
// Line se resuelve al cargar la entrega; puede ser nil si la línea ya no existe.
type DeliveryItem struct {
	ID                string
	DeliveryID        string
	Ref               LineRef
	DeliveredQuantity int64
	Line              OrderLine
}

// Sign -1 para devoluciones, +1 para entregas.
func (d *Delivery) Sign() int64 {
	if d.Kind == DeliveryKindReturn {
		return -1
	}
	return 1
}
