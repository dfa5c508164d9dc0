package dto

import "time"

// DeliveryItemRequest referencia a una línea del pedido. Custom indica custom_order_items.
type DeliveryItemRequest struct {
	OrderItemID       string `json:"order_item_id" validate:"required"`
	Custom            bool   `json:"custom"`
	DeliveredQuantity Number `json:"delivered_quantity"`
}

// CreateDeliveryRequest entrada para registrar una entrega o devolución.
type CreateDeliveryRequest struct {
	OrderID        string                `json:"order_id" validate:"required"`
	DeliveryNumber string                `json:"delivery_number,omitempty" validate:"max=50"`
	DeliveryDate   string                `json:"delivery_date,omitempty"` // YYYY-MM-DD, hoy si vacío
	Kind           string                `json:"kind" validate:"required,oneof=DELIVERY RETURN"`
	Notes          string                `json:"notes,omitempty" validate:"max=1000"`
	Items          []DeliveryItemRequest `json:"items" validate:"required,min=1,dive"`
}

// DeliveryResponse cabecera de entrega.
type DeliveryResponse struct {
	ID             string    `json:"id"`
	DeliveryNumber string    `json:"delivery_number"`
	OrderID        string    `json:"order_id"`
	DeliveryDate   string    `json:"delivery_date"`
	Kind           string    `json:"kind"`
	Notes          string    `json:"notes"`
	Items          int       `json:"items"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// DeliveryListResponse lista paginada de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// DeliveryLineResponse fila de entrega con signo aplicado. Los *_display son decimales.
type DeliveryLineResponse struct {
	DeliveryID        string `json:"delivery_id"`
	DeliveryNumber    string `json:"delivery_number"`
	DeliveryDate      string `json:"delivery_date"`
	Kind              string `json:"kind"`
	OrderNumber       string `json:"order_number"`
	ItemID            string `json:"item_id"`
	Custom            bool   `json:"custom"`
	ProductID         string `json:"product_id,omitempty"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	Unit              string `json:"unit"`
	Currency          string `json:"currency"`
	UnitPrice         int64  `json:"unit_price"`
	UnitPriceDisplay  string `json:"unit_price_display"`
	DeliveredQuantity int64  `json:"delivered_quantity"`
	TotalPrice        int64  `json:"total_price"`
	TotalPriceDisplay string `json:"total_price_display"`
}

// DeliveryFooterResponse totales de las filas visibles.
type DeliveryFooterResponse struct {
	Rows              int    `json:"rows"`
	DeliveredQuantity int64  `json:"delivered_quantity"`
	TotalPrice        int64  `json:"total_price"`
	TotalPriceDisplay string `json:"total_price_display"`
	Currency          string `json:"currency"`
	MixedCurrency     bool   `json:"mixed_currency"`
}

// DeliveryLinesResponse filas + pie.
type DeliveryLinesResponse struct {
	Lines  []DeliveryLineResponse `json:"lines"`
	Footer DeliveryFooterResponse `json:"footer"`
}
