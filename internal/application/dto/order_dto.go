package dto

import "time"

// OrderLineRequest línea de pedido: de catálogo (product_id) o custom (code/name sin product_id).
type OrderLineRequest struct {
	ProductID string `json:"product_id,omitempty"`
	Code      string `json:"code,omitempty" validate:"omitempty,max=100"`
	Name      string `json:"name,omitempty" validate:"omitempty,max=200"`
	Unit      string `json:"unit,omitempty" validate:"omitempty,max=20"`
	Quantity  Number `json:"quantity"`
	UnitPrice *int64 `json:"unit_price,omitempty" validate:"omitempty,min=0"`
	Currency  string `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// CreateOrderRequest entrada para crear un pedido. OrderNumber se genera si viene vacío.
type CreateOrderRequest struct {
	OrderNumber     string             `json:"order_number,omitempty" validate:"omitempty,max=50"`
	OrderDate       string             `json:"order_date,omitempty"` // YYYY-MM-DD, hoy si vacío
	CustomerID      string             `json:"customer_id" validate:"required"`
	Currency        string             `json:"currency,omitempty" validate:"omitempty,len=3"`
	DeliveryAddress string             `json:"delivery_address,omitempty" validate:"max=500"`
	Lines           []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED SHIPPED DELIVERED CANCELLED"`
}

// OrderLineResponse línea de pedido en la salida; Custom distingue la variante.
type OrderLineResponse struct {
	ID           string `json:"id"`
	Custom       bool   `json:"custom"`
	ProductID    string `json:"product_id,omitempty"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	PriceDisplay string `json:"unit_price_display"`
	Currency     string `json:"currency"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	OrderDate       string              `json:"order_date"`
	CustomerID      string              `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	Status          string              `json:"status"`
	Currency        string              `json:"currency"`
	DeliveryAddress string              `json:"delivery_address"`
	TotalAmount     int64               `json:"total_amount"`
	TotalDisplay    string              `json:"total_amount_display"`
	Lines           []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos (sin líneas).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
