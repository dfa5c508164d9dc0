package dto

import "time"

// CreateProductRequest entrada para crear un producto. Price en unidades menores.
type CreateProductRequest struct {
	Code          string `json:"code" validate:"required,min=1,max=100"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Unit          string `json:"unit" validate:"omitempty,max=20"`
	Price         int64  `json:"price" validate:"min=0"`
	Currency      string `json:"currency" validate:"omitempty,len=3"`
	MinStockLevel int64  `json:"min_stock_level" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: solo vía movimientos).
type UpdateProductRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Unit          *string `json:"unit" validate:"omitempty,max=20"`
	Price         *int64  `json:"price" validate:"omitempty,min=0"`
	Currency      *string `json:"currency" validate:"omitempty,len=3"`
	MinStockLevel *int64  `json:"min_stock_level" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto. PriceDisplay es el precio en forma decimal.
type ProductResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	StockQuantity int64     `json:"stock_quantity"`
	MinStockLevel int64     `json:"min_stock_level"`
	BelowMinimum  bool      `json:"below_minimum"`
	Unit          string    `json:"unit"`
	Price         int64     `json:"price"`
	PriceDisplay  string    `json:"price_display"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
