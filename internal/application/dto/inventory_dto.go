package dto

import "time"

// CreateMovementRequest body para POST /api/stock-movements.
// Quantity es siempre una magnitud positiva; el signo lo decide el tipo (y Direction
// en ADJUSTMENT/TRANSFER).
type CreateMovementRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      Number `json:"quantity"`
	MovementType  string `json:"movement_type" validate:"required,oneof=IN OUT TRANSFER ADJUSTMENT RESERVE RELEASE"`
	Direction     string `json:"direction,omitempty" validate:"omitempty,oneof=increase decrease"`
	ReferenceType string `json:"reference_type,omitempty" validate:"omitempty,oneof=order delivery adjustment purchase transfer"`
	ReferenceID   string `json:"reference_id,omitempty"`
	Notes         string `json:"notes,omitempty" validate:"max=1000"`
}

// CreateTransferRequest body para POST /api/stock-movements/transfer.
type CreateTransferRequest struct {
	FromProductID string `json:"from_product_id" validate:"required"`
	ToProductID   string `json:"to_product_id"`
	Quantity      Number `json:"quantity"`
	Notes         string `json:"notes,omitempty" validate:"max=1000"`
}

// UpdateMovementRequest body para PUT /api/stock-movements/:id.
type UpdateMovementRequest struct {
	Quantity Number `json:"quantity"`
	Notes    string `json:"notes" validate:"max=1000"`
}

// StockMovementResponse salida de un movimiento.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Quantity      int64     `json:"quantity"`
	MovementType  string    `json:"movement_type"`
	ReferenceType *string   `json:"reference_type"`
	ReferenceID   *string   `json:"reference_id"`
	Notes         string    `json:"notes"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransferResponse los dos movimientos de una transferencia.
type TransferResponse struct {
	TransferID string                `json:"transfer_id"`
	Out        StockMovementResponse `json:"out"`
	In         StockMovementResponse `json:"in"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// LedgerResponse movimientos de un producto y conciliación con el stock cacheado.
type LedgerResponse struct {
	ProductID     string                  `json:"product_id"`
	StockQuantity int64                   `json:"stock_quantity"`
	LedgerSum     int64                   `json:"ledger_sum"`
	InSync        bool                    `json:"in_sync"`
	Movements     []StockMovementResponse `json:"movements"`
}
