package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"
	MovementTypeOUT        = "OUT"
	MovementTypeTRANSFER   = "TRANSFER"
	MovementTypeADJUSTMENT = "ADJUSTMENT"
	MovementTypeRESERVE    = "RESERVE"
	MovementTypeRELEASE    = "RELEASE"
)

// Tipos de referencia de un movimiento.
const (
	ReferenceTypeOrder      = "order"
	ReferenceTypeDelivery   = "delivery"
	ReferenceTypeAdjustment = "adjustment"
	ReferenceTypePurchase   = "purchase"
	ReferenceTypeTransfer   = "transfer"
)

// StockMovement es una entrada del ledger: delta con signo sobre el stock de un producto.
// Quantity positivo aumenta stock, negativo lo disminuye.
type StockMovement struct {
	ID            string
	ProductID     string
	Quantity      int64
	MovementType  string
	ReferenceType *string
	ReferenceID   *string
	Notes         string
	CreatedBy     string // UserID
	CreatedAt     time.Time
}

// IsMovementType valida contra el conjunto cerrado de tipos.
func IsMovementType(s string) bool {
	switch s {
	case MovementTypeIN, MovementTypeOUT, MovementTypeTRANSFER,
		MovementTypeADJUSTMENT, MovementTypeRESERVE, MovementTypeRELEASE:
		return true
	}
	return false
}

// IsReferenceType valida contra el conjunto cerrado de referencias.
func IsReferenceType(s string) bool {
	switch s {
	case ReferenceTypeOrder, ReferenceTypeDelivery, ReferenceTypeAdjustment,
		ReferenceTypePurchase, ReferenceTypeTransfer:
		return true
	}
	return false
}
