// Package inventory contiene las reglas puras del ledger de stock: signo de cada
// movimiento, validación de cantidades y derivación del stock actual.
package inventory

import (
	"math"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

// Dirección explícita para ADJUSTMENT y TRANSFER.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// ValidateQuantity exige una magnitud entera positiva. Devuelve la cantidad como int64.
// NaN, infinito, cero, negativos y fracciones fallan con ValidationError en el campo "quantity".
func ValidateQuantity(q float64) (int64, error) {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, domain.NewValidationError("quantity", "must be a number")
	}
	if q <= 0 {
		return 0, domain.NewValidationError("quantity", "must be greater than zero")
	}
	if q != math.Trunc(q) || q > math.MaxInt32 {
		return 0, domain.NewValidationError("quantity", "must be a whole number")
	}
	return int64(q), nil
}

// SignFor devuelve +1 o -1 para un tipo de movimiento.
// IN y RELEASE suman, OUT y RESERVE restan; ADJUSTMENT y TRANSFER dependen de direction.
func SignFor(movementType, direction string) (int64, error) {
	switch movementType {
	case entity.MovementTypeIN, entity.MovementTypeRELEASE:
		return 1, nil
	case entity.MovementTypeOUT, entity.MovementTypeRESERVE:
		return -1, nil
	case entity.MovementTypeADJUSTMENT, entity.MovementTypeTRANSFER:
		switch direction {
		case DirectionIncrease:
			return 1, nil
		case DirectionDecrease:
			return -1, nil
		}
		return 0, domain.NewValidationError("direction", "must be increase or decrease")
	}
	return 0, domain.NewValidationError("movement_type", "unknown movement type")
}

// Resign aplica a magnitude el signo del movimiento original (orig >= 0 → +, si no −).
// Una edición nunca cambia la dirección del movimiento.
func Resign(original, magnitude int64) int64 {
	if original >= 0 {
		return magnitude
	}
	return -magnitude
}

// Sum deriva el stock a partir de las entradas del ledger.
func Sum(movements []*entity.StockMovement) int64 {
	var total int64
	for _, m := range movements {
		total += m.Quantity
	}
	return total
}

// Apply devuelve el stock resultante de aplicar delta. Con allowNegative=false,
// un resultado negativo falla con ErrInsufficientStock.
func Apply(current, delta int64, allowNegative bool) (int64, error) {
	next := current + delta
	if next < 0 && !allowNegative {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}
