package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrCustomerNotFound     = errors.New("cliente no encontrado")
	ErrOrderNotFound        = errors.New("pedido no encontrado")
	ErrOrderItemNotFound    = errors.New("línea de pedido no encontrada")
	ErrDeliveryNotFound     = errors.New("entrega no encontrada")
	ErrMovementNotFound     = errors.New("movimiento de stock no encontrado")
	ErrMovementLocked       = errors.New("el movimiento pertenece a una entrega")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrSessionInvalid       = errors.New("sesión inválida o expirada")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrConfirmationRequired = errors.New("la operación requiere confirmación")
)

// ValidationError error de validación con detalle por campo (campo -> motivo).
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un error con un único campo.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// Add agrega (o reemplaza) el motivo de un campo.
func (e *ValidationError) Add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = reason
}

// Empty indica si no se registró ningún campo.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil devuelve nil si no hay campos, para usar como `return verr.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// AsValidation extrae el ValidationError de una cadena de errores.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
