package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/pkg/logger"
)

// errorMapping código público y status HTTP de un error de dominio.
type errorMapping struct {
	target  error
	code    string
	status  int
	message string
}

// El orden importa: los not-found específicos antes que el genérico.
var errorTable = []errorMapping{
	{domain.ErrProductNotFound, "PRODUCT_NOT_FOUND", fiber.StatusNotFound, "producto no encontrado"},
	{domain.ErrCustomerNotFound, "CUSTOMER_NOT_FOUND", fiber.StatusNotFound, "cliente no encontrado"},
	{domain.ErrOrderItemNotFound, "ORDER_ITEM_NOT_FOUND", fiber.StatusNotFound, "línea de pedido no encontrada"},
	{domain.ErrOrderNotFound, "ORDER_NOT_FOUND", fiber.StatusNotFound, "pedido no encontrado"},
	{domain.ErrDeliveryNotFound, "DELIVERY_NOT_FOUND", fiber.StatusNotFound, "entrega no encontrada"},
	{domain.ErrMovementNotFound, "MOVEMENT_NOT_FOUND", fiber.StatusNotFound, "movimiento no encontrado"},
	{domain.ErrUserNotFound, "USER_NOT_FOUND", fiber.StatusNotFound, "usuario no encontrado"},
	{domain.ErrNotFound, "NOT_FOUND", fiber.StatusNotFound, "recurso no encontrado"},
	{domain.ErrSessionInvalid, "SESSION_INVALID", fiber.StatusUnauthorized, "sesión inválida o expirada"},
	{domain.ErrUnauthorized, "UNAUTHORIZED", fiber.StatusUnauthorized, "no autorizado"},
	{domain.ErrForbidden, "FORBIDDEN", fiber.StatusForbidden, "acceso denegado"},
	{domain.ErrEmailAlreadyExists, "DUPLICATE", fiber.StatusConflict, "el email ya está registrado"},
	{domain.ErrDuplicate, "DUPLICATE", fiber.StatusConflict, "recurso duplicado"},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK", fiber.StatusConflict, "stock insuficiente"},
	{domain.ErrMovementLocked, "CONFLICT", fiber.StatusConflict, "el movimiento pertenece a una entrega; modifique la entrega"},
	{domain.ErrConflict, "CONFLICT", fiber.StatusConflict, "conflicto con el estado actual"},
	{domain.ErrConfirmationRequired, "CONFIRMATION_REQUIRED", fiber.StatusPreconditionRequired, "agregue ?confirm=true para confirmar"},
}

// classify traduce err a (status, cuerpo). Errores desconocidos -> 500 INTERNAL sin detalle.
func classify(err error) (int, dto.ErrorResponse) {
	if verr, ok := domain.AsValidation(err); ok {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "datos inválidos", Fields: verr.Fields}
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "datos inválidos"}
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, dto.ErrorResponse{Code: m.code, Message: m.message}
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "INVALID_BODY"
	}
	if status >= 500 {
		return "INTERNAL"
	}
	return "ERROR"
}

// respondError escribe la respuesta JSON de error.
func respondError(c *fiber.Ctx, err error) error {
	status, body := classify(err)
	return c.Status(status).JSON(body)
}

// NewErrorHandler ErrorHandler de fiber: todo error devuelto por un handler pasa por aquí.
// Los 5xx se registran, como mucho una vez por intervalo y código.
func NewErrorHandler(log *logger.Logger, interval time.Duration) fiber.ErrorHandler {
	throttle := logger.NewThrottle(interval)
	return func(c *fiber.Ctx, err error) error {
		status, body := classify(err)
		if status >= fiber.StatusInternalServerError && throttle.Allow(body.Code+" "+c.Route().Path) {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg("error no controlado")
		}
		return c.Status(status).JSON(body)
	}
}

// errInvalidBody cuerpo JSON ilegible.
var errInvalidBody = fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
