package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/usecase"
)

// ExchangeRateHandler tipos de cambio informativos.
type ExchangeRateHandler struct {
	uc *usecase.ExchangeRateUseCase
}

// NewExchangeRateHandler construye el handler.
func NewExchangeRateHandler(uc *usecase.ExchangeRateUseCase) *ExchangeRateHandler {
	return &ExchangeRateHandler{uc: uc}
}

// List godoc
// @Summary      Tipos de cambio vigentes
// @Tags         exchange-rates
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExchangeRateResponse
// @Router       /api/exchange-rates [get]
func (h *ExchangeRateHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Guardar tipo de cambio (admin)
// @Tags         exchange-rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        currency  path  string                         true  "Código ISO 4217"
// @Param        body      body  dto.UpsertExchangeRateRequest  true  "rate"
// @Success      200  {object}  dto.ExchangeRateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/exchange-rates/{currency} [put]
func (h *ExchangeRateHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertExchangeRateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Upsert(c.Context(), c.Params("currency"), in.Rate)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
