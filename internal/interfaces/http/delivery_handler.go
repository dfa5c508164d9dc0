package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	appdelivery "github.com/jhoicas/Siparis-api/internal/application/delivery"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/delivery"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

// DeliveryHandler maneja entregas y devoluciones.
type DeliveryHandler struct {
	uc *appdelivery.UseCase
}

// NewDeliveryHandler construye el handler de entregas.
func NewDeliveryHandler(uc *appdelivery.UseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrega o devolución
// @Description  Las líneas de catálogo mueven stock en la misma transacción (OUT en entregas, IN en devoluciones).
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "order_id, kind, items"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"
// @Param        f.kind      query  string  false  "DELIVERY | RETURN"
// @Param        f.order_id  query  string  false  "ID del pedido"
// @Success      200  {object}  dto.DeliveryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, appdelivery.ListSchema)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrega
// @Description  Compensa en el ledger los movimientos de stock que generó.
// @Tags         deliveries
// @Security     Bearer
// @Param        id       path   string  true  "ID de la entrega"
// @Param        confirm  query  bool    true  "Debe ser true"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	if err := requireConfirm(c); err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Lines godoc
// @Summary      Filas de una entrega con pie
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la entrega"
// @Param        kind    query  string  false  "DELIVERY | RETURN"
// @Param        search  query  string  false  "Código o nombre"
// @Success      200  {object}  dto.DeliveryLinesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/lines [get]
func (h *DeliveryHandler) Lines(c *fiber.Ctx) error {
	f, err := lineFilter(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Lines(c.Context(), c.Params("id"), f)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Albarán en PDF
// @Tags         deliveries
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la entrega"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/pdf [get]
func (h *DeliveryHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.NotePDF(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

// lineFilter lee kind y search de la query.
func lineFilter(c *fiber.Ctx) (delivery.Filter, error) {
	kind := strings.ToUpper(strings.TrimSpace(c.Query("kind")))
	if kind != "" && kind != entity.DeliveryKindDelivery && kind != entity.DeliveryKindReturn {
		return delivery.Filter{}, domain.NewValidationError("kind", "must be DELIVERY or RETURN")
	}
	return delivery.Filter{Kind: kind, Search: strings.TrimSpace(c.Query("search"))}, nil
}
