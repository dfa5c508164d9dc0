package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/application/delivery"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/order"
	"github.com/jhoicas/Siparis-api/internal/application/report"
)

// OrderHandler maneja pedidos. Cada escritura invalida el reporte de demanda cacheado.
type OrderHandler struct {
	uc         *order.UseCase
	deliveries *delivery.UseCase
	reports    *report.UseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *order.UseCase, deliveries *delivery.UseCase, reports *report.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc, deliveries: deliveries, reports: reports}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Líneas de catálogo (product_id) o custom (code/name). order_number ORD-YYYYMMDD-XXXX si se omite.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "customer_id, lines"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	h.reports.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        page                query  int     false  "Página"
// @Param        sort                query  string  false  "order_number | order_date | customer_name | status | total_amount"
// @Param        f.status            query  string  false  "Estado (repetible)"
// @Param        f.order_date.from   query  string  false  "YYYY-MM-DD"
// @Param        f.order_date.to     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, order.ListSchema)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	h.reports.Invalidate(c.Context())
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         orders
// @Security     Bearer
// @Param        id       path   string  true  "ID del pedido"
// @Param        confirm  query  bool    true  "Debe ser true"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := requireConfirm(c); err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	h.reports.Invalidate(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// DeliveryLines godoc
// @Summary      Filas de entregas y devoluciones de un pedido
// @Description  Devoluciones con signo negativo. El pie se calcula sobre las filas que pasan el filtro.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del pedido"
// @Param        kind    query  string  false  "DELIVERY | RETURN"
// @Param        search  query  string  false  "Código o nombre"
// @Success      200  {object}  dto.DeliveryLinesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delivery-lines [get]
func (h *OrderHandler) DeliveryLines(c *fiber.Ctx) error {
	f, err := lineFilter(c)
	if err != nil {
		return err
	}
	out, err := h.deliveries.OrderLines(c.Context(), c.Params("id"), f)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
