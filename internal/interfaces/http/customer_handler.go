package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/report"
	"github.com/jhoicas/Siparis-api/internal/application/usecase"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc      *usecase.CustomerUseCase
	reports *report.UseCase
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(uc *usecase.CustomerUseCase, reports *report.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "code, name, email, phone, address"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        page  query  int     false  "Página"
// @Param        size  query  int     false  "Tamaño de página"
// @Param        q     query  string  false  "Búsqueda por código, nombre o email"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, usecase.CustomerListSchema)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	h.reports.Invalidate(c.Context())
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     Bearer
// @Param        id       path   string  true  "ID del cliente"
// @Param        confirm  query  bool    true  "Debe ser true"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := requireConfirm(c); err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Demand godoc
// @Summary      Demanda de un cliente
// @Description  Productos pedidos por el cliente en el rango, ordenados por piezas. Sin rango: últimos 12 meses.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del cliente"
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.DemandRow
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/demand [get]
func (h *CustomerHandler) Demand(c *fiber.Ctx) error {
	today := time.Now()
	from := c.Query("from", today.AddDate(-1, 0, 0).Format(listquery.DateLayout))
	to := c.Query("to", today.Format(listquery.DateLayout))
	out, err := h.reports.CustomerDemand(c.Context(), c.Params("id"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
