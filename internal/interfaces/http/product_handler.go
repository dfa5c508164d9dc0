package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/report"
	"github.com/jhoicas/Siparis-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP de productos.
// Los reportes de demanda muestran código y nombre del producto: se invalidan al editarlo.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	reports *report.UseCase
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase, reports *report.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Crear producto
// @Description  price en unidades menores (kuruş); unit por defecto adet, currency por defecto TRY.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "code, name, unit, price, currency, min_stock_level"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page  query  int     false  "Página"
// @Param        size  query  int     false  "Tamaño de página"
// @Param        sort  query  string  false  "code | name | stock_quantity | price | created_at"
// @Param        q     query  string  false  "Búsqueda por código o nombre"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, usecase.ProductListSchema)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos bajo el mínimo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas (por defecto 100)"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  El stock no se edita aquí: solo cambia vía movimientos.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id       path   string  true  "ID del producto"
// @Param        confirm  query  bool    true  "Debe ser true"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := requireConfirm(c); err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	h.reports.Invalidate(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}
