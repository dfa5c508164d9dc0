package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/inventory"
)

// InventoryHandler maneja los movimientos de stock (ledger) y las transferencias.
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  quantity es una magnitud positiva; el signo lo decide movement_type (y direction en ADJUSTMENT/TRANSFER).
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, quantity, movement_type, direction"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Transferir stock entre productos
// @Description  Escribe un OUT en el origen y un IN en el destino con reference_type=transfer, en una sola transacción.
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_product_id, to_product_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Transfer(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Corregir cantidad o notas de un movimiento
// @Description  La cantidad almacenada conserva el signo original; el stock del producto se ajusta por la diferencia.
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "quantity, notes"
// @Success      200   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        page  query  int     false  "Página (base 1)"
// @Param        size  query  int     false  "Tamaño de página (máx. 100)"
// @Param        sort  query  string  false  "created_at | quantity | movement_type"
// @Param        dir   query  string  false  "asc | desc"
// @Success      200  {object}  dto.StockMovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, inventory.MovementListSchema)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Ledger de un producto
// @Description  Movimientos del producto, suma derivada y stock cacheado (in_sync indica si coinciden).
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/ledger [get]
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	out, err := h.uc.Ledger(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
