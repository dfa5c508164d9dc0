package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/validation"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/inventory"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// RegisterMovementUseCase registra movimientos del ledger de stock de forma transaccional:
// inserta el movimiento y actualiza products.stock_quantity en la misma tx, con la fila
// del producto bloqueada (SELECT FOR UPDATE).
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	movRepo       repository.StockMovementRepository
	productRepo   repository.ProductRepository
	allowNegative bool
	now           func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. allowNegative=false hace fallar
// con ErrInsufficientStock cualquier escritura que deje stock negativo.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	allowNegative bool,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		movRepo:       movRepo,
		productRepo:   productRepo,
		allowNegative: allowNegative,
		now:           time.Now,
	}
}

// Create registra un movimiento. La cantidad de entrada es una magnitud; el signo sale del tipo.
// Toda la validación ocurre antes de abrir la transacción.
func (uc *RegisterMovementUseCase) Create(ctx context.Context, userID string, in dto.CreateMovementRequest) (*dto.StockMovementResponse, error) {
	verr := &domain.ValidationError{}
	qty, err := inventory.ValidateQuantity(in.Quantity.Float64())
	mergeInto(verr, err)
	if err := validation.Struct(in); err != nil {
		mergeInto(verr, err)
	}
	var sign int64
	if verr.Empty() {
		sign, err = inventory.SignFor(in.MovementType, in.Direction)
		mergeInto(verr, err)
	}
	if in.ReferenceType == "" && in.ReferenceID != "" {
		verr.Add("reference_type", "is required with reference_id")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	m := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		Quantity:      sign * qty,
		MovementType:  in.MovementType,
		ReferenceType: optional(in.ReferenceType),
		ReferenceID:   optional(in.ReferenceID),
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     uc.now(),
	}
	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		return uc.PostInTx(ctx, movRepo, productRepo, m)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// PostInTx escribe un movimiento ya firmado y ajusta el stock cacheado del producto
// usando repositorios de una tx abierta. Lo usan también las entregas.
func (uc *RegisterMovementUseCase) PostInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	m *entity.StockMovement,
) error {
	product, err := productRepo.GetForUpdate(ctx, m.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	next, err := inventory.Apply(product.StockQuantity, m.Quantity, uc.allowNegative)
	if err != nil {
		return err
	}
	if err := movRepo.Create(ctx, m); err != nil {
		return err
	}
	return productRepo.UpdateStock(ctx, product.ID, next)
}

// Transfer mueve stock entre dos productos: OUT -q en el origen e IN +q en el destino,
// ambos con reference_type=transfer y el mismo reference_id, en una sola transacción.
func (uc *RegisterMovementUseCase) Transfer(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	verr := &domain.ValidationError{}
	qty, err := inventory.ValidateQuantity(in.Quantity.Float64())
	mergeInto(verr, err)
	if err := validation.Struct(in); err != nil {
		mergeInto(verr, err)
	}
	switch {
	case in.ToProductID == "":
		verr.Add("to_product_id", "is required")
	case in.ToProductID == in.FromProductID:
		verr.Add("to_product_id", "must differ from from_product_id")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	transferID := uuid.New().String()
	now := uc.now()
	leg := func(productID, movementType string, quantity int64) *entity.StockMovement {
		return &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     productID,
			Quantity:      quantity,
			MovementType:  movementType,
			ReferenceType: optional(entity.ReferenceTypeTransfer),
			ReferenceID:   optional(transferID),
			Notes:         in.Notes,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
	}
	out := leg(in.FromProductID, entity.MovementTypeOUT, -qty)
	inMov := leg(in.ToProductID, entity.MovementTypeIN, qty)

	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		// Bloqueo en orden de ID para que dos transferencias cruzadas no se bloqueen mutuamente.
		ids := []string{in.FromProductID, in.ToProductID}
		sort.Strings(ids)
		for _, id := range ids {
			p, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrProductNotFound
			}
		}
		if err := uc.PostInTx(ctx, movRepo, productRepo, out); err != nil {
			return err
		}
		return uc.PostInTx(ctx, movRepo, productRepo, inMov)
	})
	if err != nil {
		return nil, err
	}
	return &dto.TransferResponse{
		TransferID: transferID,
		Out:        *toMovementResponse(out),
		In:         *toMovementResponse(inMov),
	}, nil
}

// Update reemplaza cantidad y notas de un movimiento. La cantidad es una magnitud y se
// guarda con el signo original; el stock del producto se ajusta por la diferencia.
// En transferencias solo se modifica la pata indicada. Los movimientos de entregas no se editan.
func (uc *RegisterMovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.StockMovementResponse, error) {
	qty, err := inventory.ValidateQuantity(in.Quantity.Float64())
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var updated *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		m, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrMovementNotFound
		}
		// Los movimientos de una entrega siguen a delivery_items; se cambian anulando la entrega.
		if m.ReferenceType != nil && *m.ReferenceType == entity.ReferenceTypeDelivery {
			return domain.ErrMovementLocked
		}
		newQty := inventory.Resign(m.Quantity, qty)
		delta := newQty - m.Quantity

		product, err := productRepo.GetForUpdate(ctx, m.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		next, err := inventory.Apply(product.StockQuantity, delta, uc.allowNegative)
		if err != nil {
			return err
		}
		if err := movRepo.UpdateQuantity(ctx, m.ID, newQty, in.Notes); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, next); err != nil {
			return err
		}
		m.Quantity = newQty
		m.Notes = in.Notes
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(updated), nil
}

// GetByID obtiene un movimiento.
func (uc *RegisterMovementUseCase) GetByID(ctx context.Context, id string) (*dto.StockMovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMovementNotFound
	}
	return toMovementResponse(m), nil
}

// List lista movimientos según la query (filtros por producto, tipo, referencia y fecha).
func (uc *RegisterMovementUseCase) List(ctx context.Context, q listquery.Query) (*dto.StockMovementListResponse, error) {
	list, total, err := uc.movRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.StockMovementListResponse{Items: items, Page: dto.NewPage(q, total)}, nil
}

// Ledger devuelve los movimientos de un producto y compara su suma con el stock cacheado.
func (uc *RegisterMovementUseCase) Ledger(ctx context.Context, productID string) (*dto.LedgerResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	movements, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sum := inventory.Sum(movements)
	out := &dto.LedgerResponse{
		ProductID:     productID,
		StockQuantity: product.StockQuantity,
		LedgerSum:     sum,
		InSync:        sum == product.StockQuantity,
		Movements:     make([]dto.StockMovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, *toMovementResponse(m))
	}
	return out, nil
}

// mergeInto copia los campos de err en verr si err es de validación.
func mergeInto(verr *domain.ValidationError, err error) {
	if err == nil {
		return
	}
	if v, ok := domain.AsValidation(err); ok {
		for k, reason := range v.Fields {
			if _, exists := verr.Fields[k]; !exists {
				verr.Add(k, reason)
			}
		}
		return
	}
	verr.Add("_", err.Error())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		MovementType:  m.MovementType,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
