// Package delivery contiene los casos de uso de entregas y devoluciones: alta con
// movimientos de stock, baja con reversión, filas con totales y albarán PDF.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/validation"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/delivery"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/inventory"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
	"github.com/jhoicas/Siparis-api/pkg/money"
)

// DateLayout formato de fecha de entrega en la API.
const DateLayout = "2006-01-02"

// ListSchema orden y filtros admitidos en el listado de entregas.
var ListSchema = listquery.Schema{
	SortFields: []string{"delivery_number", "delivery_date", "kind", "created_at"},
	Filters: map[string]listquery.Kind{
		"kind":          listquery.KindSelect,
		"order_id":      listquery.KindSelect,
		"delivery_date": listquery.KindDateRange,
	},
	DefaultSort: "delivery_date",
	DefaultDir:  listquery.Desc,
}

// UseCase casos de uso de entregas.
type UseCase struct {
	tx         TxRunner
	poster     StockPoster
	deliveries repository.DeliveryRepository
	orders     repository.OrderRepository
	renderer   NoteRenderer
	now        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx TxRunner,
	poster StockPoster,
	deliveries repository.DeliveryRepository,
	orders repository.OrderRepository,
	renderer NoteRenderer,
) *UseCase {
	return &UseCase{tx: tx, poster: poster, deliveries: deliveries, orders: orders, renderer: renderer, now: time.Now}
}

// Create registra una entrega (o devolución) de líneas del pedido. Las líneas de catálogo
// generan movimientos OUT (entrega) o IN (devolución) en la misma transacción;
// las líneas custom no tocan stock.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	verr := &domain.ValidationError{}
	if err := validation.Struct(in); err != nil {
		v, ok := domain.AsValidation(err)
		if !ok {
			return nil, err
		}
		verr = v
	}
	deliveryDate := uc.now()
	if in.DeliveryDate != "" {
		d, err := time.Parse(DateLayout, in.DeliveryDate)
		if err != nil {
			verr.Add("delivery_date", "must be YYYY-MM-DD")
		}
		deliveryDate = d
	}
	quantities := make([]int64, len(in.Items))
	for i, item := range in.Items {
		q, err := inventory.ValidateQuantity(item.DeliveredQuantity.Float64())
		if err != nil {
			verr.Add(fmt.Sprintf("items[%d].delivered_quantity", i), "must be a whole number greater than zero")
			continue
		}
		quantities[i] = q
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	order, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	d := &entity.Delivery{
		ID:             uuid.New().String(),
		DeliveryNumber: in.DeliveryNumber,
		OrderID:        order.ID,
		DeliveryDate:   deliveryDate,
		Kind:           in.Kind,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      uc.now(),
	}
	for i, item := range in.Items {
		line, ok := order.FindLine(item.OrderItemID, item.Custom)
		if !ok {
			return nil, domain.ErrOrderItemNotFound
		}
		d.Items = append(d.Items, entity.DeliveryItem{
			ID:                uuid.New().String(),
			DeliveryID:        d.ID,
			Ref:               entity.LineRef{ID: item.OrderItemID, Custom: item.Custom},
			DeliveredQuantity: quantities[i],
			Line:              line,
		})
	}
	err = uc.tx.RunDelivery(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository, deliveryRepo repository.DeliveryRepository) error {
		// Sin número, el repositorio asigna el siguiente del día dentro de la tx.
		if err := deliveryRepo.Create(ctx, d); err != nil {
			return err
		}
		for _, m := range stockMovements(d, userID, d.DeliveryNumber, d.CreatedAt, false) {
			if err := uc.poster.PostInTx(ctx, movRepo, productRepo, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// stockMovements movimientos del ledger de las líneas de catálogo de d: OUT al entregar,
// IN al devolver. reverse invierte signo y tipo para compensar una entrega anulada.
func stockMovements(d *entity.Delivery, userID, notes string, at time.Time, reverse bool) []*entity.StockMovement {
	sign := -d.Sign()
	if reverse {
		sign = -sign
	}
	movementType := entity.MovementTypeOUT
	if sign > 0 {
		movementType = entity.MovementTypeIN
	}
	var out []*entity.StockMovement
	for _, item := range d.Items {
		if item.Line == nil {
			continue
		}
		info := entity.DescribeLine(item.Line)
		if info.Custom {
			continue
		}
		refType, refID := entity.ReferenceTypeDelivery, d.ID
		out = append(out, &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     info.ProductID,
			Quantity:      sign * item.DeliveredQuantity,
			MovementType:  movementType,
			ReferenceType: &refType,
			ReferenceID:   &refID,
			Notes:         notes,
			CreatedBy:     userID,
			CreatedAt:     at,
		})
	}
	return out
}

// GetByID devuelve la cabecera de una entrega.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDeliveryNotFound
	}
	return toResponse(d), nil
}

// List lista entregas.
func (uc *UseCase) List(ctx context.Context, q listquery.Query) (*dto.DeliveryListResponse, error) {
	list, total, err := uc.deliveries.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toResponse(d))
	}
	return &dto.DeliveryListResponse{Items: items, Page: dto.NewPage(q, total)}, nil
}

// Delete elimina la entrega. El ledger no se borra: cada línea de catálogo recibe un
// movimiento de signo contrario con la misma referencia, en la misma transacción.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.tx.RunDelivery(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository, deliveryRepo repository.DeliveryRepository) error {
		d, err := deliveryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrDeliveryNotFound
		}
		order, err := uc.orders.GetByID(ctx, d.OrderID)
		if err != nil {
			return err
		}
		d = resolve(d, order)
		for _, m := range stockMovements(d, userID, "anulación "+d.DeliveryNumber, uc.now(), true) {
			if err := uc.poster.PostInTx(ctx, movRepo, productRepo, m); err != nil {
				return err
			}
		}
		return deliveryRepo.Delete(ctx, d.ID)
	})
}

// Lines filas de una entrega con el pie calculado sobre las filas filtradas.
func (uc *UseCase) Lines(ctx context.Context, id string, f delivery.Filter) (*dto.DeliveryLinesResponse, error) {
	d, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDeliveryNotFound
	}
	order, err := uc.orders.GetByID(ctx, d.OrderID)
	if err != nil {
		return nil, err
	}
	rows := f.Apply(delivery.BuildRows(resolve(d, order), order))
	return toLinesResponse(rows, delivery.Summarize(rows)), nil
}

// OrderLines filas de todas las entregas y devoluciones de un pedido.
func (uc *UseCase) OrderLines(ctx context.Context, orderID string, f delivery.Filter) (*dto.DeliveryLinesResponse, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	list, err := uc.deliveries.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	var rows []delivery.Row
	for _, d := range list {
		rows = append(rows, delivery.BuildRows(resolve(d, order), order)...)
	}
	rows = f.Apply(rows)
	return toLinesResponse(rows, delivery.Summarize(rows)), nil
}

// NotePDF genera el albarán de la entrega. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *UseCase) NotePDF(ctx context.Context, id string) ([]byte, string, error) {
	d, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if d == nil {
		return nil, "", domain.ErrDeliveryNotFound
	}
	order, err := uc.orders.GetByID(ctx, d.OrderID)
	if err != nil {
		return nil, "", err
	}
	rows := delivery.BuildRows(resolve(d, order), order)
	pdf, err := uc.renderer.RenderDeliveryNote(ctx, Note{Delivery: d, Order: order, Rows: rows, Footer: delivery.Summarize(rows)})
	if err != nil {
		return nil, "", fmt.Errorf("albarán %s: %w", d.DeliveryNumber, err)
	}
	return pdf, d.DeliveryNumber + ".pdf", nil
}

// resolve asocia a cada item su línea de pedido. Sin pedido, los items quedan sin línea.
func resolve(d *entity.Delivery, order *entity.Order) *entity.Delivery {
	if order == nil {
		return d
	}
	for i := range d.Items {
		if d.Items[i].Line != nil {
			continue
		}
		if line, ok := order.FindLine(d.Items[i].Ref.ID, d.Items[i].Ref.Custom); ok {
			d.Items[i].Line = line
		}
	}
	return d
}

func toResponse(d *entity.Delivery) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:             d.ID,
		DeliveryNumber: d.DeliveryNumber,
		OrderID:        d.OrderID,
		DeliveryDate:   d.DeliveryDate.Format(DateLayout),
		Kind:           d.Kind,
		Notes:          d.Notes,
		Items:          len(d.Items),
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
	}
}

func toLinesResponse(rows []delivery.Row, footer delivery.Footer) *dto.DeliveryLinesResponse {
	out := &dto.DeliveryLinesResponse{
		Lines: make([]dto.DeliveryLineResponse, 0, len(rows)),
		Footer: dto.DeliveryFooterResponse{
			Rows:              footer.Rows,
			DeliveredQuantity: footer.DeliveredQuantity,
			TotalPrice:        footer.TotalPrice,
			TotalPriceDisplay: money.String(footer.TotalPrice),
			Currency:          footer.Currency,
			MixedCurrency:     footer.MixedCurrency,
		},
	}
	for _, r := range rows {
		out.Lines = append(out.Lines, dto.DeliveryLineResponse{
			DeliveryID:        r.DeliveryID,
			DeliveryNumber:    r.DeliveryNumber,
			DeliveryDate:      r.DeliveryDate.Format(DateLayout),
			Kind:              r.Kind,
			OrderNumber:       r.OrderNumber,
			ItemID:            r.ItemID,
			Custom:            r.Custom,
			ProductID:         r.ProductID,
			Code:              r.Code,
			Name:              r.Name,
			Unit:              r.Unit,
			Currency:          r.Currency,
			UnitPrice:         r.UnitPrice,
			UnitPriceDisplay:  money.String(r.UnitPrice),
			DeliveredQuantity: r.DeliveredQuantity,
			TotalPrice:        r.TotalPrice,
			TotalPriceDisplay: money.String(r.TotalPrice),
		})
	}
	return out
}
