// Package order contiene los casos de uso de pedidos: alta con líneas de catálogo o
// custom, consulta, cambio de estado y baja.
package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/validation"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/inventory"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
	"github.com/jhoicas/Siparis-api/pkg/money"
)

// DateLayout formato de fechas de pedido en la API.
const DateLayout = "2006-01-02"

// ListSchema orden y filtros admitidos en el listado de pedidos.
var ListSchema = listquery.Schema{
	SortFields: []string{"order_number", "order_date", "customer_name", "status", "total_amount"},
	Filters: map[string]listquery.Kind{
		"status":      listquery.KindMulti,
		"customer_id": listquery.KindSelect,
		"currency":    listquery.KindSelect,
		"order_date":  listquery.KindDateRange,
	},
	DefaultSort: "order_date",
	DefaultDir:  listquery.Desc,
}

// UseCase casos de uso de pedidos.
type UseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(orders repository.OrderRepository, customers repository.CustomerRepository, products repository.ProductRepository) *UseCase {
	return &UseCase{orders: orders, customers: customers, products: products, now: time.Now}
}

// Create crea un pedido en estado PENDING. Todas las líneas deben estar en la moneda del
// pedido; el total es la suma de precio unitario por cantidad, en unidades menores.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	verr := &domain.ValidationError{}
	if err := validation.Struct(in); err != nil {
		v, ok := domain.AsValidation(err)
		if !ok {
			return nil, err
		}
		verr = v
	}
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	if !money.ValidCurrency(currency) {
		verr.Add("currency", "unknown currency code")
	}
	orderDate := uc.now()
	if in.OrderDate != "" {
		d, err := time.Parse(DateLayout, in.OrderDate)
		if err != nil {
			verr.Add("order_date", "must be YYYY-MM-DD")
		}
		orderDate = d
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	o := &entity.Order{
		ID:              uuid.New().String(),
		OrderNumber:     in.OrderNumber,
		OrderDate:       orderDate,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		Status:          entity.OrderStatusPending,
		Currency:        currency,
		DeliveryAddress: in.DeliveryAddress,
	}
	if o.DeliveryAddress == "" {
		o.DeliveryAddress = customer.Address
	}
	for i, l := range in.Lines {
		line, err := uc.buildLine(ctx, o, i, l, verr)
		if err != nil {
			return nil, err
		}
		if line == nil {
			continue
		}
		info := entity.DescribeLine(line)
		o.TotalAmount += info.UnitPrice * info.Quantity
		o.Lines = append(o.Lines, line)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now()
	o.CreatedAt, o.UpdatedAt = now, now
	// Sin número, el repositorio asigna ORD-YYYYMMDD-XXXX dentro de la tx de alta.
	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return ToResponse(o), nil
}

// buildLine resuelve una línea de entrada. Los errores de campo van a verr y devuelve nil;
// solo devuelve error para fallos de infraestructura o producto inexistente.
func (uc *UseCase) buildLine(ctx context.Context, o *entity.Order, i int, l dto.OrderLineRequest, verr *domain.ValidationError) (entity.OrderLine, error) {
	prefix := fmt.Sprintf("lines[%d].", i)
	qty, err := inventory.ValidateQuantity(l.Quantity.Float64())
	if err != nil {
		verr.Add(prefix+"quantity", "must be a whole number greater than zero")
		return nil, nil
	}
	currency := strings.ToUpper(l.Currency)

	if l.ProductID != "" {
		p, err := uc.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrProductNotFound
		}
		price := p.Price
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		if currency == "" {
			currency = p.Currency
		}
		if currency != o.Currency {
			verr.Add(prefix+"currency", "must match order currency "+o.Currency)
			return nil, nil
		}
		return entity.CatalogLine{
			ID: uuid.New().String(), OrderID: o.ID, ProductID: p.ID,
			ProductCode: p.Code, ProductName: p.Name, Unit: p.Unit,
			Quantity: qty, UnitPrice: price, Currency: currency,
		}, nil
	}

	if l.Code == "" {
		verr.Add(prefix+"code", "is required for custom lines")
	}
	if l.Name == "" {
		verr.Add(prefix+"name", "is required for custom lines")
	}
	if currency == "" {
		currency = o.Currency
	}
	if currency != o.Currency {
		verr.Add(prefix+"currency", "must match order currency "+o.Currency)
	}
	if l.Code == "" || l.Name == "" || currency != o.Currency {
		return nil, nil
	}
	unit := l.Unit
	if unit == "" {
		unit = entity.DefaultUnit
	}
	var price int64
	if l.UnitPrice != nil {
		price = *l.UnitPrice
	}
	return entity.CustomLine{
		ID: uuid.New().String(), OrderID: o.ID, Code: l.Code, Name: l.Name,
		Unit: unit, Quantity: qty, UnitPrice: price, Currency: currency,
	}, nil
}

// GetByID devuelve el pedido con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return ToResponse(o), nil
}

// List lista cabeceras de pedido.
func (uc *UseCase) List(ctx context.Context, q listquery.Query) (*dto.OrderListResponse, error) {
	list, total, err := uc.orders.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: dto.NewPage(q, total)}, nil
}

// UpdateStatus cambia el estado del pedido.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	now := uc.now()
	if err := uc.orders.UpdateStatus(ctx, id, in.Status, now); err != nil {
		return nil, err
	}
	o.Status = in.Status
	o.UpdatedAt = now
	return ToResponse(o), nil
}

// Delete elimina un pedido. Con entregas registradas falla con ErrConflict.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrOrderNotFound
	}
	return uc.orders.Delete(ctx, id)
}

// ToResponse convierte el pedido a DTO con importes decimales para mostrar.
func ToResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		OrderDate:       o.OrderDate.Format(DateLayout),
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		Status:          o.Status,
		Currency:        o.Currency,
		DeliveryAddress: o.DeliveryAddress,
		TotalAmount:     o.TotalAmount,
		TotalDisplay:    money.String(o.TotalAmount),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, l := range o.Lines {
		info := entity.DescribeLine(l)
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:           info.ID,
			Custom:       info.Custom,
			ProductID:    info.ProductID,
			Code:         info.Code,
			Name:         info.Name,
			Unit:         info.Unit,
			Quantity:     info.Quantity,
			UnitPrice:    info.UnitPrice,
			PriceDisplay: money.String(info.UnitPrice),
			Currency:     info.Currency,
		})
	}
	return out
}
