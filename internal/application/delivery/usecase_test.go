package delivery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdelivery "github.com/jhoicas/Siparis-api/internal/application/delivery"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	appinv "github.com/jhoicas/Siparis-api/internal/application/inventory"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/delivery"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/memory"
)

type fakeRenderer struct{ got *appdelivery.Note }

func (f *fakeRenderer) RenderDeliveryNote(_ context.Context, n appdelivery.Note) ([]byte, error) {
	f.got = &n
	return []byte("%PDF-1.4"), nil
}

type fixture struct {
	uc       *appdelivery.UseCase
	store    *memory.Store
	renderer *fakeRenderer
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Code: "P-1", Name: "Vida", Unit: "adet", Price: 1500, Currency: "TRY", StockQuantity: 0}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c1", Code: "C-1", Name: "Acme"}))
	require.NoError(t, store.Orders().Create(ctx, &entity.Order{
		ID: "o1", OrderNumber: "ORD-20260314-0001", CustomerID: "c1", Status: entity.OrderStatusPending, Currency: "TRY",
		Lines: []entity.OrderLine{
			entity.CatalogLine{ID: "l1", OrderID: "o1", ProductID: "p1", Quantity: 20, UnitPrice: 1500, Currency: "TRY"},
			entity.CustomLine{ID: "l2", OrderID: "o1", Code: "X-1", Name: "Montaje", Unit: "saat", Quantity: 2, UnitPrice: 5000, Currency: "TRY"},
		},
	}))
	store.Writes = 0
	inv := appinv.NewRegisterMovementUseCase(store, store.Movements(), store.Products(), true)
	r := &fakeRenderer{}
	return fixture{
		uc:       appdelivery.NewUseCase(store, inv, store.Deliveries(), store.Orders(), r),
		store:    store,
		renderer: r,
	}
}

func (f fixture) stock(t *testing.T) int64 {
	p, err := f.store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	return p.StockQuantity
}

func TestCreate_EntregaDescuentaSoloCatalogo(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindDelivery, DeliveryDate: "2026-03-15",
		Items: []dto.DeliveryItemRequest{
			{OrderItemID: "l1", DeliveredQuantity: 10},
			{OrderItemID: "l2", Custom: true, DeliveredQuantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "DLV-20260315-0001", res.DeliveryNumber)
	assert.Equal(t, 2, res.Items)
	assert.Equal(t, int64(-10), f.stock(t))

	movs, err := f.store.Movements().ListByReference(ctx, entity.ReferenceTypeDelivery, res.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].MovementType)
	assert.Equal(t, int64(-10), movs[0].Quantity)
}

func TestCreate_DevolucionFilasNegativas(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindReturn,
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l1", DeliveredQuantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), f.stock(t))

	lines, err := f.uc.Lines(ctx, res.ID, delivery.Filter{})
	require.NoError(t, err)
	require.Len(t, lines.Lines, 1)
	assert.Equal(t, int64(-10), lines.Lines[0].DeliveredQuantity)
	assert.Equal(t, int64(-15000), lines.Lines[0].TotalPrice)
	assert.Equal(t, "-150.00", lines.Lines[0].TotalPriceDisplay)
	assert.Equal(t, "ORD-20260314-0001", lines.Lines[0].OrderNumber)
	assert.Equal(t, int64(-15000), lines.Footer.TotalPrice)
}

func TestOrderLines_FiltroAntesDelPie(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindDelivery,
		Items: []dto.DeliveryItemRequest{
			{OrderItemID: "l1", DeliveredQuantity: 10},
			{OrderItemID: "l2", Custom: true, DeliveredQuantity: 2},
		},
	})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindReturn,
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l1", DeliveredQuantity: 3}},
	})
	require.NoError(t, err)

	all, err := f.uc.OrderLines(ctx, "o1", delivery.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Footer.Rows)
	assert.Equal(t, int64(10+2-3), all.Footer.DeliveredQuantity)
	assert.Equal(t, int64(10*1500+2*5000-3*1500), all.Footer.TotalPrice)

	onlyReturns, err := f.uc.OrderLines(ctx, "o1", delivery.Filter{Kind: entity.DeliveryKindReturn})
	require.NoError(t, err)
	assert.Equal(t, 1, onlyReturns.Footer.Rows)
	assert.Equal(t, int64(-3), onlyReturns.Footer.DeliveredQuantity)

	search, err := f.uc.OrderLines(ctx, "o1", delivery.Filter{Search: "montaje"})
	require.NoError(t, err)
	assert.Equal(t, 1, search.Footer.Rows)
	assert.Equal(t, int64(10000), search.Footer.TotalPrice)
}

func TestCreate_Validaciones(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindDelivery,
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l1", DeliveredQuantity: 0}},
	})
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "items[0].delivered_quantity")

	_, err = f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindDelivery,
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l2", DeliveredQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrOrderItemNotFound, "l2 es custom: la referencia de catálogo no existe")

	_, err = f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "zz", Kind: entity.DeliveryKindDelivery,
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l1", DeliveredQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	assert.Zero(t, f.store.Writes)
}

func TestDelete_CompensaSinBorrarLedger(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindDelivery,
		Items: []dto.DeliveryItemRequest{
			{OrderItemID: "l1", DeliveredQuantity: 4},
			{OrderItemID: "l2", Custom: true, DeliveredQuantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(-4), f.stock(t))

	require.NoError(t, f.uc.Delete(ctx, "u2", res.ID))
	assert.Equal(t, int64(0), f.stock(t))

	movs, err := f.store.Movements().ListByReference(ctx, entity.ReferenceTypeDelivery, res.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2, "el movimiento original sigue en el ledger junto a su compensación")
	assert.Equal(t, int64(-4), movs[0].Quantity)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].MovementType)
	assert.Equal(t, int64(4), movs[1].Quantity)
	assert.Equal(t, entity.MovementTypeIN, movs[1].MovementType)
	assert.Equal(t, "u2", movs[1].CreatedBy)
	assert.Equal(t, "anulación "+res.DeliveryNumber, movs[1].Notes)

	var sum int64
	for _, m := range movs {
		sum += m.Quantity
	}
	assert.Equal(t, f.stock(t), sum)

	assert.ErrorIs(t, f.uc.Delete(ctx, "u2", res.ID), domain.ErrDeliveryNotFound)
}

func TestDelete_DevolucionCompensaConSalida(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindReturn,
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l1", DeliveredQuantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), f.stock(t))

	require.NoError(t, f.uc.Delete(ctx, "u1", res.ID))
	assert.Equal(t, int64(0), f.stock(t))
	movs, err := f.store.Movements().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeOUT, movs[1].MovementType)
	assert.Equal(t, int64(-3), movs[1].Quantity)
}

func TestCreate_NumeroTrasBorrarNoSeRepite(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	in := dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindDelivery, DeliveryDate: "2026-03-15",
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l1", DeliveredQuantity: 1}},
	}
	first, err := f.uc.Create(ctx, "u1", in)
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, "u1", in)
	require.NoError(t, err)
	require.Equal(t, "DLV-20260315-0002", second.DeliveryNumber)

	require.NoError(t, f.uc.Delete(ctx, "u1", first.ID))
	third, err := f.uc.Create(ctx, "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "DLV-20260315-0003", third.DeliveryNumber)

	ret, err := f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindReturn, DeliveryDate: "2026-03-15",
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l1", DeliveredQuantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "RET-20260315-0001", ret.DeliveryNumber)
}

func TestNotePDF(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, "u1", dto.CreateDeliveryRequest{
		OrderID: "o1", Kind: entity.DeliveryKindDelivery, DeliveryDate: "2026-03-15",
		Items:   []dto.DeliveryItemRequest{{OrderItemID: "l1", DeliveredQuantity: 2}},
	})
	require.NoError(t, err)

	pdf, name, err := f.uc.NotePDF(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "DLV-20260315-0001.pdf", name)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, f.renderer.got)
	assert.Equal(t, int64(3000), f.renderer.got.Footer.TotalPrice)
	assert.Equal(t, "o1", f.renderer.got.Order.ID)
}
