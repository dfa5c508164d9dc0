package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/ports"
	"github.com/jhoicas/Siparis-api/internal/application/usecase"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/memory"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
	"github.com/jhoicas/Siparis-api/pkg/logger"
)

func TestProduct_CreateDefaults(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())

	res, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "P-1", Name: "Vida M8", Price: 1500, MinStockLevel: 10})
	require.NoError(t, err)
	assert.Equal(t, "adet", res.Unit)
	assert.Equal(t, "TRY", res.Currency)
	assert.Equal(t, "15.00", res.PriceDisplay)
	assert.Equal(t, int64(0), res.StockQuantity)
	assert.True(t, res.BelowMinimum)
}

func TestProduct_CodigoDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P-1", Name: "A"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "P-1", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProduct_MonedaInvalida(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "P-1", Name: "A", Currency: "XXZ"})
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "currency")
}

func TestProduct_UpdateNoTocaStock(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P-1", Name: "A"})
	require.NoError(t, err)
	require.NoError(t, store.Products().UpdateStock(ctx, p.ID, 40))

	name := "B"
	res, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "B", res.Name)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.StockQuantity)
}

func TestProduct_LowStockYNoEncontrado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	low, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P-1", Name: "A", MinStockLevel: 5})
	require.NoError(t, err)
	ok, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P-2", Name: "B"})
	require.NoError(t, err)
	require.NoError(t, store.Products().UpdateStock(ctx, ok.ID, 3))

	list, err := uc.LowStock(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ID)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrProductNotFound)
}

func TestCustomer_CRUD(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCustomerUseCase(store.Customers())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Code: "C-1", Name: "Acme"})
	require.NoError(t, err)

	phone := "+90 212 000 00 00"
	upd, err := uc.Update(ctx, c.ID, dto.UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, upd.Phone)
	assert.False(t, upd.UpdatedAt.Before(c.UpdatedAt))

	list, err := uc.List(ctx, listquery.Query{Page: 1, PageSize: 20, Search: "acm"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	require.NoError(t, uc.Delete(ctx, c.ID))
	_, err = uc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestExchangeRate_UpsertYList(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewExchangeRateUseCase(store.Rates(), ports.NopCache{}, 0, logger.Nop())
	ctx := context.Background()

	_, err := uc.Upsert(ctx, "usd", decimal.RequireFromString("32.5"))
	require.NoError(t, err)

	_, err = uc.Upsert(ctx, "EUR", decimal.Zero)
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "rate")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "USD", list[0].Currency)
	assert.True(t, list[0].Rate.Equal(decimal.RequireFromString("32.5")))
}
