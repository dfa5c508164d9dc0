package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/domain/delivery"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

func sampleDelivery(kind string) *entity.Delivery {
	return &entity.Delivery{
		ID:             "d1",
		DeliveryNumber: "DLV-1",
		OrderID:        "o1",
		DeliveryDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Kind:           kind,
		Items: []entity.DeliveryItem{{
			ID:                "di1",
			Ref:               entity.LineRef{ID: "oi1"},
			DeliveredQuantity: 10,
			Line: entity.CatalogLine{
				ID: "oi1", ProductID: "p1", ProductCode: "P-001", ProductName: "Vida",
				Unit: "kg", Quantity: 20, UnitPrice: 1500, Currency: "TRY",
			},
		}},
	}
}

func TestBuildRows_DevolucionNegativa(t *testing.T) {
	rows := delivery.BuildRows(sampleDelivery(entity.DeliveryKindReturn), &entity.Order{OrderNumber: "ORD-1"})
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-10), rows[0].DeliveredQuantity)
	assert.Equal(t, int64(-15000), rows[0].TotalPrice)
	assert.Equal(t, "ORD-1", rows[0].OrderNumber)
}

func TestBuildRows_EntregaPositiva(t *testing.T) {
	rows := delivery.BuildRows(sampleDelivery(entity.DeliveryKindDelivery), nil)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(10), rows[0].DeliveredQuantity)
	assert.Equal(t, int64(15000), rows[0].TotalPrice)
	assert.Equal(t, delivery.Placeholder, rows[0].OrderNumber)
	assert.Equal(t, "p1", rows[0].ProductID)
}

func TestBuildRows_LineaCustomYFaltante(t *testing.T) {
	d := sampleDelivery(entity.DeliveryKindDelivery)
	d.Items = []entity.DeliveryItem{
		{ID: "di2", Ref: entity.LineRef{ID: "c1", Custom: true}, DeliveredQuantity: 2,
			Line: entity.CustomLine{ID: "c1", Code: "X", Name: "Montaje", UnitPrice: 500}},
		{ID: "di3", Ref: entity.LineRef{ID: "gone"}, DeliveredQuantity: 3},
	}
	rows := delivery.BuildRows(d, nil)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Custom)
	assert.Equal(t, "adet", rows[0].Unit)
	assert.Equal(t, "TRY", rows[0].Currency)
	assert.Equal(t, int64(1000), rows[0].TotalPrice)

	assert.Equal(t, delivery.Placeholder, rows[1].Name)
	assert.Equal(t, delivery.Placeholder, rows[1].Code)
	assert.Equal(t, int64(0), rows[1].TotalPrice)
	assert.Equal(t, int64(3), rows[1].DeliveredQuantity)
}

func TestSummarize_NetaEntregasYDevoluciones(t *testing.T) {
	rows := append(
		delivery.BuildRows(sampleDelivery(entity.DeliveryKindDelivery), nil),
		delivery.BuildRows(sampleDelivery(entity.DeliveryKindReturn), nil)...,
	)
	f := delivery.Summarize(rows)
	assert.Equal(t, 2, f.Rows)
	assert.Equal(t, int64(0), f.DeliveredQuantity)
	assert.Equal(t, int64(0), f.TotalPrice)
	assert.Equal(t, "TRY", f.Currency)
	assert.False(t, f.MixedCurrency)
}

func TestSummarize_MonedaMixtaUsaLaPrimera(t *testing.T) {
	rows := []delivery.Row{
		{Currency: "USD", DeliveredQuantity: 1, TotalPrice: 100},
		{Currency: "TRY", DeliveredQuantity: 2, TotalPrice: 300},
	}
	f := delivery.Summarize(rows)
	assert.Equal(t, "USD", f.Currency)
	assert.True(t, f.MixedCurrency)
	assert.Equal(t, int64(400), f.TotalPrice)
}

func TestSummarize_SinFilas(t *testing.T) {
	f := delivery.Summarize(nil)
	assert.Equal(t, 0, f.Rows)
	assert.Equal(t, "TRY", f.Currency)
}

func TestFilter_Apply(t *testing.T) {
	rows := []delivery.Row{
		{Kind: entity.DeliveryKindDelivery, Code: "P-001", Name: "Vida"},
		{Kind: entity.DeliveryKindReturn, Code: "P-002", Name: "Tuerca"},
		{Kind: entity.DeliveryKindDelivery, Code: "P-003", Name: "Tuerca larga"},
	}
	got := delivery.Filter{Kind: entity.DeliveryKindDelivery, Search: "tuerca"}.Apply(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "P-003", got[0].Code)
}
