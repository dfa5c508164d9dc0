package report_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/report"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/demand"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/memory"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
	"github.com/jhoicas/Siparis-api/pkg/logger"
)

// mapCache caché en memoria que guarda JSON, como el adaptador Redis.
type mapCache struct {
	data map[string][]byte
	hits int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type fakeExporter struct{ rows []dto.DemandRow }

func (f *fakeExporter) DemandXLSX(_ context.Context, _, _ string, rows []dto.DemandRow) ([]byte, error) {
	f.rows = rows
	return []byte("xlsx"), nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "c1", Code: "C-1", Name: "Acme"}))
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "c2", Code: "C-2", Name: "Beta"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", Code: "P-1", Name: "Vida"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", Code: "P-2", Name: "Somun"}))

	order := func(id, customer, date string, lines ...entity.OrderLine) {
		require.NoError(t, s.Orders().Create(ctx, &entity.Order{
			ID: id, OrderNumber: "ORD-" + id, CustomerID: customer, OrderDate: day(date),
			Status: entity.OrderStatusPending, Currency: "TRY", Lines: lines,
		}))
	}
	// Acme pide Vida dos veces (10 y 4) y una línea custom que no cuenta.
	order("o1", "c1", "2026-03-01",
		entity.CatalogLine{ID: "l1", ProductID: "p1", Quantity: 10},
		entity.CustomLine{ID: "l2", Code: "X", Name: "Montaje", Quantity: 99},
	)
	order("o2", "c1", "2026-03-05", entity.CatalogLine{ID: "l3", ProductID: "p1", Quantity: 4})
	order("o3", "c2", "2026-03-03", entity.CatalogLine{ID: "l4", ProductID: "p2", Quantity: 30})
	// Fuera de rango.
	order("o4", "c1", "2026-04-10", entity.CatalogLine{ID: "l5", ProductID: "p1", Quantity: 500})
	return s
}

func params(sort, dir string, size int) report.DemandParams {
	return report.DemandParams{
		From:  "2026-03-01",
		To:    "2026-03-31",
		Query: listquery.Query{Page: 1, PageSize: size, Sort: sort, Direction: dir},
	}
}

func TestDemand_AgrupaYOrdena(t *testing.T) {
	s := seed(t)
	uc := report.NewUseCase(s.Demand(), s.Customers(), &fakeExporter{}, newMapCache(), time.Minute, logger.Nop())

	res, err := uc.Demand(context.Background(), params(demand.SortOrderedTimes, "desc", 20))
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	acme := res.Items[0]
	assert.Equal(t, "Acme", acme.CustomerName)
	assert.Equal(t, int64(2), acme.OrderedTimes)
	assert.Equal(t, int64(14), acme.TotalPieces)
	assert.InDelta(t, 7.0, acme.AvgPiecesPerOrder, 1e-9)
	assert.Equal(t, "2026-03-05", acme.LastOrderDate)
	assert.Equal(t, 2, res.Page.Total)

	res, err = uc.Demand(context.Background(), params(demand.SortTotalPieces, "desc", 1))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Beta", res.Items[0].CustomerName)
	assert.Equal(t, 2, res.Page.Total)
}

func TestDemand_FiltroCliente(t *testing.T) {
	s := seed(t)
	uc := report.NewUseCase(s.Demand(), s.Customers(), &fakeExporter{}, newMapCache(), time.Minute, logger.Nop())
	p := params("", "", 20)
	p.Query.Filters = []listquery.Filter{{Field: "customer_id", Kind: listquery.KindSelect, Values: []string{"c2"}}}
	res, err := uc.Demand(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Somun", res.Items[0].ProductName)
}

func TestDemand_Validaciones(t *testing.T) {
	s := seed(t)
	uc := report.NewUseCase(s.Demand(), s.Customers(), &fakeExporter{}, newMapCache(), time.Minute, logger.Nop())

	_, err := uc.Demand(context.Background(), report.DemandParams{Query: listquery.Query{Page: 1, PageSize: 20}})
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "from")
	assert.Contains(t, verr.Fields, "to")

	p := params("", "", 20)
	p.From, p.To = "2026-03-31", "2026-03-01"
	_, err = uc.Demand(context.Background(), p)
	verr, ok = domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "to")

	_, err = uc.Demand(context.Background(), params("price", "asc", 20))
	verr, ok = domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "sort")
}

func TestDemand_Cache(t *testing.T) {
	s := seed(t)
	cache := newMapCache()
	uc := report.NewUseCase(s.Demand(), s.Customers(), &fakeExporter{}, cache, time.Minute, logger.Nop())
	ctx := context.Background()

	first, err := uc.Demand(ctx, params("", "", 20))
	require.NoError(t, err)
	second, err := uc.Demand(ctx, params("", "", 20))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.Items, second.Items)

	uc.Invalidate(ctx)
	assert.Empty(t, cache.data)
}

func TestExport_TodasLasFilas(t *testing.T) {
	s := seed(t)
	exp := &fakeExporter{}
	uc := report.NewUseCase(s.Demand(), s.Customers(), exp, newMapCache(), time.Minute, logger.Nop())

	data, name, err := uc.Export(context.Background(), params("", "", 1))
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "demanda_2026-03-01_2026-03-31.xlsx", name)
	assert.Len(t, exp.rows, 2)
}

func TestCustomerDemand(t *testing.T) {
	s := seed(t)
	uc := report.NewUseCase(s.Demand(), s.Customers(), &fakeExporter{}, newMapCache(), time.Minute, logger.Nop())

	rows, err := uc.CustomerDemand(context.Background(), "c1", "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(514), rows[0].TotalPieces)
	assert.Equal(t, int64(3), rows[0].OrderedTimes)

	_, err = uc.CustomerDemand(context.Background(), "zz", "2026-01-01", "2026-12-31")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
