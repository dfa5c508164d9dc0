package catalog_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Siparis-api/internal/application/catalog"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/memory"
)

const sample = "code;name;unit;price;currency;min_stock\n" +
	"P-1;Çay bardağı;adet;12,50;TRY;10\n" +
	"P-2;Vida M6;;3.2;;\n" +
	"P-3;Sin precio;adet;abc;TRY;0\n" +
	"P-4;Moneda rara;adet;1;XXQ;0\n" +
	"P-1;Çay bardağı ince;adet;13;TRY;12\n"

func TestDecode_Windows1254(t *testing.T) {
	raw, err := charmap.Windows1254.NewEncoder().String(sample)
	require.NoError(t, err)

	data, err := io.ReadAll(catalog.Decode([]byte(raw)))
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
}

func TestDecode_UTF8ConBOM(t *testing.T) {
	data, err := io.ReadAll(catalog.Decode([]byte("\xef\xbb\xbf" + sample)))
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
}

func TestParse_FilasValidasYRechazadas(t *testing.T) {
	products, rejected, err := catalog.Parse(catalog.Decode([]byte(sample)))
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "P-1", products[0].Code)
	assert.Equal(t, "Çay bardağı ince", products[0].Name, "el código repetido conserva la última fila")
	assert.EqualValues(t, 1300, products[0].Price)
	assert.EqualValues(t, 12, products[0].MinStockLevel)

	assert.Equal(t, entity.DefaultUnit, products[1].Unit)
	assert.Equal(t, entity.DefaultCurrency, products[1].Currency)
	assert.EqualValues(t, 320, products[1].Price)

	require.Len(t, rejected, 2)
	assert.Equal(t, 4, rejected[0].Line)
	assert.Equal(t, 5, rejected[1].Line)
}

func TestImport_UpsertSinTocarStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "old", Code: "P-1", Name: "Viejo", Unit: "adet", Currency: "TRY", StockQuantity: 40}))

	products, _, err := catalog.Parse(catalog.Decode([]byte(sample)))
	require.NoError(t, err)

	res, err := catalog.NewImportUseCase(store).Import(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, catalog.Result{Created: 1, Updated: 1}, res)

	p, err := store.Products().GetByCode(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, "old", p.ID)
	assert.Equal(t, "Çay bardağı ince", p.Name)
	assert.EqualValues(t, 40, p.StockQuantity)
}
