package listquery_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var orderSchema = listquery.Schema{
	SortFields: []string{"order_date", "order_number", "total_amount"},
	Filters: map[string]listquery.Kind{
		"status":       listquery.KindMulti,
		"customer_id":  listquery.KindSelect,
		"order_number": listquery.KindText,
		"order_date":   listquery.KindDateRange,
	},
	DefaultSort: "order_date",
	DefaultDir:  listquery.Desc,
}

func TestMultiSelect_RoundTripPreservaOrden(t *testing.T) {
	in := listquery.Query{
		Page: 2, PageSize: 50, Sort: "total_amount", Direction: listquery.Asc,
		Filters: []listquery.Filter{{
			Field: "status", Kind: listquery.KindMulti,
			Values: []string{"SHIPPED", "PENDING", "SHIPPED", "CONFIRMED"},
		}},
	}
	out, err := listquery.Decode(listquery.Encode(in), orderSchema)
	require.NoError(t, err)

	f, ok := out.Filter("status")
	require.True(t, ok)
	assert.Equal(t, []string{"SHIPPED", "PENDING", "SHIPPED", "CONFIRMED"}, f.Values)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 50, out.PageSize)
	assert.Equal(t, 50, out.Offset())
	assert.Equal(t, "total_amount", out.Sort)
	assert.Equal(t, listquery.Asc, out.Direction)
}

func TestDateRange_RoundTrip(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	in := listquery.Query{Filters: []listquery.Filter{{Field: "order_date", Kind: listquery.KindDateRange, From: &from, To: &to}}}

	v := listquery.Encode(in)
	assert.Equal(t, "2026-01-01", v.Get("f.order_date.from"))

	out, err := listquery.Decode(v, orderSchema)
	require.NoError(t, err)
	f, ok := out.Filter("order_date")
	require.True(t, ok)
	assert.True(t, from.Equal(*f.From))
	assert.True(t, to.Equal(*f.To))
}

func TestDecode_Defaults(t *testing.T) {
	q, err := listquery.Decode(url.Values{}, orderSchema)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, listquery.DefaultPageSize, q.PageSize)
	assert.Equal(t, "order_date", q.Sort)
	assert.Equal(t, listquery.Desc, q.Direction)
	assert.Empty(t, q.Filters)
}

func TestDecode_ClampPageSize(t *testing.T) {
	q, err := listquery.Decode(url.Values{"size": {"1000"}}, orderSchema)
	require.NoError(t, err)
	assert.Equal(t, listquery.MaxPageSize, q.PageSize)
}

func TestDecode_Rechazos(t *testing.T) {
	v := url.Values{
		"sort":              {"password"},
		"dir":               {"sideways"},
		"f.unknown":         {"x"},
		"f.order_date.from": {"01/02/2026"},
	}
	_, err := listquery.Decode(v, orderSchema)
	require.Error(t, err)
	var perr *listquery.ParamError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Fields, "sort")
	assert.Contains(t, perr.Fields, "dir")
	assert.Contains(t, perr.Fields, "f.unknown")
	assert.Contains(t, perr.Fields, "f.order_date.from")
}

func TestMultiSelect_ValoresSinNormalizar(t *testing.T) {
	in := listquery.Query{Filters: []listquery.Filter{{
		Field: "status", Kind: listquery.KindMulti,
		Values: []string{" A", "", "B "},
	}}}
	out, err := listquery.Decode(listquery.Encode(in), orderSchema)
	require.NoError(t, err)

	f, ok := out.Filter("status")
	require.True(t, ok)
	assert.Equal(t, []string{" A", "", "B "}, f.Values)
}

func TestDecode_TextoYBusqueda(t *testing.T) {
	q, err := listquery.Decode(url.Values{"q": {"  vida "}, "f.order_number": {"ORD-2026"}}, orderSchema)
	require.NoError(t, err)
	assert.Equal(t, "vida", q.Search)
	f, ok := q.Filter("order_number")
	require.True(t, ok)
	assert.Equal(t, []string{"ORD-2026"}, f.Values)
}
