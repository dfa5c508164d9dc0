package demand_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/domain/demand"
)

func day(d int) time.Time { return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC) }

func TestGroup_PromedioYUltimaFecha(t *testing.T) {
	lines := []demand.Line{
		{OrderID: "o1", OrderDate: day(3), CustomerID: "c1", ProductID: "p1", Quantity: 20},
		{OrderID: "o2", OrderDate: day(9), CustomerID: "c1", ProductID: "p1", Quantity: 40},
		{OrderID: "o3", OrderDate: day(5), CustomerID: "c1", ProductID: "p1", Quantity: 30},
		{OrderID: "o3", OrderDate: day(5), CustomerID: "c1", ProductID: "p2", Quantity: 7},
	}
	stats := demand.Group(lines)
	require.Len(t, stats, 2)

	s := stats[0]
	assert.Equal(t, int64(3), s.OrderedTimes)
	assert.Equal(t, int64(90), s.TotalPieces)
	assert.Equal(t, 30.0, s.AvgPiecesPerOrder())
	assert.Equal(t, day(9), s.LastOrderDate)

	assert.Equal(t, "p2", stats[1].ProductID)
	assert.Equal(t, int64(1), stats[1].OrderedTimes)
}

func TestGroup_MismaOrdenDosLineasCuentaUnaVez(t *testing.T) {
	lines := []demand.Line{
		{OrderID: "o1", OrderDate: day(1), CustomerID: "c1", ProductID: "p1", Quantity: 5},
		{OrderID: "o1", OrderDate: day(1), CustomerID: "c1", ProductID: "p1", Quantity: 6},
	}
	stats := demand.Group(lines)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].OrderedTimes)
	assert.Equal(t, 11.0, stats[0].AvgPiecesPerOrder())
}

func TestAverage_SinPedidos(t *testing.T) {
	assert.Equal(t, 0.0, demand.Average(10, 0))
}
