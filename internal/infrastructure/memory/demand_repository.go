package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Siparis-api/internal/domain/demand"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

var _ repository.DemandRepository = (*DemandRepo)(nil)

// DemandRepo agrega demanda en memoria con demand.Group.
type DemandRepo struct{ s *Store }

// Demand repositorio de demanda sobre el store.
func (s *Store) Demand() *DemandRepo { return &DemandRepo{s: s} }

func (r *DemandRepo) Lines(ctx context.Context, customerID string, from, to time.Time) ([]demand.Line, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []demand.Line
	for _, id := range sortedKeys(r.s.orders) {
		o := r.s.orders[id]
		if customerID != "" && o.CustomerID != customerID {
			continue
		}
		if o.OrderDate.Before(from) || o.OrderDate.After(to) {
			continue
		}
		c := r.s.customers[o.CustomerID]
		for _, l := range o.Lines {
			cl, ok := l.(entity.CatalogLine)
			if !ok {
				continue
			}
			p := r.s.products[cl.ProductID]
			out = append(out, demand.Line{
				OrderID: o.ID, OrderDate: o.OrderDate,
				CustomerID: o.CustomerID, CustomerCode: c.Code, CustomerName: c.Name,
				ProductID: cl.ProductID, ProductCode: p.Code, ProductName: p.Name,
				Quantity: cl.Quantity,
			})
		}
	}
	return out, nil
}

func (r *DemandRepo) Report(ctx context.Context, f repository.DemandFilter) ([]demand.Stat, int, error) {
	lines, err := r.Lines(ctx, f.CustomerID, f.From, f.To)
	if err != nil {
		return nil, 0, err
	}
	stats := demand.Group(lines)
	sort.SliceStable(stats, func(i, j int) bool {
		less := lessStat(stats[i], stats[j], f.Sort)
		if f.Direction == "desc" {
			return lessStat(stats[j], stats[i], f.Sort)
		}
		return less
	})
	return page(stats, f.Offset, f.Limit), len(stats), nil
}

func lessStat(a, b demand.Stat, field string) bool {
	switch field {
	case demand.SortCustomerName:
		return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
	case demand.SortProductName:
		return strings.ToLower(a.ProductName) < strings.ToLower(b.ProductName)
	case demand.SortOrderedTimes:
		return a.OrderedTimes < b.OrderedTimes
	case demand.SortAvgPieces:
		return a.AvgPiecesPerOrder() < b.AvgPiecesPerOrder()
	case demand.SortLastOrderDate:
		return a.LastOrderDate.Before(b.LastOrderDate)
	}
	return a.TotalPieces < b.TotalPieces
}
