package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria. Los datos de producto y cliente se resuelven al leer.
type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.OrderNumber == "" {
		prefix := entity.OrderNumberPrefix(o.OrderDate)
		numbers := make([]string, 0, len(r.s.orders))
		for _, existing := range r.s.orders {
			numbers = append(numbers, existing.OrderNumber)
		}
		o.OrderNumber = entity.SequenceNumber(prefix, entity.NextSequence(numbers, prefix))
	}
	for _, existing := range r.s.orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.orders[o.ID] = copyOrder(*o)
	r.s.write()
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	o = r.resolve(copyOrder(o))
	return &o, nil
}

func (r *OrderRepo) resolve(o entity.Order) entity.Order {
	if c, ok := r.s.customers[o.CustomerID]; ok {
		o.CustomerName = c.Name
	}
	for i, l := range o.Lines {
		cl, ok := l.(entity.CatalogLine)
		if !ok {
			continue
		}
		if p, ok := r.s.products[cl.ProductID]; ok {
			cl.ProductCode, cl.ProductName, cl.Unit = p.Code, p.Name, p.Unit
		}
		o.Lines[i] = cl
	}
	return o
}

func (r *OrderRepo) List(ctx context.Context, q listquery.Query) ([]*entity.Order, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Order
	for _, id := range sortedKeys(r.s.orders) {
		o := r.resolve(copyOrder(r.s.orders[id]))
		if f, ok := q.Filter("status"); ok && !slices.Contains(f.Values, o.Status) {
			continue
		}
		if f, ok := q.Filter("customer_id"); ok && !slices.Contains(f.Values, o.CustomerID) {
			continue
		}
		o.Lines = nil
		all = append(all, &o)
	}
	return page(all, q.Offset(), q.PageSize), len(all), nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = at
	r.s.orders[id] = o
	r.s.write()
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.s.orders, id)
	r.s.write()
	return nil
}

