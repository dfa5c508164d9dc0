package memory

import (
	"context"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo entregas en memoria. Items se devuelven sin línea resuelta.
type DeliveryRepo struct{ s *Store }

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.DeliveryNumber == "" {
		prefix := entity.DeliveryNumberPrefix(d.Kind, d.DeliveryDate)
		numbers := make([]string, 0, len(r.s.deliveries))
		for _, existing := range r.s.deliveries {
			numbers = append(numbers, existing.DeliveryNumber)
		}
		d.DeliveryNumber = entity.SequenceNumber(prefix, entity.NextSequence(numbers, prefix))
	}
	for _, existing := range r.s.deliveries {
		if existing.DeliveryNumber == d.DeliveryNumber {
			return domain.ErrDuplicate
		}
	}
	c := copyDelivery(*d)
	for i := range c.Items {
		c.Items[i].Line = nil
	}
	r.s.deliveries[d.ID] = c
	r.s.write()
	return nil
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil
	}
	d = copyDelivery(d)
	return &d, nil
}

func (r *DeliveryRepo) List(ctx context.Context, q listquery.Query) ([]*entity.Delivery, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Delivery
	for _, id := range sortedKeys(r.s.deliveries) {
		d := copyDelivery(r.s.deliveries[id])
		if f, ok := q.Filter("kind"); ok && len(f.Values) > 0 && f.Values[0] != d.Kind {
			continue
		}
		if f, ok := q.Filter("order_id"); ok && len(f.Values) > 0 && f.Values[0] != d.OrderID {
			continue
		}
		all = append(all, &d)
	}
	return page(all, q.Offset(), q.PageSize), len(all), nil
}

func (r *DeliveryRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Delivery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Delivery
	for _, id := range sortedKeys(r.s.deliveries) {
		d := r.s.deliveries[id]
		if d.OrderID == orderID {
			d = copyDelivery(d)
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r *DeliveryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deliveries[id]; !ok {
		return domain.ErrDeliveryNotFound
	}
	delete(r.s.deliveries, id)
	r.s.write()
	return nil
}

