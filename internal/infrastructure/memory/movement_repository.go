package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger en memoria; conserva el orden de inserción.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	r.s.write()
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *MovementRepo) UpdateQuantity(ctx context.Context, id string, quantity int64, notes string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			r.s.movements[i].Quantity = quantity
			r.s.movements[i].Notes = notes
			r.s.write()
			return nil
		}
	}
	return domain.ErrMovementNotFound
}

func (r *MovementRepo) List(ctx context.Context, q listquery.Query) ([]*entity.StockMovement, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.StockMovement
	for _, m := range r.s.movements {
		if !matchMovement(m, q) {
			continue
		}
		all = append(all, &m)
	}
	return page(all, q.Offset(), q.PageSize), len(all), nil
}

func matchMovement(m entity.StockMovement, q listquery.Query) bool {
	for _, f := range q.Filters {
		switch f.Field {
		case "product_id":
			if !slices.Contains(f.Values, m.ProductID) {
				return false
			}
		case "movement_type":
			if !slices.Contains(f.Values, m.MovementType) {
				return false
			}
		case "reference_type":
			if m.ReferenceType == nil || !slices.Contains(f.Values, *m.ReferenceType) {
				return false
			}
		case "reference_id":
			if m.ReferenceID == nil || !slices.Contains(f.Values, *m.ReferenceID) {
				return false
			}
		}
	}
	return true
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *MovementRepo) ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if refMatches(m, referenceType, referenceID) {
			out = append(out, &m)
		}
	}
	return out, nil
}

func refMatches(m entity.StockMovement, referenceType, referenceID string) bool {
	return m.ReferenceType != nil && *m.ReferenceType == referenceType &&
		m.ReferenceID != nil && *m.ReferenceID == referenceID
}

func (r *MovementRepo) Drift(ctx context.Context) ([]repository.StockDrift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sums := make(map[string]int64)
	for _, m := range r.s.movements {
		sums[m.ProductID] += m.Quantity
	}
	var out []repository.StockDrift
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		if p.StockQuantity != sums[id] {
			out = append(out, repository.StockDrift{ProductID: id, ProductCode: p.Code, Cached: p.StockQuantity, LedgerSum: sums[id]})
		}
	}
	return out, nil
}
