package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	r.s.write()
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	stock := cur.StockQuantity
	cur = *p
	cur.StockQuantity = stock
	r.s.products[p.ID] = cur
	r.s.write()
	return nil
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.StockQuantity = quantity
	r.s.products[id] = p
	r.s.write()
	return nil
}

func (r *ProductRepo) UpsertByCode(ctx context.Context, p *entity.Product) (bool, error) {
	existing, _ := r.GetByCode(ctx, p.Code)
	if existing == nil {
		return true, r.Create(ctx, p)
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.StockQuantity = existing.StockQuantity
	return false, r.Update(ctx, p)
}

func (r *ProductRepo) List(ctx context.Context, q listquery.Query) ([]*entity.Product, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Product
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Code+" "+p.Name), strings.ToLower(q.Search)) {
			continue
		}
		all = append(all, &p)
	}
	return page(all, q.Offset(), q.PageSize), len(all), nil
}

func (r *ProductRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Product
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		if p.BelowMinimum() {
			out = append(out, &p)
		}
	}
	return page(out, 0, limit), nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	r.s.write()
	return nil
}
