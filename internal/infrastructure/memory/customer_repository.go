package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.customers[c.ID] = *c
	r.s.write()
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) GetByCode(ctx context.Context, code string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) List(ctx context.Context, q listquery.Query) ([]*entity.Customer, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Customer
	for _, id := range sortedKeys(r.s.customers) {
		c := r.s.customers[id]
		if q.Search != "" && !strings.Contains(strings.ToLower(c.Code+" "+c.Name), strings.ToLower(q.Search)) {
			continue
		}
		all = append(all, &c)
	}
	return page(all, q.Offset(), q.PageSize), len(all), nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	r.s.customers[c.ID] = *c
	r.s.write()
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.s.customers, id)
	r.s.write()
	return nil
}
