package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, code, name, email, phone, address, created_at, updated_at`

var customerList = listSpec{
	columns: map[string]string{
		"code":       "code",
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	},
	search:   []string{"code", "name", "email"},
	tiebreak: "id",
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Code, c.Name, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetByCode obtiene un cliente por código.
func (r *CustomerRepo) GetByCode(ctx context.Context, code string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE code = $1`, code)
}

func (r *CustomerRepo) getOne(ctx context.Context, query, arg string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes.
func (r *CustomerRepo) List(ctx context.Context, q listquery.Query) ([]*entity.Customer, int, error) {
	w := customerList.where(q)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers`+w.sql()+customerList.page(q, w), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza datos del cliente y updated_at.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE customers SET code = $2, name = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Code, c.Name, c.Email, c.Phone, c.Address, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", mapWriteErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Delete elimina el cliente. Con pedidos asociados devuelve ErrConflict.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", mapWriteErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
