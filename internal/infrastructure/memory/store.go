// Package memory implementa los repositorios en memoria, con transacciones por
// snapshot (rollback restaura el estado previo). Se usa en tests de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	txMu sync.Mutex // serializa transacciones
	mu   sync.RWMutex

	products   map[string]entity.Product
	movements  []entity.StockMovement
	customers  map[string]entity.Customer
	orders     map[string]entity.Order
	deliveries map[string]entity.Delivery
	users      map[string]entity.User
	sessions   map[string]entity.Session
	rates      map[string]entity.ExchangeRate

	// Writes cuenta operaciones de escritura; Commits y Rollbacks las transacciones.
	Writes    int
	Commits   int
	Rollbacks int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		customers:  make(map[string]entity.Customer),
		orders:     make(map[string]entity.Order),
		deliveries: make(map[string]entity.Delivery),
		users:      make(map[string]entity.User),
		sessions:   make(map[string]entity.Session),
		rates:      make(map[string]entity.ExchangeRate),
	}
}

type snapshot struct {
	products   map[string]entity.Product
	movements  []entity.StockMovement
	customers  map[string]entity.Customer
	orders     map[string]entity.Order
	deliveries map[string]entity.Delivery
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		products:   make(map[string]entity.Product, len(s.products)),
		movements:  append([]entity.StockMovement(nil), s.movements...),
		customers:  make(map[string]entity.Customer, len(s.customers)),
		orders:     make(map[string]entity.Order, len(s.orders)),
		deliveries: make(map[string]entity.Delivery, len(s.deliveries)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = copyOrder(v)
	}
	for k, v := range s.deliveries {
		snap.deliveries[k] = copyDelivery(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.movements = snap.movements
	s.customers = snap.customers
	s.orders = snap.orders
	s.deliveries = snap.deliveries
}

func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		s.mu.Lock()
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Movements(), s.Products())
	})
}

// RunDelivery implementa delivery.TxRunner.
func (s *Store) RunDelivery(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Movements(), s.Products(), s.Deliveries())
	})
}

func (s *Store) write() { s.Writes++ }

// Products repositorio de productos sobre el store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements repositorio del ledger sobre el store.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Customers repositorio de clientes sobre el store.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Orders repositorio de pedidos sobre el store.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Deliveries repositorio de entregas sobre el store.
func (s *Store) Deliveries() *DeliveryRepo { return &DeliveryRepo{s: s} }

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Sessions repositorio de sesiones sobre el store.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s: s} }

// Rates repositorio de tipos de cambio sobre el store.
func (s *Store) Rates() *RateRepo { return &RateRepo{s: s} }

func copyOrder(o entity.Order) entity.Order {
	o.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return o
}

func copyDelivery(d entity.Delivery) entity.Delivery {
	d.Items = append([]entity.DeliveryItem(nil), d.Items...)
	return d
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
