package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/domain"
	customError "github.com/segyhp/pledge-engine/pkg/errors"
)

// =============================================================================
// MEMORY GATEWAY - In-memory LedgerGateway (for tests and local runs)
// =============================================================================

// Memory keeps pledges and payments in maps guarded by a single RWMutex.
// Every read returns copies, so callers can never mutate stored records.
type Memory struct {
	mu    sync.RWMutex
	store *memoryStore
}

var (
	_ LedgerGateway = (*Memory)(nil)
	_ LedgerGateway = (*memoryStore)(nil)
)

func NewMemory() *Memory {
	return &Memory{store: newMemoryStore()}
}

// WithinTx holds the write lock for the whole of fn and restores the
// previous state if fn fails.
func (m *Memory) WithinTx(ctx context.Context, fn func(tx LedgerGateway) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.store.clone()
	if err := fn(m.store); err != nil {
		m.store.pledges = snapshot.pledges
		m.store.payments = snapshot.payments
		return err
	}
	return nil
}

func (m *Memory) CreatePledge(ctx context.Context, pledge *domain.Pledge) (*domain.Pledge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.CreatePledge(ctx, pledge)
}

func (m *Memory) LoadPledge(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.LoadPledge(ctx, id)
}

func (m *Memory) SavePledge(ctx context.Context, pledge *domain.Pledge) (*domain.Pledge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.SavePledge(ctx, pledge)
}

func (m *Memory) ListPledges(ctx context.Context) ([]*domain.Pledge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.ListPledges(ctx)
}

func (m *Memory) ListPledgesByStatus(ctx context.Context, status domain.PledgeStatus) ([]*domain.Pledge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.ListPledgesByStatus(ctx, status)
}

func (m *Memory) ListPledgesByCustomer(ctx context.Context, customerID string) ([]*domain.Pledge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.ListPledgesByCustomer(ctx, customerID)
}

func (m *Memory) SumPrincipalByStatus(ctx context.Context, status domain.PledgeStatus) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.SumPrincipalByStatus(ctx, status)
}

func (m *Memory) CountPledgesByStatus(ctx context.Context, status domain.PledgeStatus) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.CountPledgesByStatus(ctx, status)
}

func (m *Memory) AppendPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.AppendPayment(ctx, payment)
}

func (m *Memory) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.GetPayment(ctx, id)
}

func (m *Memory) ListPayments(ctx context.Context, pledgeID uuid.UUID) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.ListPayments(ctx, pledgeID)
}

func (m *Memory) TotalPaid(ctx context.Context, pledgeID uuid.UUID) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.TotalPaid(ctx, pledgeID)
}

func (m *Memory) DeletePayment(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.DeletePayment(ctx, id)
}

// =============================================================================
// MEMORY STORE - Unlocked maps; callers hold Memory.mu
// =============================================================================

type memoryStore struct {
	pledges  map[uuid.UUID]*domain.Pledge
	payments map[uuid.UUID]*domain.Payment
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		pledges:  make(map[uuid.UUID]*domain.Pledge),
		payments: make(map[uuid.UUID]*domain.Payment),
	}
}

func (s *memoryStore) clone() *memoryStore {
	c := newMemoryStore()
	for id, p := range s.pledges {
		c.pledges[id] = p.Clone()
	}
	for id, p := range s.payments {
		payment := *p
		c.payments[id] = &payment
	}
	return c
}

// A transaction started inside another one joins it.
func (s *memoryStore) WithinTx(_ context.Context, fn func(tx LedgerGateway) error) error {
	return fn(s)
}

func (s *memoryStore) CreatePledge(_ context.Context, pledge *domain.Pledge) (*domain.Pledge, error) {
	if _, exists := s.pledges[pledge.ID]; exists {
		return nil, customError.WrapInvalidPledge("pledge " + pledge.ID.String() + " already exists")
	}

	stored := pledge.Clone()
	if stored.Version == 0 {
		stored.Version = 1
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}
	s.pledges[stored.ID] = stored

	return stored.Clone(), nil
}

func (s *memoryStore) LoadPledge(_ context.Context, id uuid.UUID) (*domain.Pledge, error) {
	p, ok := s.pledges[id]
	if !ok {
		return nil, customError.WrapPledgeNotFound(id.String())
	}
	return p.Clone(), nil
}

func (s *memoryStore) SavePledge(_ context.Context, pledge *domain.Pledge) (*domain.Pledge, error) {
	current, ok := s.pledges[pledge.ID]
	if !ok {
		return nil, customError.WrapPledgeNotFound(pledge.ID.String())
	}
	if current.Version != pledge.Version {
		return nil, customError.WrapConflict(pledge.ID.String(), pledge.Version, current.Version)
	}

	stored := pledge.Clone()
	stored.CreatedAt = current.CreatedAt
	stored.Version = current.Version + 1
	stored.UpdatedAt = time.Now().UTC()
	s.pledges[stored.ID] = stored

	return stored.Clone(), nil
}

func (s *memoryStore) ListPledges(_ context.Context) ([]*domain.Pledge, error) {
	return s.filterPledges(func(*domain.Pledge) bool { return true }), nil
}

func (s *memoryStore) ListPledgesByStatus(_ context.Context, status domain.PledgeStatus) ([]*domain.Pledge, error) {
	return s.filterPledges(func(p *domain.Pledge) bool { return p.Status == status }), nil
}

func (s *memoryStore) ListPledgesByCustomer(_ context.Context, customerID string) ([]*domain.Pledge, error) {
	return s.filterPledges(func(p *domain.Pledge) bool { return p.CustomerID == customerID }), nil
}

func (s *memoryStore) filterPledges(keep func(*domain.Pledge) bool) []*domain.Pledge {
	result := make([]*domain.Pledge, 0, len(s.pledges))
	for _, p := range s.pledges {
		if keep(p) {
			result = append(result, p.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() > result[j].ID.String()
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *memoryStore) SumPrincipalByStatus(_ context.Context, status domain.PledgeStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range s.pledges {
		if p.Status == status && p.Principal.Valid {
			total = total.Add(p.Principal.Decimal)
		}
	}
	return total, nil
}

func (s *memoryStore) CountPledgesByStatus(_ context.Context, status domain.PledgeStatus) (int64, error) {
	var count int64
	for _, p := range s.pledges {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) AppendPayment(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if _, ok := s.pledges[payment.PledgeID]; !ok {
		return nil, customError.WrapPledgeNotFound(payment.PledgeID.String())
	}

	stored := *payment
	s.payments[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *memoryStore) GetPayment(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	p, ok := s.payments[id]
	if !ok {
		return nil, customError.WrapPaymentNotFound(id.String())
	}
	payment := *p
	return &payment, nil
}

func (s *memoryStore) ListPayments(_ context.Context, pledgeID uuid.UUID) ([]*domain.Payment, error) {
	result := make([]*domain.Payment, 0)
	for _, p := range s.payments {
		if p.PledgeID == pledgeID {
			payment := *p
			result = append(result, &payment)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.PaymentDate.Equal(b.PaymentDate) {
			return a.PaymentDate.After(b.PaymentDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})
	return result, nil
}

func (s *memoryStore) TotalPaid(_ context.Context, pledgeID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range s.payments {
		if p.PledgeID == pledgeID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (s *memoryStore) DeletePayment(_ context.Context, id uuid.UUID) error {
	if _, ok := s.payments[id]; !ok {
		return customError.WrapPaymentNotFound(id.String())
	}
	delete(s.payments, id)
	return nil
}
