package billing

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu            sync.RWMutex
	customers     map[uuid.UUID]Customer
	subscriptions map[string]Subscription
	trials        map[uuid.UUID]*time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers:     make(map[uuid.UUID]Customer),
		subscriptions: make(map[string]Subscription),
		trials:        make(map[uuid.UUID]*time.Time),
	}
}

// AddProfile seeds a profile with an optional trial end.
func (m *MemoryStore) AddProfile(userID uuid.UUID, trialEndsAt *time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trials[userID] = trialEndsAt
}

// TrialEndsAt reports the profile's trial end and whether the profile exists.
func (m *MemoryStore) TrialEndsAt(userID uuid.UUID) (*time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trials[userID]
	return t, ok
}

func (m *MemoryStore) ListProfileIDs(context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := slices.Collect(maps.Keys(m.trials))
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	return ids, nil
}

func (m *MemoryStore) Customers() []Customer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Collect(maps.Values(m.customers))
}

func (m *MemoryStore) Subscriptions() []Subscription {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Collect(maps.Values(m.subscriptions))
}

func (m *MemoryStore) Subscription(id string) (Subscription, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subscriptions[id]
	return s, ok
}

func (m *MemoryStore) FindCustomer(_ context.Context, userID uuid.UUID, stripeCustomerID string) (Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.UserID == userID && c.StripeCustomerID == stripeCustomerID {
			return c, nil
		}
	}
	return Customer{}, ErrCustomerNotFound
}

func (m *MemoryStore) CreateCustomer(_ context.Context, c Customer) (Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	m.customers[c.ID] = c
	return c, nil
}

func (m *MemoryStore) InsertSubscription(_ context.Context, s Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[s.CustomerID]; !ok {
		return ErrCustomerNotFound
	}
	if _, ok := m.subscriptions[s.ID]; ok {
		return ErrSubscriptionExists
	}
	m.subscriptions[s.ID] = s
	return nil
}

func (m *MemoryStore) UpsertSubscription(_ context.Context, s Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[s.CustomerID]; !ok {
		return ErrCustomerNotFound
	}
	if prev, ok := m.subscriptions[s.ID]; ok {
		s.CreatedAt = prev.CreatedAt
	}
	m.subscriptions[s.ID] = s
	return nil
}

func (m *MemoryStore) CancelSubscription(_ context.Context, id string, canceledAt, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subscriptions[id]
	if !ok {
		return nil
	}
	s.Status = StatusCanceled
	s.CanceledAt = &canceledAt
	s.UpdatedAt = updatedAt
	m.subscriptions[id] = s
	return nil
}

func (m *MemoryStore) ClearTrial(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trials[userID]; ok {
		m.trials[userID] = nil
	}
	return nil
}
