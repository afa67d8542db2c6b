package payments

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

const memoryCapacity = 500

// MemoryRepo — журнал в памяти, когда Postgres не настроен. Хранит последние memoryCapacity оплат.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []Payment
	cap   int
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{cap: memoryCapacity} }

func (m *MemoryRepo) Save(_ context.Context, p Payment) error {
	if p.ID == uuid.Nil {
		return ErrNilPayment
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, p)
	if len(m.items) > m.cap {
		m.items = append([]Payment(nil), m.items[len(m.items)-m.cap:]...)
	}
	return nil
}

func (m *MemoryRepo) Recent(_ context.Context, limit int) ([]Payment, error) {
	limit = clampLimit(limit)
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Payment, 0, limit)
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}
