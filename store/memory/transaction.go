package memory

import (
	"context"
	"sync"

	"ledger/core"

	"github.com/fox-one/pkg/store/db"
)

type transactionStore struct {
	mu           sync.RWMutex
	transactions []*core.Transaction
	traces       map[string]*core.Transaction
}

// NewTransactionStore process local transaction store
func NewTransactionStore() core.ITransactionStore {
	return &transactionStore{
		traces: map[string]*core.Transaction{},
	}
}

func clone(t *core.Transaction) *core.Transaction {
	c := *t
	c.Data = append([]byte(nil), t.Data...)
	return &c
}

func (s *transactionStore) Create(ctx context.Context, transaction *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.traces[transaction.TraceID]; ok {
		*transaction = *clone(stored)
		return nil
	}

	transaction.ID = int64(len(s.transactions) + 1)
	stored := clone(transaction)
	s.transactions = append(s.transactions, stored)
	s.traces[stored.TraceID] = stored
	return nil
}

func (s *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if stored, ok := s.traces[traceID]; ok {
		return clone(stored), nil
	}

	return &core.Transaction{}, nil
}

func (s *transactionStore) Update(ctx context.Context, transaction *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.traces[transaction.TraceID]
	if !ok || stored.Version != transaction.Version {
		return db.ErrOptimisticLock
	}

	transaction.Version++
	stored.Status = transaction.Status
	stored.Data = append([]byte(nil), transaction.Data...)
	stored.Version = transaction.Version
	return nil
}

func (s *transactionStore) List(ctx context.Context, fromID int64, limit int) ([]*core.Transaction, error) {
	return s.list(fromID, limit, func(*core.Transaction) bool { return true })
}

func (s *transactionStore) ListByUser(ctx context.Context, userID string, fromID int64, limit int) ([]*core.Transaction, error) {
	return s.list(fromID, limit, func(t *core.Transaction) bool { return t.UserID == userID })
}

func (s *transactionStore) list(fromID int64, limit int, match func(*core.Transaction) bool) ([]*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 500
	}

	var transactions []*core.Transaction
	for _, t := range s.transactions {
		if t.ID <= fromID || !match(t) {
			continue
		}

		transactions = append(transactions, clone(t))
		if len(transactions) >= limit {
			break
		}
	}

	return transactions, nil
}
