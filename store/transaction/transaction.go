package transaction

import (
	"context"

	"ledger/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.ITransactionStore {
	return &transactionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transactionStore) Create(ctx context.Context, transaction *core.Transaction) error {
	return s.db.Update().Where("trace_id=?", transaction.TraceID).FirstOrCreate(transaction).Error
}

func (s *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	var transaction core.Transaction
	if err := s.db.View().Where("trace_id=?", traceID).First(&transaction).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Transaction{}, nil
		}

		return nil, err
	}

	return &transaction, nil
}

func (s *transactionStore) Update(ctx context.Context, transaction *core.Transaction) error {
	version := transaction.Version
	transaction.Version++

	tx := s.db.Update().Model(core.Transaction{}).Where("trace_id=? and version=?", transaction.TraceID, version).Updates(map[string]interface{}{
		"status":  transaction.Status,
		"data":    transaction.Data,
		"version": gorm.Expr("version + 1"),
	})
	if tx.Error != nil {
		transaction.Version = version
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		transaction.Version = version
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *transactionStore) List(ctx context.Context, fromID int64, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	if limit <= 0 {
		limit = 500
	}

	if err := s.db.View().Where("id > ?", fromID).Order("id ASC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}

func (s *transactionStore) ListByUser(ctx context.Context, userID string, fromID int64, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	if limit <= 0 {
		limit = 500
	}

	if err := s.db.View().Where("user_id=? and id > ?", userID, fromID).Order("id ASC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
