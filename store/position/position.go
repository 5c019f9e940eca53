package position

import (
	"context"

	"ledger/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	var position core.Position
	if err := s.db.View().Where("user_id=? and asset_id=?", userID, assetID).First(&position).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Position{UserID: userID, AssetID: assetID}, nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *positionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("user_id=?", userID).Order("id ASC").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionStore) Save(ctx context.Context, position *core.Position) error {
	if position.ID == 0 {
		return s.db.Update().Create(position).Error
	}

	version := position.Version
	position.Version++

	tx := s.db.Update().Model(core.Position{}).Where("id=? and version=?", position.ID, version).Updates(map[string]interface{}{
		"collateral":     position.Collateral,
		"principal":      position.Principal,
		"interest_index": position.InterestIndex,
		"version":        position.Version,
	})
	if tx.Error != nil {
		position.Version = version
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		position.Version = version
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *positionStore) Users(ctx context.Context) ([]string, error) {
	var users []string
	if err := s.db.View().Model(core.Position{}).Order("user_id").Pluck("DISTINCT user_id", &users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
