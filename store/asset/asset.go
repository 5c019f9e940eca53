package asset

import (
	"context"

	"ledger/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type assetStore struct {
	db *db.DB
}

// New new asset store
func New(db *db.DB) core.IAssetStore {
	return &assetStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Asset{})
		if err := tx.AutoMigrate(core.Asset{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetStore) Create(ctx context.Context, asset *core.Asset) error {
	return s.db.Update().Create(asset).Error
}

func (s *assetStore) Find(ctx context.Context, assetID string) (*core.Asset, error) {
	var asset core.Asset
	if err := s.db.View().Where("asset_id=?", assetID).First(&asset).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Asset{}, nil
		}

		return nil, err
	}

	return &asset, nil
}

func (s *assetStore) All(ctx context.Context) ([]*core.Asset, error) {
	var assets []*core.Asset
	if err := s.db.View().Order("id ASC").Find(&assets).Error; err != nil {
		return nil, err
	}

	return assets, nil
}

func (s *assetStore) Update(ctx context.Context, asset *core.Asset) error {
	version := asset.Version
	asset.Version++

	tx := s.db.Update().Model(core.Asset{}).Where("asset_id=? and version=?", asset.AssetID, version).Updates(map[string]interface{}{
		"total_supplied": asset.TotalSupplied,
		"total_borrowed": asset.TotalBorrowed,
		"reserves":       asset.Reserves,
		"borrow_index":   asset.BorrowIndex,
		"accrued_at":     asset.AccruedAt,
		"version":        asset.Version,
	})
	if tx.Error != nil {
		asset.Version = version
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		asset.Version = version
		return db.ErrOptimisticLock
	}

	return nil
}
