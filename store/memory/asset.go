package memory

import (
	"context"
	"sort"
	"sync"

	"ledger/core"

	"github.com/fox-one/pkg/store/db"
)

type assetStore struct {
	mu     sync.RWMutex
	seq    uint64
	assets map[string]*core.Asset
}

// NewAssetStore process local asset store
func NewAssetStore() core.IAssetStore {
	return &assetStore{
		assets: map[string]*core.Asset{},
	}
}

func (s *assetStore) Create(ctx context.Context, asset *core.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assets[asset.AssetID]; ok {
		return core.ErrDuplicateAsset
	}

	s.seq++
	asset.ID = s.seq
	s.assets[asset.AssetID] = asset.Clone()
	return nil
}

func (s *assetStore) Find(ctx context.Context, assetID string) (*core.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if asset, ok := s.assets[assetID]; ok {
		return asset.Clone(), nil
	}

	return &core.Asset{}, nil
}

func (s *assetStore) All(ctx context.Context) ([]*core.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assets := make([]*core.Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		assets = append(assets, asset.Clone())
	}

	sort.Slice(assets, func(i, j int) bool {
		return assets[i].ID < assets[j].ID
	})

	return assets, nil
}

func (s *assetStore) Update(ctx context.Context, asset *core.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.assets[asset.AssetID]
	if !ok {
		return core.ErrAssetNotFound
	}

	if stored.Version != asset.Version {
		return db.ErrOptimisticLock
	}

	asset.Version++
	s.assets[asset.AssetID] = asset.Clone()
	return nil
}
