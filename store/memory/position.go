package memory

import (
	"context"
	"sort"
	"sync"

	"ledger/core"

	"github.com/fox-one/pkg/store/db"
)

type positionKey struct {
	userID  string
	assetID string
}

type positionStore struct {
	mu        sync.RWMutex
	seq       uint64
	positions map[positionKey]*core.Position
}

// NewPositionStore process local position store
func NewPositionStore() core.IPositionStore {
	return &positionStore{
		positions: map[positionKey]*core.Position{},
	}
}

func (s *positionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if position, ok := s.positions[positionKey{userID, assetID}]; ok {
		return position.Clone(), nil
	}

	return &core.Position{UserID: userID, AssetID: assetID}, nil
}

func (s *positionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var positions []*core.Position
	for key, position := range s.positions {
		if key.userID == userID {
			positions = append(positions, position.Clone())
		}
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].ID < positions[j].ID
	})

	return positions, nil
}

func (s *positionStore) Save(ctx context.Context, position *core.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := positionKey{position.UserID, position.AssetID}
	stored, ok := s.positions[key]

	if position.ID == 0 {
		if ok {
			return db.ErrOptimisticLock
		}

		s.seq++
		position.ID = s.seq
		s.positions[key] = position.Clone()
		return nil
	}

	if !ok || stored.Version != position.Version {
		return db.ErrOptimisticLock
	}

	position.Version++
	s.positions[key] = position.Clone()
	return nil
}

func (s *positionStore) Users(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	var users []string
	for key := range s.positions {
		if !seen[key.userID] {
			seen[key.userID] = true
			users = append(users, key.userID)
		}
	}

	sort.Strings(users)
	return users, nil
}
