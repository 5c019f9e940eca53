package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ledger/core"
	"ledger/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type positionKey struct {
	userID  string
	assetID string
}

type stagedAsset struct {
	orig  *core.Asset
	cur   *core.Asset
	saved bool
}

type stagedPosition struct {
	orig  *core.Position
	cur   *core.Position
	saved bool
}

// batch stages the records touched by one operation
//
// Assets are accrued when first staged. Nothing reaches the stores before commit, so an
// operation rejected by validation leaves no trace.
type batch struct {
	s         *Service
	now       time.Time
	assets    map[string]*stagedAsset
	positions map[positionKey]*stagedPosition
	prices    map[string]decimal.Decimal
}

func (s *Service) newBatch() *batch {
	return &batch{
		s:         s,
		now:       s.now(),
		assets:    map[string]*stagedAsset{},
		positions: map[positionKey]*stagedPosition{},
		prices:    map[string]decimal.Decimal{},
	}
}

// asset load & accrue the asset
func (b *batch) asset(ctx context.Context, assetID string) (*core.Asset, error) {
	if staged, ok := b.assets[assetID]; ok {
		return staged.cur, nil
	}

	asset, err := b.s.assets.Find(ctx, assetID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("assets.Find", assetID)
		return nil, err
	}

	if asset.ID == 0 {
		return nil, fmt.Errorf("asset %s: %w", assetID, core.ErrAssetNotFound)
	}

	cur := asset.Clone()
	lending.AccrueInterest(cur, b.s.model, b.now)
	b.assets[assetID] = &stagedAsset{orig: asset, cur: cur}
	return cur, nil
}

func (b *batch) position(ctx context.Context, userID, assetID string) (*core.Position, error) {
	key := positionKey{userID, assetID}
	if staged, ok := b.positions[key]; ok {
		return staged.cur, nil
	}

	position, err := b.s.positions.Find(ctx, userID, assetID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("positions.Find", userID, assetID)
		return nil, err
	}

	position.UserID = userID
	position.AssetID = assetID
	b.positions[key] = &stagedPosition{orig: position, cur: position.Clone()}
	return b.positions[key].cur, nil
}

// userPositions every position of the user, staged ones included, ordered by asset id
func (b *batch) userPositions(ctx context.Context, userID string) ([]*core.Position, error) {
	stored, err := b.s.positions.FindByUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("positions.FindByUser", userID)
		return nil, err
	}

	assetIDs := map[string]bool{}
	for _, p := range stored {
		assetIDs[p.AssetID] = true
	}

	for key := range b.positions {
		if key.userID == userID {
			assetIDs[key.assetID] = true
		}
	}

	positions := make([]*core.Position, 0, len(assetIDs))
	for assetID := range assetIDs {
		p, err := b.position(ctx, userID, assetID)
		if err != nil {
			return nil, err
		}

		positions = append(positions, p)
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].AssetID < positions[j].AssetID
	})

	return positions, nil
}

func (b *batch) price(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if price, ok := b.prices[assetID]; ok {
		return price, nil
	}

	price, err := b.s.prices.Price(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("price of %s is %s: %w", assetID, price, core.ErrInvalidPrice)
	}

	b.prices[assetID] = price
	return price, nil
}

// holdings accrue & price every non empty position of the user
func (b *batch) holdings(ctx context.Context, userID string) ([]lending.Holding, error) {
	positions, err := b.userPositions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var holdings []lending.Holding
	for _, p := range positions {
		if !p.Collateral.IsPositive() && !p.Principal.IsPositive() {
			continue
		}

		asset, err := b.asset(ctx, p.AssetID)
		if err != nil {
			return nil, err
		}

		price, err := b.price(ctx, p.AssetID)
		if err != nil {
			return nil, err
		}

		holdings = append(holdings, lending.Holding{
			Asset:    asset,
			Position: p,
			Price:    price,
		})
	}

	return holdings, nil
}

func (b *batch) valuation(ctx context.Context, userID string) (lending.Valuation, error) {
	holdings, err := b.holdings(ctx, userID)
	if err != nil {
		return lending.Valuation{}, err
	}

	return lending.Evaluate(holdings), nil
}

// hasDebt whether the user owes anything in any asset
func (b *batch) hasDebt(ctx context.Context, userID string) (bool, error) {
	positions, err := b.userPositions(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, p := range positions {
		if p.HasDebt() {
			return true, nil
		}
	}

	return false, nil
}

func assetChanged(a, b *core.Asset) bool {
	return !a.AccruedAt.Equal(b.AccruedAt) ||
		!a.BorrowIndex.Equal(b.BorrowIndex) ||
		!a.TotalSupplied.Equal(b.TotalSupplied) ||
		!a.TotalBorrowed.Equal(b.TotalBorrowed) ||
		!a.Reserves.Equal(b.Reserves)
}

func positionChanged(a, b *core.Position) bool {
	return !a.Collateral.Equal(b.Collateral) ||
		!a.Principal.Equal(b.Principal) ||
		!a.InterestIndex.Equal(b.InterestIndex)
}

func (b *batch) sortedAssets() []*stagedAsset {
	keys := make([]string, 0, len(b.assets))
	for k := range b.assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	staged := make([]*stagedAsset, 0, len(keys))
	for _, k := range keys {
		staged = append(staged, b.assets[k])
	}

	return staged
}

func (b *batch) sortedPositions() []*stagedPosition {
	keys := make([]positionKey, 0, len(b.positions))
	for k := range b.positions {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].userID != keys[j].userID {
			return keys[i].userID < keys[j].userID
		}
		return keys[i].assetID < keys[j].assetID
	})

	staged := make([]*stagedPosition, 0, len(keys))
	for _, k := range keys {
		staged = append(staged, b.positions[k])
	}

	return staged
}

// commit persist every changed record, restoring the saved ones if any save fails
func (b *batch) commit(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, staged := range b.sortedAssets() {
		if !assetChanged(staged.orig, staged.cur) {
			continue
		}

		if err := b.s.assets.Update(ctx, staged.cur); err != nil {
			log.WithError(err).Errorln("assets.Update", staged.cur.AssetID)
			_ = b.rollback(ctx)
			return err
		}

		staged.saved = true
	}

	for _, staged := range b.sortedPositions() {
		if !positionChanged(staged.orig, staged.cur) {
			continue
		}

		if err := b.s.positions.Save(ctx, staged.cur); err != nil {
			log.WithError(err).Errorln("positions.Save", staged.cur.UserID, staged.cur.AssetID)
			_ = b.rollback(ctx)
			return err
		}

		staged.saved = true
	}

	return nil
}

// rollback restore the saved records to their state before the operation
func (b *batch) rollback(ctx context.Context) error {
	log := logger.FromContext(ctx)
	var rollbackErr error

	positions := b.sortedPositions()
	for i := len(positions) - 1; i >= 0; i-- {
		staged := positions[i]
		if !staged.saved {
			continue
		}

		restore := staged.orig.Clone()
		if restore.ID == 0 {
			// positions are never deleted, a new one is reset to empty
			restore = &core.Position{
				ID:            staged.cur.ID,
				UserID:        staged.cur.UserID,
				AssetID:       staged.cur.AssetID,
				Collateral:    decimal.Zero,
				Principal:     decimal.Zero,
				InterestIndex: decimal.Zero,
			}
		}
		restore.Version = staged.cur.Version

		if err := b.s.positions.Save(ctx, restore); err != nil {
			log.WithError(err).Errorln("rollback: positions.Save", restore.UserID, restore.AssetID)
			if rollbackErr == nil {
				rollbackErr = err
			}
			continue
		}

		staged.saved = false
	}

	assets := b.sortedAssets()
	for i := len(assets) - 1; i >= 0; i-- {
		staged := assets[i]
		if !staged.saved {
			continue
		}

		restore := staged.orig.Clone()
		restore.Version = staged.cur.Version

		if err := b.s.assets.Update(ctx, restore); err != nil {
			log.WithError(err).Errorln("rollback: assets.Update", restore.AssetID)
			if rollbackErr == nil {
				rollbackErr = err
			}
			continue
		}

		staged.saved = false
	}

	return rollbackErr
}
