package oracle

import (
	"context"
	"time"

	"ledger/core"

	"github.com/bluele/gcache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Cache cache prices of the feed for exp, concurrent misses share one pull
func Cache(feed core.IPriceFeed, exp time.Duration) core.IPriceFeed {
	return &cachePriceFeed{
		IPriceFeed: feed,
		cache:      gcache.New(512).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cachePriceFeed struct {
	core.IPriceFeed
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePriceFeed) Price(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if v, err := s.cache.Get(assetID); err == nil {
		if price, ok := v.(decimal.Decimal); ok {
			return price, nil
		}
	}

	v, err, _ := s.sf.Do(assetID, func() (interface{}, error) {
		price, err := s.IPriceFeed.Price(ctx, assetID)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(assetID, price)
		return price, nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	return v.(decimal.Decimal), nil
}
