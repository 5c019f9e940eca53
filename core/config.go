package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Config ledger config
type Config struct {
	App          App          `json:"app"`
	DB           db.Config    `json:"db"`
	PriceOracle  PriceOracle  `json:"price_oracle"`
	InterestRate InterestRate `json:"interest_rate"`
	Assets       []AssetSpec  `json:"assets"`
	Admins       []string     `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	// asset used by the single asset api
	DefaultAsset string `json:"default_asset"`
	// max share of a debt repayable in one liquidation, bps, 0 means no limit
	CloseFactor int64 `json:"close_factor"`
	// pool account holding the deposited funds in the token ledger
	PoolAccount string `json:"pool_account"`
	// token ledger owner allowed to mint
	TokenOwner      string        `json:"token_owner"`
	AccrualInterval time.Duration `json:"accrual_interval"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string        `json:"end_point"`
	CacheTTL time.Duration `json:"cache_ttl"`
	// fixed prices, asset_id => price, used when end_point is empty
	Prices map[string]float64 `json:"prices"`
}

// InterestRate interest rate model config, rates are annual
type InterestRate struct {
	// linear or jump
	Model     string  `json:"model"`
	BaseRate  float64 `json:"base_rate"`
	Slope     float64 `json:"slope"`
	JumpSlope float64 `json:"jump_slope"`
	Kink      float64 `json:"kink"`
}

// AssetSpec asset registered at start
type AssetSpec struct {
	AssetID  string `json:"asset_id"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`

	MaxLtv               int64 `json:"max_ltv"`
	LiquidationThreshold int64 `json:"liquidation_threshold"`
	LiquidationBonus     int64 `json:"liquidation_bonus"`
}

// Config risk parameters of the asset
func (s AssetSpec) Config() AssetConfig {
	return AssetConfig{
		MaxLtv:               s.MaxLtv,
		LiquidationThreshold: s.LiquidationThreshold,
		LiquidationBonus:     s.LiquidationBonus,
	}
}
