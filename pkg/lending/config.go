package lending

import (
	"fmt"
	"strings"

	"ledger/core"
)

// ValidateConfig check the risk parameters
//
// 0 < max_ltv <= liquidation_threshold <= 10000 <= liquidation_bonus
func ValidateConfig(cfg core.AssetConfig) error {
	switch {
	case cfg.MaxLtv <= 0 || cfg.MaxLtv > BasisPoints:
		return fmt.Errorf("max_ltv %d out of range: %w", cfg.MaxLtv, core.ErrInvalidConfig)
	case cfg.LiquidationThreshold < cfg.MaxLtv || cfg.LiquidationThreshold > BasisPoints:
		return fmt.Errorf("liquidation_threshold %d out of range: %w", cfg.LiquidationThreshold, core.ErrInvalidConfig)
	case cfg.LiquidationBonus < BasisPoints:
		return fmt.Errorf("liquidation_bonus %d below 10000: %w", cfg.LiquidationBonus, core.ErrInvalidConfig)
	}

	return nil
}

// ValidateAsset check the asset identity and its risk parameters
func ValidateAsset(assetID string, decimals int32, cfg core.AssetConfig) error {
	if strings.TrimSpace(assetID) == "" {
		return fmt.Errorf("empty asset id: %w", core.ErrInvalidConfig)
	}

	if decimals < 0 || decimals > MaxDecimals {
		return fmt.Errorf("decimals %d out of range: %w", decimals, core.ErrInvalidConfig)
	}

	return ValidateConfig(cfg)
}
