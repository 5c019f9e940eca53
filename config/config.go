package config

import (
	"time"

	"ledger/core"

	configUtil "github.com/fox-one/pkg/config"
)

const (
	defaultPoolAccount     = "ledger-pool"
	defaultAccrualInterval = time.Minute
	defaultPriceCacheTTL   = 10 * time.Second
)

// Load load config file, LEDGER_ prefixed env vars override the file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LEDGER")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(cfg *core.Config) {
	if cfg.App.PoolAccount == "" {
		cfg.App.PoolAccount = defaultPoolAccount
	}

	if cfg.App.AccrualInterval <= 0 {
		cfg.App.AccrualInterval = defaultAccrualInterval
	}

	if cfg.PriceOracle.CacheTTL <= 0 {
		cfg.PriceOracle.CacheTTL = defaultPriceCacheTTL
	}

	if cfg.InterestRate.Model == "" {
		cfg.InterestRate.Model = "linear"
	}

	if cfg.App.DefaultAsset == "" && len(cfg.Assets) > 0 {
		cfg.App.DefaultAsset = cfg.Assets[0].AssetID
	}
}
