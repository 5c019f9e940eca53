package cmd

import (
	"ledger/core"
	"ledger/store/asset"
	"ledger/store/memory"
	"ledger/store/position"
	"ledger/store/transaction"

	"github.com/fox-one/pkg/store/db"
	_ "github.com/lib/pq"
)

type stores struct {
	database     *db.DB
	assets       core.IAssetStore
	positions    core.IPositionStore
	transactions core.ITransactionStore
}

func (s *stores) Close() {
	if s.database != nil {
		s.database.Close()
	}
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// provideStores keeps everything in memory when no database is configured
func provideStores() *stores {
	if cfg.DB.Dialect == "" {
		return &stores{
			assets:       memory.NewAssetStore(),
			positions:    memory.NewPositionStore(),
			transactions: memory.NewTransactionStore(),
		}
	}

	database := provideDatabase()
	return &stores{
		database:     database,
		assets:       asset.New(database),
		positions:    position.New(database),
		transactions: transaction.New(database),
	}
}
