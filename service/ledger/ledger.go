package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ledger/core"
	"ledger/pkg/lending"
	"ledger/pkg/metrics"
)

// Option configures the ledger service
type Option func(s *Service)

// WithClock replace the wall clock used for interest accrual
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithCloseFactor cap the share of a debt repayable in one liquidation, bps, 0 means no cap
func WithCloseFactor(bps int64) Option {
	return func(s *Service) {
		s.closeFactor = bps
	}
}

// WithMetrics record every action
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDefaultAsset asset served by the single asset api
func WithDefaultAsset(assetID string) Option {
	return func(s *Service) {
		s.defaultAsset = assetID
	}
}

// Service multi-asset collateralized lending ledger
//
// Every operation, reads included, runs under one engine wide lock. A mutating operation
// stages its records, validates them, persists them and journals a transaction before
// the external transfer; a failed transfer restores the staged records.
type Service struct {
	assets       core.IAssetStore
	positions    core.IPositionStore
	transactions core.ITransactionStore
	prices       core.IPriceFeed
	transfers    core.ITransferService
	model        core.IInterestRateModel

	clock        func() time.Time
	closeFactor  int64
	defaultAsset string
	metrics      *metrics.Metrics

	mu sync.Mutex
}

var _ core.ILedgerService = (*Service)(nil)

// New new ledger service
func New(
	assets core.IAssetStore,
	positions core.IPositionStore,
	transactions core.ITransactionStore,
	prices core.IPriceFeed,
	transfers core.ITransferService,
	model core.IInterestRateModel,
	opts ...Option,
) (*Service, error) {
	s := &Service{
		assets:       assets,
		positions:    positions,
		transactions: transactions,
		prices:       prices,
		transfers:    transfers,
		model:        model,
		clock:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.closeFactor < 0 || s.closeFactor > lending.BasisPoints {
		return nil, fmt.Errorf("close factor %d out of range: %w", s.closeFactor, core.ErrInvalidConfig)
	}

	return s, nil
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

// lock acquire the engine lock, fails if ctx already runs inside an operation of this engine.
// The marker travels with ctx and its children only, a context not derived from the
// operation's ctx waits for the lock like any other caller.
func (s *Service) lock(ctx context.Context) (context.Context, func(), error) {
	if entered(ctx, s) {
		return ctx, nil, core.ErrReentrant
	}

	s.mu.Lock()
	return enter(ctx, s), s.mu.Unlock, nil
}

func (s *Service) observe(action core.ActionType, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = core.CodeOf(err).String()
	}

	s.metrics.ObserveAction(action.String(), result, start)
}
