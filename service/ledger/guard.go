package ledger

import (
	"context"
)

type guardKey struct {
	s *Service
}

func enter(ctx context.Context, s *Service) context.Context {
	return context.WithValue(ctx, guardKey{s: s}, true)
}

// entered reports whether ctx was derived inside an operation of s, which is the
// case for calls made back into the engine by the transfer collaborator
func entered(ctx context.Context, s *Service) bool {
	v, _ := ctx.Value(guardKey{s: s}).(bool)
	return v
}

type traceKey struct{}

// WithTraceID attach a caller chosen trace id to the next operation, replaying an
// operation with a known trace id returns the journaled transaction untouched
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

func traceIDFrom(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(traceKey{}).(string)
	return traceID, ok && traceID != ""
}
