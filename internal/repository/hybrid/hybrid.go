// Package hybrid decorates a durable storage tier with a transparent
// in-memory fallback. Each adapter probes its durable tier once at
// construction; a failed probe pins the adapter to the memory tier for its
// whole lifetime. After a successful probe every operation still tries the
// durable tier first and absorbs its failures by retrying the same call
// against memory, so storage availability never surfaces to the caller.
package hybrid

import (
	"Pulse-Backend/internal/repository"
	"context"
	"time"

	"go.uber.org/zap"
)

// probeTimeout bounds the construction-time liveness probe.
const probeTimeout = 3 * time.Second

// Tier names reported for diagnostics.
const (
	TierDurable = "durable"
	TierMemory  = "memory"
)

// pinger is the slice of the storage interfaces the probe needs.
type pinger interface {
	Ping(ctx context.Context) error
}

// state carries the per-adapter fallback decision and logger.
type state struct {
	preferDurable bool
	log           *zap.Logger
}

// probe decides the adapter's tier once. There is no later re-promotion: a
// durable tier that was down at boot stays unused until restart.
func probe(durable pinger, name string, log *zap.Logger) state {
	s := state{log: log}

	if durable == nil {
		log.Warn("no durable store configured, using memory tier", zap.String("store", name))
		return s
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := durable.Ping(ctx); err != nil {
		log.Warn("durable store probe failed, pinning to memory tier",
			zap.String("store", name),
			zap.Error(err))
		return s
	}

	log.Info("durable store probe succeeded", zap.String("store", name))
	s.preferDurable = true
	return s
}

// ActiveTier reports which tier the adapter was pinned to.
func (s *state) ActiveTier() string {
	if s.preferDurable {
		return TierDurable
	}
	return TierMemory
}

// fallible reports whether err should trigger the memory fallback. Domain
// sentinels are results, not infrastructure failures.
func fallible(err error) bool {
	return err != nil && !repository.IsDomainError(err)
}

// call runs op against the durable tier when preferred, falling back to the
// memory tier on infrastructure failure.
func call[T any](s *state, op string, durable, memory func() (T, error)) (T, error) {
	if s.preferDurable {
		result, err := durable()
		if !fallible(err) {
			return result, err
		}
		s.log.Warn("durable store call failed, retrying against memory tier",
			zap.String("op", op),
			zap.Error(err))
	}
	return memory()
}

// callErr is the error-only variant of call.
func callErr(s *state, op string, durable, memory func() error) error {
	if s.preferDurable {
		err := durable()
		if !fallible(err) {
			return err
		}
		s.log.Warn("durable store call failed, retrying against memory tier",
			zap.String("op", op),
			zap.Error(err))
	}
	return memory()
}
