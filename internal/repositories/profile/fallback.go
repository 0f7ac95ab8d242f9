package profile

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/packvault/collection-api/internal/errors"
)

// FallbackRepository delegates to a primary repository and degrades to an
// in-memory one when the primary reports Unavailable. Storage being down is
// recovered locally and never surfaced to the caller.
//
// Degradation is sticky: after the first unavailability every call is served
// from memory for the rest of the session, so one logical operation can
// never land half on the primary and half in memory.
type FallbackRepository struct {
	primary  Repository
	memory   Repository
	degraded atomic.Bool
}

// FallbackConfig contains configuration for the fallback profile repository.
type FallbackConfig struct {
	Primary Repository
	Memory  Repository
}

// Validate validates the FallbackConfig.
func (cfg *FallbackConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.Primary == nil {
		vb.RequiredField("Primary")
	}
	if cfg.Memory == nil {
		vb.RequiredField("Memory")
	}
	return vb.Build()
}

// NewFallback creates a repository that degrades from Primary to Memory.
func NewFallback(cfg *FallbackConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &FallbackRepository{
		primary: cfg.Primary,
		memory:  cfg.Memory,
	}, nil
}

func (r *FallbackRepository) degrade(ctx context.Context, op string, err error) {
	if r.degraded.CompareAndSwap(false, true) {
		slog.WarnContext(ctx, "profile storage unavailable, degrading to in-memory for the session",
			"op", op,
			"error", err.Error())
	}
}

// Get retrieves a profile, falling back to memory when storage is down
func (r *FallbackRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if r.degraded.Load() {
		return r.memory.Get(ctx, input)
	}

	out, err := r.primary.Get(ctx, input)
	if err != nil && errors.IsUnavailable(err) {
		r.degrade(ctx, "get", err)
		return r.memory.Get(ctx, input)
	}
	return out, err
}

// Save writes a profile, falling back to memory when storage is down
func (r *FallbackRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if r.degraded.Load() {
		return r.memory.Save(ctx, input)
	}

	out, err := r.primary.Save(ctx, input)
	if err != nil && errors.IsUnavailable(err) {
		r.degrade(ctx, "save", err)
		return r.memory.Save(ctx, input)
	}
	return out, err
}
