// Package coordinator tracks in-flight evolve and sell operations per card
// instance. It prevents two concurrent operations from targeting the same
// instance and exposes the pending flags the presentation layer renders as
// per-card loading state.
//
// The state machine per instance is Idle -> Pending -> Idle. A second begin
// while Pending is rejected, not queued; Finish always returns the instance
// to Idle regardless of the operation's outcome. Operations on different
// instances are independent.
package coordinator

import (
	"sync"

	"github.com/packvault/collection-api/internal/errors"
)

// Coordinator is safe for concurrent use.
type Coordinator struct {
	mu       sync.Mutex
	evolving map[string]string
	selling  map[string]struct{}
}

// New creates a new Coordinator with no pending operations.
func New() *Coordinator {
	return &Coordinator{
		evolving: make(map[string]string),
		selling:  make(map[string]struct{}),
	}
}

func (c *Coordinator) pendingLocked(instanceID string) bool {
	if _, ok := c.evolving[instanceID]; ok {
		return true
	}
	_, ok := c.selling[instanceID]
	return ok
}

// BeginEvolve transitions the instance to Evolve-Pending.
// Returns errors.CodeAlreadyInProgress if any operation is already pending
// on the instance.
func (c *Coordinator) BeginEvolve(instanceID, targetID string) error {
	if instanceID == "" {
		return errors.InvalidArgument("instance ID cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingLocked(instanceID) {
		return errors.AlreadyInProgressf("operation already in progress for instance %s", instanceID)
	}
	c.evolving[instanceID] = targetID
	return nil
}

// FinishEvolve returns the instance to Idle. It is unconditional: callers
// defer it so the pending flag clears on success, failure, or panic.
func (c *Coordinator) FinishEvolve(instanceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.evolving, instanceID)
}

// BeginSell transitions the instance to Sell-Pending.
// Returns errors.CodeAlreadyInProgress if any operation is already pending
// on the instance.
func (c *Coordinator) BeginSell(instanceID string) error {
	if instanceID == "" {
		return errors.InvalidArgument("instance ID cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingLocked(instanceID) {
		return errors.AlreadyInProgressf("operation already in progress for instance %s", instanceID)
	}
	c.selling[instanceID] = struct{}{}
	return nil
}

// FinishSell returns the instance to Idle. Unconditional, like FinishEvolve.
func (c *Coordinator) FinishSell(instanceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.selling, instanceID)
}

// EvolvingTo returns the pending evolution target for the instance, if any.
func (c *Coordinator) EvolvingTo(instanceID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	target, ok := c.evolving[instanceID]
	return target, ok
}

// IsSelling reports whether a sell is pending for the instance.
func (c *Coordinator) IsSelling(instanceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selling[instanceID]
	return ok
}

// PendingFlags is a snapshot of the pending state for one instance.
type PendingFlags struct {
	EvolvingTo string `json:"evolving_to,omitempty"`
	IsSelling  bool   `json:"is_selling"`
}

// Pending returns a snapshot of all instances with pending operations.
func (c *Coordinator) Pending() map[string]PendingFlags {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]PendingFlags, len(c.evolving)+len(c.selling))
	for id, target := range c.evolving {
		flags := out[id]
		flags.EvolvingTo = target
		out[id] = flags
	}
	for id := range c.selling {
		flags := out[id]
		flags.IsSelling = true
		out[id] = flags
	}
	return out
}
