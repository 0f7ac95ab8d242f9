// Package errors provides structured error handling for the collection API.
//
// It provides:
//   - Structured errors with codes, messages, and metadata
//   - Economy-specific codes (unknown pack, insufficient funds, price
//     mismatch, invalid evolution target, already in progress)
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("card instance not found")
//	err := errors.InsufficientFundsf("pack costs %d, balance is %d", price, balance)
//
// Adding metadata:
//
//	err := errors.NotFound("card instance not found").
//	    WithMeta("instance_id", instanceID).
//	    WithMeta("player_id", playerID)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to get profile")
//	}
//
// # Error Checking
//
//	if errors.IsInsufficientFunds(err) {
//	    // Decline the purchase, leave both stores untouched
//	}
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return NotFound / AlreadyExists / Unavailable
//   - Include relevant IDs in metadata
//   - Wrap storage errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Return economy codes for declined operations; never leave the
//     profile or collection partially mutated
//
// Handler layer:
//   - Map codes to HTTP status via Code.HTTPStatus
//   - Extract user-friendly messages
package errors
