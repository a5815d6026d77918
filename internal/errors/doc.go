// Package errors provides the coded error type shared by every layer of the
// encounter service.
//
// Errors carry a Code, a user facing message, an optional cause and metadata:
//
//	err := errors.NotFoundf("creature %d not found", id).
//	    WithMeta("creature_id", id)
//
// Wrapping keeps the code of an inner *Error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load creature")
//	}
//
// # Codes used by the encounter engine
//
//   - InvalidArgument: malformed requests, e.g. an empty party
//   - Unavailable: the creature cache has not been built yet
//   - FailedPrecondition: no encounter can be composed for the budget and filters
//   - NotFound: unknown creature id
//   - Internal: storage failures and broken table invariants
//
// Broken invariants in the fixed XP and difficulty tables are reported with
// Invariantf, which panics; the gRPC recovery interceptor converts the panic
// into an Internal status.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateMinItems("party_levels", len(levels), 1, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err). The code is attached as an
// ErrorInfo detail and metadata as a Struct detail, so FromGRPCError on the
// client side restores both.
package errors
