// Package errors provides coded errors for cosmo-api.
//
// Every error that crosses a layer boundary carries a Code. Repositories
// report storage outcomes (NotFound, AlreadyExists, Unavailable),
// orchestrators validate input (InvalidArgument) and wrap what they call,
// and handlers translate the code to an HTTP status or a gRPC status.
//
// Creating and wrapping:
//
//	err := errors.NotFound("shared team not found").WithMeta("short_code", code)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to load shared team")
//	}
//
// Wrap keeps the code of a coded cause and defaults to Internal otherwise.
// WrapWithCode replaces it.
//
// Checking:
//
//	if errors.IsNotFound(err) {
//	    // render the "link expired" state
//	}
//
// Validation:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("code", input.Code, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// Share taxonomy: a malformed inline token is InvalidArgument, an unknown or
// expired short code is NotFound, and a storage outage is Unavailable.
package errors
