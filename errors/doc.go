/*
Package errors provides semantic error types for dualstore.

The package defines the failure classes of the two storage tiers with specific
types that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrNotFound          = errors.New("record not found")
	    ErrInvalidInput      = errors.New("invalid input")
	    ErrKeyMissing        = errors.New("record key missing")
	    ErrUnknownCollection = errors.New("unknown collection")
	    ErrLocalUnavailable  = errors.New("local store unavailable")
	    ErrRemoteUnavailable = errors.New("remote store unavailable")
	    ErrSchemaTooNew      = errors.New("schema version is newer than supported")
	)

Local failures (LocalError) surface to callers on write paths. Remote failures
(RemoteError) are absorbed by the orchestrator and only logged.

Usage:

	rec, err := local.Get(ctx, registry.Dictionary, "shpi")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // a miss, not a failure
	    }
	    return err
	}

	err := errors.NewKeyMissingError("dictionary", "word")
	err := errors.NewRemoteError("upsert", "dictionary", cause)

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
