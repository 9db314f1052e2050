package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Asking questions is disabled until an API key is set.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the LLM API rate limit was exceeded
	// and the bounded retry policy was exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrContextTooLong indicates the assembled context exceeded the
	// model's window despite the token budget. Callers map this to a
	// remediation message (select fewer groups, lower the budget).
	ErrContextTooLong = errors.New("context too long")

	// ErrExtractFailed indicates a document could not be read or parsed.
	// Ingest treats this as non-fatal for the batch.
	ErrExtractFailed = errors.New("extraction failed")
)
