package driven

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// LLMService provides access to the hosted language model.
// This is an optional service - when nil, asking questions is disabled
// but every store and group operation still works.
//
// Implementations own transient-failure handling: rate limits are
// retried internally with a bounded backoff schedule before surfacing
// domain.ErrRateLimited. Oversized requests surface as
// domain.ErrContextTooLong so callers can show a remediation message.
type LLMService interface {
	// Ask sends a question with the assembled document context and the
	// prior conversation history, returning the model's answer.
	// History must be in chronological order and must not include the
	// question itself.
	Ask(ctx context.Context, question, documentContext string, history []domain.Message) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used at startup before committing to chat mode.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
