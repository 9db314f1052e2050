package driving

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// ContextService assembles the token-bounded document context sent to
// the model alongside each question.
type ContextService interface {
	// Assemble gathers artifacts for the selected groups (empty
	// selection means all groups), concatenates them with per-artifact
	// headers in store order, and enforces the token budget by
	// deterministic suffix truncation. A budget of zero uses
	// domain.DefaultTokenBudget.
	Assemble(ctx context.Context, selected []string, budget int) (domain.AssembledContext, error)

	// AssembleForQuery is Assemble with relevance narrowing: 4-digit
	// year tokens in the query restrict candidates to artifacts whose
	// key mentions one of those years. Queries without years fall back
	// to the full selected set.
	AssembleForQuery(ctx context.Context, selected []string, query string, budget int) (domain.AssembledContext, error)
}
