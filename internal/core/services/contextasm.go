package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// Ensure ContextService implements the interface.
var _ driving.ContextService = (*ContextService)(nil)

// truncationMargin absorbs the error of the chars/4 token estimate.
const truncationMargin = 0.95

// yearPattern matches 4-digit year tokens used for relevance narrowing.
var yearPattern = regexp.MustCompile(`20\d\d`)

// ContextService assembles the token-bounded document context.
type ContextService struct {
	artifactStore driven.ArtifactStore
}

// NewContextService creates a new context service.
func NewContextService(artifactStore driven.ArtifactStore) *ContextService {
	return &ContextService{artifactStore: artifactStore}
}

// Assemble gathers artifacts for the selected groups and concatenates
// them under the token budget. Empty selection means all groups.
func (s *ContextService) Assemble(ctx context.Context, selected []string, budget int) (domain.AssembledContext, error) {
	return s.assemble(ctx, selected, nil, budget)
}

// AssembleForQuery is Assemble with year-based relevance narrowing:
// 4-digit years in the query restrict candidates to artifacts whose key
// mentions one of them. A heuristic filter, not a search engine; queries
// without years fall back to the full selected set.
func (s *ContextService) AssembleForQuery(ctx context.Context, selected []string, query string, budget int) (domain.AssembledContext, error) {
	return s.assemble(ctx, selected, yearPattern.FindAllString(query, -1), budget)
}

func (s *ContextService) assemble(ctx context.Context, selected, years []string, budget int) (domain.AssembledContext, error) {
	if budget <= 0 {
		budget = domain.DefaultTokenBudget
	}

	keys, err := s.candidateKeys(ctx, selected)
	if err != nil {
		return domain.AssembledContext{}, err
	}
	if len(years) > 0 {
		keys = filterByYears(keys, years)
	}
	if len(keys) == 0 {
		return domain.AssembledContext{Text: domain.NoDataNotice}, nil
	}

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		artifact, err := s.artifactStore.Load(ctx, key)
		if err != nil {
			// Deleted between List and Load; the listing is
			// recomputed next call.
			continue
		}
		parts = append(parts, renderArtifact(artifact))
	}
	if len(parts) == 0 {
		return domain.AssembledContext{Text: domain.NoDataNotice}, nil
	}

	text := strings.Join(parts, "\n\n")
	result := domain.AssembledContext{Text: text, ArtifactCount: len(parts)}

	estimated := domain.EstimateTokens(text)
	if estimated > budget {
		keep := int(float64(len(text)) * float64(budget) / float64(estimated) * truncationMargin)
		text = truncateAtRune(text, keep)
		result.Text = text + domain.TruncationNotice
		result.Truncated = true
		logger.Debug("context truncated: %d estimated tokens over budget %d", estimated, budget)
	}
	return result, nil
}

// candidateKeys returns the sorted keys for the selection. The global
// sort order of the store drives output ordering, so assembly is
// deterministic for a fixed store state.
func (s *ContextService) candidateKeys(ctx context.Context, selected []string) ([]domain.ArtifactKey, error) {
	if len(selected) == 0 {
		return s.artifactStore.List(ctx)
	}
	var keys []domain.ArtifactKey
	for _, group := range selected {
		groupKeys, err := s.artifactStore.ListGroup(ctx, group)
		if err != nil {
			return nil, err
		}
		keys = append(keys, groupKeys...)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys, nil
}

func filterByYears(keys []domain.ArtifactKey, years []string) []domain.ArtifactKey {
	var filtered []domain.ArtifactKey
	for _, key := range keys {
		name := key.String()
		for _, year := range years {
			if strings.Contains(name, year) {
				filtered = append(filtered, key)
				break
			}
		}
	}
	return filtered
}

// renderArtifact emits the per-artifact context block: a header naming
// group and file, the extracted text, then any tables.
func renderArtifact(artifact *domain.Artifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s: %s ===\n", artifact.Key.Group, artifact.Key.File)
	b.WriteString(artifact.Text)
	if len(artifact.Tables) > 0 {
		b.WriteString("\n")
		b.WriteString(renderTables(artifact.Tables))
	}
	return b.String()
}

// renderTables flattens extracted tables into plain text rows.
func renderTables(tables []domain.Table) string {
	var b strings.Builder
	for i, table := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[Table - page %d, table %d]\n", table.Page, table.Index)
		b.WriteString(strings.Join(table.Headers, " | "))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", 50))
		b.WriteString("\n")
		for _, row := range table.Rows {
			b.WriteString(strings.Join(row, " | "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// truncateAtRune cuts s to at most n bytes without splitting a rune.
func truncateAtRune(s string, n int) string {
	if n >= len(s) {
		return s
	}
	if n < 0 {
		n = 0
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
