package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsight-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// --- Test helpers ---

func newContextFixture(t *testing.T) (*memory.ArtifactStore, *ContextService) {
	t.Helper()
	store := memory.NewArtifactStore()
	return store, NewContextService(store)
}

func saveArtifact(t *testing.T, store *memory.ArtifactStore, group, file, text string, tables ...domain.Table) {
	t.Helper()
	err := store.Save(context.Background(), &domain.Artifact{
		Key:              domain.ArtifactKey{Group: group, File: file},
		GroupName:        group,
		OriginalFilename: file,
		Text:             text,
		Tables:           tables,
	})
	require.NoError(t, err)
}

// --- Tests ---

func TestNewContextService(t *testing.T) {
	_, svc := newContextFixture(t)
	assert.NotNil(t, svc)
}

func TestContextService_Assemble_EmptyStore(t *testing.T) {
	_, svc := newContextFixture(t)

	result, err := svc.Assemble(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.NoDataNotice, result.Text)
	assert.True(t, result.IsEmpty())
	assert.False(t, result.Truncated)
	assert.Zero(t, result.ArtifactCount)
}

func TestContextService_Assemble_Headers(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "acme", "annual_2024.pdf", "revenue grew 12%")

	result, err := svc.Assemble(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "=== acme: annual_2024.pdf ===")
	assert.Contains(t, result.Text, "revenue grew 12%")
	assert.Equal(t, 1, result.ArtifactCount)
	assert.False(t, result.Truncated)
}

func TestContextService_Assemble_SelectionFilters(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "acme", "a.pdf", "acme text")
	saveArtifact(t, store, "globex", "g.pdf", "globex text")
	saveArtifact(t, store, "initech", "i.pdf", "initech text")

	result, err := svc.Assemble(context.Background(), []string{"acme", "globex"}, 0)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "acme text")
	assert.Contains(t, result.Text, "globex text")
	assert.NotContains(t, result.Text, "initech text")
	assert.Equal(t, 2, result.ArtifactCount)
}

func TestContextService_Assemble_Deterministic(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "globex", "b.pdf", "second")
	saveArtifact(t, store, "acme", "z.pdf", "first group, last file")
	saveArtifact(t, store, "acme", "a.pdf", "first group, first file")

	first, err := svc.Assemble(context.Background(), []string{"globex", "acme"}, 0)
	require.NoError(t, err)
	second, err := svc.Assemble(context.Background(), []string{"acme", "globex"}, 0)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text, "assembly must be byte-identical for a fixed store")

	// Ordering is by (group, file), not selection order.
	posA := strings.Index(first.Text, "=== acme: a.pdf ===")
	posZ := strings.Index(first.Text, "=== acme: z.pdf ===")
	posG := strings.Index(first.Text, "=== globex: b.pdf ===")
	assert.True(t, posA < posZ && posZ < posG)
}

func TestContextService_Assemble_Tables(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "acme", "q3.pdf", "quarterly results", domain.Table{
		Page:    2,
		Index:   1,
		Headers: []string{"Metric", "Q3"},
		Rows:    [][]string{{"Revenue", "10M"}, {"Profit", "2M"}},
	})

	result, err := svc.Assemble(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "[Table - page 2, table 1]")
	assert.Contains(t, result.Text, "Metric | Q3")
	assert.Contains(t, result.Text, "Revenue | 10M")
	assert.Contains(t, result.Text, "Profit | 2M")
}

func TestContextService_Assemble_TruncationBound(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "acme", "big.pdf", strings.Repeat("figures and footnotes ", 500))

	budget := 100
	result, err := svc.Assemble(context.Background(), nil, budget)
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.True(t, strings.HasSuffix(result.Text, domain.TruncationNotice))

	body := strings.TrimSuffix(result.Text, domain.TruncationNotice)
	assert.LessOrEqual(t, domain.EstimateTokens(body), budget)
}

func TestContextService_Assemble_UnderBudgetVerbatim(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "acme", "small.pdf", "short text")

	result, err := svc.Assemble(context.Background(), nil, domain.DefaultTokenBudget)
	require.NoError(t, err)
	assert.False(t, result.Truncated)
	assert.NotContains(t, result.Text, domain.TruncationNotice)
}

func TestContextService_AssembleForQuery_YearNarrowing(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "acme", "annual_2023.pdf", "results for fiscal 2023")
	saveArtifact(t, store, "acme", "annual_2024.pdf", "results for fiscal 2024")
	saveArtifact(t, store, "acme", "prospectus.pdf", "general company overview")

	result, err := svc.AssembleForQuery(context.Background(), nil, "how did 2024 go?", 0)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "annual_2024.pdf")
	assert.NotContains(t, result.Text, "annual_2023.pdf")
	assert.NotContains(t, result.Text, "prospectus.pdf")
	assert.Equal(t, 1, result.ArtifactCount)
}

func TestContextService_AssembleForQuery_NoYearMatches(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "acme", "prospectus.pdf", "general company overview")

	result, err := svc.AssembleForQuery(context.Background(), nil, "what happened in 2031?", 0)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty(), "a year with no matching artifacts yields the no-data notice")
}

func TestContextService_AssembleForQuery_NoYearInQuery(t *testing.T) {
	store, svc := newContextFixture(t)
	saveArtifact(t, store, "acme", "annual_2023.pdf", "results for fiscal 2023")
	saveArtifact(t, store, "acme", "prospectus.pdf", "general company overview")

	result, err := svc.AssembleForQuery(context.Background(), nil, "summarise the filings", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ArtifactCount, "no year in the query means no narrowing")
}

func TestTruncateAtRune(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"ascii clean cut", "hello", 3, "hel"},
		{"cut past end", "hi", 10, "hi"},
		{"negative", "hi", -1, ""},
		{"multibyte boundary", "ab€", 3, "ab"},
		{"multibyte whole", "ab€", 5, "ab€"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateAtRune(tt.in, tt.n))
		})
	}
}
