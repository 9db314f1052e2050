package domain

// DefaultTokenBudget is the approximate upper bound on context size.
const DefaultTokenBudget = 150_000

// CharsPerToken is the fixed divisor for the character-count token
// estimate. Not a real tokenizer; deliberately simple and conservative.
const CharsPerToken = 4

// NoDataNotice is the sentinel returned when no artifacts match the
// selection. Callers compare against it to distinguish real content.
const NoDataNotice = "No financial data available. Add a group and upload documents first."

// TruncationNotice is appended to a context cut down to the token budget.
const TruncationNotice = "\n\n[Note: the document context was truncated to fit the token budget. " +
	"Later documents may be partially or entirely missing. Narrow the group selection for full coverage.]"

// AssembledContext is the token-bounded text built from selected artifacts.
type AssembledContext struct {
	// Text is the concatenated context, possibly truncated.
	Text string

	// Truncated reports whether the token budget forced a suffix cut.
	Truncated bool

	// ArtifactCount is how many artifacts contributed before truncation.
	ArtifactCount int
}

// IsEmpty reports whether no artifacts matched the selection.
func (c AssembledContext) IsEmpty() bool {
	return c.Text == NoDataNotice
}

// EstimateTokens approximates the token count of s as len(s)/CharsPerToken.
func EstimateTokens(s string) int {
	return len(s) / CharsPerToken
}
