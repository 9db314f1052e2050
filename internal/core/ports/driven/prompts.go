package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptAnalystSystem is the system prompt for the financial
	// analyst persona. The assembled document context is appended to
	// it at ask time; the template itself has no format placeholders.
	PromptAnalystSystem = "analyst_system"

	// PromptComparisonHint prefixes the context when more than one
	// group is selected. Expects a %d placeholder for the group count.
	PromptComparisonHint = "comparison_hint"
)
