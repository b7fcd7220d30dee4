package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptImpactAssessment asks for an impact summary and test scenario.
	// The template expects five %s placeholders, in order: change type,
	// element path, old type, new type, annotation.
	PromptImpactAssessment = "impact_assessment"

	// PromptImpactSystem is the system instruction sent with every
	// impact request. It has no placeholders.
	PromptImpactSystem = "impact_system"
)
