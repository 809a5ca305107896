package interfaces

import "context"

// GenerationParams carries the per-call sampling parameters for a text
// generation request. The orchestrator passes these through unchanged; it
// imposes no defaults of its own.
type GenerationParams struct {
	MaxTokens   int
	Temperature float32
}

// TextGenerator defines the external text-generation capability consumed by
// the report pipeline. Implementations own their retry and rate-limit
// behavior; callers observe only success or a single terminal failure per
// call.
type TextGenerator interface {
	// Complete generates text from a system prompt and a user prompt.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - systemPrompt: Instructions establishing the generation voice; may be empty
	//   - userPrompt: The content request
	//   - params: Token budget and sampling temperature for this call
	//
	// Returns:
	//   - string: Generated text
	//   - error: Error if the call fails; no retry contract is assumed
	Complete(ctx context.Context, systemPrompt, userPrompt string, params GenerationParams) (string, error)

	// Model returns the identifier of the model serving completions, for
	// report metadata.
	Model() string

	// HealthCheck verifies the generation capability is operational.
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the generator.
	Close() error
}
