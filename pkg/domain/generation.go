package domain

// GenerationRequest describes one generation attempt. It is never persisted.
type GenerationRequest struct {
	ConversationID string
	Prompt         string
	ImageRequested bool
}

// GenerationResult always carries response text, even when the provider
// failed; the orchestrator substitutes a fixed apology in that case so the
// conversation never shows a broken turn.
type GenerationResult struct {
	Text     string
	ImageURL string
}

const (
	TextGenerationApology = "I'm sorry, I'm having trouble generating a response right now. Please check the API configuration and try again."

	ImageGenerationApology = "Sorry, I couldn't generate an image right now. Please try again later."
)
