package conversation

import "context"

// TokenUsage reports oracle token consumption when the provider
// exposes it.
type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// LLMResponse is the oracle reply.
type LLMResponse struct {
	Text  string
	Usage TokenUsage
}

// LLMClient is the model oracle boundary: an ordered turn sequence in,
// one reply out. Implementations must be safe for concurrent use.
type LLMClient interface {
	Complete(ctx context.Context, turns []Turn) (LLMResponse, error)
}
