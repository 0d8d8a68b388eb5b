package service

import "context"

// LLMClient is the external generation service seen from the domain.
// One call, one completion; the responder never retries (the caller
// resubmits), so there is no streaming or orchestration here.
type LLMClient interface {
	Generate(ctx context.Context, req *LLMRequest) (*LLMResponse, error)
}

// LLMRequest is one generation request: a system instruction plus a bounded
// window of role-tagged turns, oldest first.
type LLMRequest struct {
	Messages    []LLMMessage `json:"messages"`
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature float64      `json:"temperature"`
}

// LLMMessage is a single role-tagged turn.
type LLMMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// LLMResponse is the completed generation.
type LLMResponse struct {
	Content    string `json:"content"`
	ModelUsed  string `json:"model_used"`
	TokensUsed int    `json:"tokens_used"`
}
