package generator

import "context"

// Completer is the single LLM gateway operation the generators need.
// *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
}

// Omission records one requested item that produced no artifact, either
// because the gateway call failed or the completion was unusable. Batches
// never abort on omissions; callers report the shortfall.
type Omission struct {
	Index  int
	Reason string
}
