package ai

import "context"

// Runtime is a minimal interface implemented by chat backends.
// It aligns to the shared request/response types in this package.
type Runtime interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// Provider identifiers used across the CLI for backend selection.
const (
	ProviderGroq     = "groq"
	ProviderMoonshot = "moonshot"
)

// StreamRuntime is an optional extension that supports streaming output.
// Implementors should invoke onDelta with each partial content chunk.
type StreamRuntime interface {
	GenerateStream(ctx context.Context, req GenerateRequest, onDelta func(string)) error
}
