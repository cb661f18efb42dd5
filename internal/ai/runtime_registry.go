package ai

import "time"

// RuntimeFactory builds a Runtime from the generic config below.
type RuntimeFactory func(RuntimeConfig) Runtime

// RuntimeConfig carries common knobs used by runtimes.
type RuntimeConfig struct {
	HTTPTimeout time.Duration
	RetryMax    int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	APIKey      string
}

var registry = map[string]RuntimeFactory{}

// RegisterRuntime registers a provider name with its factory.
func RegisterRuntime(name string, f RuntimeFactory) { registry[name] = f }

// GetRuntime creates a Runtime for the given provider if registered.
func GetRuntime(name string, cfg RuntimeConfig) (Runtime, bool) {
	if f, ok := registry[name]; ok {
		return f(cfg), true
	}
	return nil, false
}

// KeyEnvVar returns the environment variable holding the API key for a provider.
func KeyEnvVar(name string) (string, bool) {
	switch name {
	case ProviderGroq:
		return "GROQ_API_KEY", true
	case ProviderMoonshot:
		return "MOONSHOT_API_KEY", true
	}
	return "", false
}

// init registers built-in runtimes.
func init() {
	RegisterRuntime(ProviderGroq, func(c RuntimeConfig) Runtime {
		return NewGroqClient(c.APIKey, c.HTTPTimeout, c.RetryMax, c.BaseDelay, c.MaxDelay)
	})
	RegisterRuntime(ProviderMoonshot, func(c RuntimeConfig) Runtime {
		return NewMoonshotClient(c.APIKey, c.HTTPTimeout, c.RetryMax, c.BaseDelay, c.MaxDelay)
	})
}
