package ai

// Model metadata used for default selection and context-window warnings.
// Context sizes are approximate and should be verified against provider docs.

type ModelInfo struct {
	Name          string
	Provider      string
	ContextTokens int // approximate context window
	Default       bool
}

var models = map[string]ModelInfo{
	"llama3-70b-8192": {
		Name:          "llama3-70b-8192",
		Provider:      ProviderGroq,
		ContextTokens: 8192,
		Default:       true,
	},
	"llama3-8b-8192": {
		Name:          "llama3-8b-8192",
		Provider:      ProviderGroq,
		ContextTokens: 8192,
	},
	"llama-3.1-70b-versatile": {
		Name:          "llama-3.1-70b-versatile",
		Provider:      ProviderGroq,
		ContextTokens: 131072,
	},
	"kimi-k2-instruct": {
		Name:          "kimi-k2-instruct",
		Provider:      ProviderMoonshot,
		ContextTokens: 131072,
		Default:       true,
	},
	"moonshot-v1-8k": {
		Name:          "moonshot-v1-8k",
		Provider:      ProviderMoonshot,
		ContextTokens: 8192,
	},
	"moonshot-v1-128k": {
		Name:          "moonshot-v1-128k",
		Provider:      ProviderMoonshot,
		ContextTokens: 131072,
	},
}

// LookupModel returns ModelInfo and ok flag.
func LookupModel(name string) (ModelInfo, bool) {
	mi, ok := models[name]
	return mi, ok
}

// DefaultModel returns the default model name for a provider.
func DefaultModel(provider string) (string, bool) {
	for name, mi := range models {
		if mi.Provider == provider && mi.Default {
			return name, true
		}
	}
	return "", false
}

// Catalog returns a shallow copy of the current model catalog.
func Catalog() map[string]ModelInfo {
	out := make(map[string]ModelInfo, len(models))
	for k, v := range models {
		out[k] = v
	}
	return out
}
