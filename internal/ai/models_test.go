package ai

import "testing"

func TestDefaultModelPerProvider(t *testing.T) {
	name, ok := DefaultModel(ProviderGroq)
	if !ok || name != "llama3-70b-8192" {
		t.Fatalf("unexpected groq default: %q ok=%v", name, ok)
	}
	name, ok = DefaultModel(ProviderMoonshot)
	if !ok || name != "kimi-k2-instruct" {
		t.Fatalf("unexpected moonshot default: %q ok=%v", name, ok)
	}
	if _, ok := DefaultModel("nope"); ok {
		t.Fatalf("unknown provider should have no default")
	}
}

func TestKeyEnvVar(t *testing.T) {
	if v, ok := KeyEnvVar(ProviderGroq); !ok || v != "GROQ_API_KEY" {
		t.Fatalf("groq key env: %q ok=%v", v, ok)
	}
	if v, ok := KeyEnvVar(ProviderMoonshot); !ok || v != "MOONSHOT_API_KEY" {
		t.Fatalf("moonshot key env: %q ok=%v", v, ok)
	}
	if _, ok := KeyEnvVar("ollama"); ok {
		t.Fatalf("unregistered provider should not resolve a key env")
	}
}

func TestGetRuntimeKnownProviders(t *testing.T) {
	for _, p := range []string{ProviderGroq, ProviderMoonshot} {
		rt, ok := GetRuntime(p, RuntimeConfig{APIKey: "k"})
		if !ok || rt == nil {
			t.Fatalf("expected runtime for %s", p)
		}
	}
	if _, ok := GetRuntime("invalid", RuntimeConfig{}); ok {
		t.Fatalf("invalid provider should not resolve")
	}
}
