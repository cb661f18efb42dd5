package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func TestCLI_ExportCreatesPackage(t *testing.T) {
	// Use a temp HOME to isolate config
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	proj := t.TempDir()
	if err := os.WriteFile(filepath.Join(proj, "README.md"), []byte("# proj"), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(proj, "src"), 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}
	if err := os.WriteFile(filepath.Join(proj, "src", "main.ts"), []byte("let x = 1"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	runCmd(t, "export", "--dir", proj)

	entries, err := os.ReadDir(filepath.Join(proj, "exports"))
	if err != nil {
		t.Fatalf("read exports dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one export file, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "nockchain_smart_export_") || !strings.HasSuffix(name, ".json") {
		t.Fatalf("unexpected export file name: %s", name)
	}

	b, err := os.ReadFile(filepath.Join(proj, "exports", name))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	for _, section := range []string{"metadata", "handover_documents", "project_plans", "key_files", "source_code_inventory"} {
		if _, ok := doc[section]; !ok {
			t.Fatalf("export missing section %q", section)
		}
	}
}

func TestCLI_ChatRejectsUnknownBackend(t *testing.T) {
	rootCmd.SetArgs([]string{"chat", "--backend", "bogus"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "invalid backend") {
		t.Fatalf("unexpected error: %v", err)
	}
	chatBackend = ""
}

func TestCLI_ChatRequiresAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	rootCmd.SetArgs([]string{"chat", "--backend", "groq"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatalf("expected error when GROQ_API_KEY is unset")
	}
	if !strings.Contains(err.Error(), "GROQ_API_KEY") {
		t.Fatalf("unexpected error: %v", err)
	}
	chatBackend = ""
}
