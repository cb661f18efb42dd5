package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAssembleCategorizesProjectTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "# Readme\nhello")
	writeFile(t, filepath.Join(root, "src", "main.ts"), "console.log(1)")
	writeFile(t, filepath.Join(root, ".git", "hooks", "sample.ts"), "not source")

	doc, err := New(Options{RootDir: root}).Assemble()
	require.NoError(t, err)

	require.Len(t, doc.KeyFiles, 1)
	assert.Equal(t, "README.md", doc.KeyFiles[0].FileName)
	assert.Equal(t, "# Readme\nhello", doc.KeyFiles[0].Content)

	require.Len(t, doc.SourceCodeInventory, 1)
	assert.Equal(t, filepath.Join(root, "src", "main.ts"), doc.SourceCodeInventory[0])
	for _, p := range doc.SourceCodeInventory {
		assert.NotContains(t, p, string(filepath.Separator)+".git"+string(filepath.Separator))
	}
}

func TestAssembleMissingHandoverDirIsEmptyNotFatal(t *testing.T) {
	root := t.TempDir()
	doc, err := New(Options{RootDir: root}).Assemble()
	require.NoError(t, err)
	assert.Empty(t, doc.HandoverDocuments)

	// Empty buckets must serialize as [], never null.
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"handover_documents":[]`)
	assert.Contains(t, string(b), `"source_code_inventory":[]`)
}

func TestAssembleHandoverOnlyDirectMarkdown(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "handover", "context.md"), "ctx")
	writeFile(t, filepath.Join(root, "handover", "notes.txt"), "nope")
	writeFile(t, filepath.Join(root, "handover", "nested", "deep.md"), "nope")

	doc, err := New(Options{RootDir: root}).Assemble()
	require.NoError(t, err)
	require.Len(t, doc.HandoverDocuments, 1)
	assert.Equal(t, "context.md", doc.HandoverDocuments[0].FileName)
	assert.Equal(t, "ctx", doc.HandoverDocuments[0].Content)
}

func TestAssemblePlanCandidatesSilentlySkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Projectplan.md"), "the plan")
	// Nockchainprojectplan.md is absent and a candidate name that is a
	// directory must also be skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docker-compose.yml"), 0o755))

	doc, err := New(Options{RootDir: root}).Assemble()
	require.NoError(t, err)
	require.Len(t, doc.ProjectPlans, 1)
	assert.Equal(t, "Projectplan.md", doc.ProjectPlans[0].FileName)
	assert.Empty(t, doc.KeyFiles)
}

func TestAssembleContentNeverNull(t *testing.T) {
	root := t.TempDir()
	// Invalid UTF-8 is decoded best-effort, not dropped as a record.
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte{'o', 'k', 0xff}, 0o644))

	doc, err := New(Options{RootDir: root}).Assemble()
	require.NoError(t, err)
	require.Len(t, doc.KeyFiles, 1)
	assert.Equal(t, "ok", doc.KeyFiles[0].Content)

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"content":null`)
}

func TestInventoryExcludesDependencyAndExportTrees(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.js"), "x")
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), "x")
	writeFile(t, filepath.Join(root, "vendor", "node_modules", "pkg", "index.js"), "x")
	writeFile(t, filepath.Join(root, "exports", "old.js"), "x")
	writeFile(t, filepath.Join(root, "scripts", "run.sh"), "x")
	writeFile(t, filepath.Join(root, "notes.md"), "not inventoried")

	doc, err := New(Options{RootDir: root}).Assemble()
	require.NoError(t, err)

	require.Len(t, doc.SourceCodeInventory, 2)
	for _, p := range doc.SourceCodeInventory {
		assert.NotContains(t, p, "node_modules")
		assert.NotContains(t, p, string(filepath.Separator)+"exports"+string(filepath.Separator))
		matched := false
		for _, ext := range []string{".ts", ".js", ".rs", ".css", ".sh", ".py"} {
			if strings.HasSuffix(p, ext) {
				matched = true
			}
		}
		assert.True(t, matched, "inventory path %s has unexpected extension", p)
	}
}

func TestExportWritesTimestampedFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "hi")

	fixed := time.Date(2025, 3, 9, 14, 30, 5, 0, time.UTC)
	a := New(Options{RootDir: root, Now: func() time.Time { return fixed }})
	outPath, err := a.Export()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "exports", "nockchain_smart_export_20250309_143005.json"), outPath)

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "complete_client_package", doc.Metadata.ExportType)
	assert.Equal(t, "NOCKCHAIN", doc.Metadata.Project)
	assert.Equal(t, "2025-03-09T14:30:05Z", doc.Metadata.ExportDate)
	assert.NotEmpty(t, doc.Metadata.ExportID)
	assert.Equal(t, []string{"handover_documents", "project_plans", "key_files", "source_code_inventory"}, doc.Metadata.PackageContents)
	// Pretty-printed with 2-space indentation.
	assert.Contains(t, string(b), "\n  \"metadata\"")
}

func TestExportDistinctTimestampsDistinctFiles(t *testing.T) {
	root := t.TempDir()
	base := time.Date(2025, 3, 9, 14, 30, 5, 0, time.UTC)
	i := 0
	// Each call advances the clock one second, as with back-to-back runs.
	a := New(Options{RootDir: root, Now: func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}})
	first, err := a.Export()
	require.NoError(t, err)
	second, err := a.Export()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRevisionEmptyOutsideRepository(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, "", Revision(root))

	// And the export itself still succeeds.
	doc, err := New(Options{RootDir: root}).Assemble()
	require.NoError(t, err)
	assert.Equal(t, "", doc.Metadata.GitCommit)
}
