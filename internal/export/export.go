// Package export assembles a size-optimized JSON snapshot of a project:
// full content for handover docs, plans and key files, plus a path-only
// inventory of source code.
package export

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nockchain/nocktool/internal/utils"
)

// FileRecord is a single content-bearing entry in the export document.
type FileRecord struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// Metadata describes one export run.
type Metadata struct {
	ExportType      string   `json:"export_type"`
	ExportID        string   `json:"export_id"`
	ExportDate      string   `json:"export_date"`
	Project         string   `json:"project"`
	GitCommit       string   `json:"git_commit"`
	PackageContents []string `json:"package_contents"`
}

// Document is the full export package serialized to disk.
type Document struct {
	Metadata            Metadata     `json:"metadata"`
	HandoverDocuments   []FileRecord `json:"handover_documents"`
	ProjectPlans        []FileRecord `json:"project_plans"`
	KeyFiles            []FileRecord `json:"key_files"`
	SourceCodeInventory []string     `json:"source_code_inventory"`
}

// Options configures an Assembler. Zero values fall back to the original
// NOCKCHAIN project layout.
type Options struct {
	RootDir           string
	ExportDirName     string
	Project           string
	FilePrefix        string
	HandoverDir       string
	PlanCandidates    []string
	KeyFileCandidates []string
	SourceExtensions  []string
	ExcludeGlobs      []string

	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time
}

func (o *Options) applyDefaults() {
	if o.ExportDirName == "" {
		o.ExportDirName = "exports"
	}
	if o.Project == "" {
		o.Project = "NOCKCHAIN"
	}
	if o.FilePrefix == "" {
		o.FilePrefix = "nockchain_smart_export"
	}
	if o.HandoverDir == "" {
		o.HandoverDir = "handover"
	}
	if o.PlanCandidates == nil {
		o.PlanCandidates = []string{"Projectplan.md", "Nockchainprojectplan.md"}
	}
	if o.KeyFileCandidates == nil {
		o.KeyFileCandidates = []string{"README.md", "CLAUDE.md", "package.json", "docker-compose.yml"}
	}
	if o.SourceExtensions == nil {
		o.SourceExtensions = []string{".ts", ".js", ".rs", ".css", ".sh", ".py"}
	}
	if o.ExcludeGlobs == nil {
		o.ExcludeGlobs = []string{"**/.git", "**/node_modules"}
	}
	// The export output directory is never inventoried.
	o.ExcludeGlobs = append(o.ExcludeGlobs, o.ExportDirName)
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Assembler produces export documents for a project root.
type Assembler struct {
	opts Options
}

// New returns an Assembler for the given options. An empty RootDir means
// the current working directory.
func New(opts Options) *Assembler {
	opts.applyDefaults()
	return &Assembler{opts: opts}
}

// Assemble builds the export document in memory. Individual file read
// failures are degraded gracefully (omitted records, empty revision); the
// only error returned is an unusable project root.
func (a *Assembler) Assemble() (*Document, error) {
	root := a.opts.RootDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", root)
	}

	now := a.opts.Now().UTC()
	doc := &Document{
		Metadata: Metadata{
			ExportType: "complete_client_package",
			ExportID:   uuid.NewString(),
			ExportDate: now.Format(time.RFC3339),
			Project:    a.opts.Project,
			GitCommit:  Revision(root),
			PackageContents: []string{
				"handover_documents", "project_plans", "key_files", "source_code_inventory",
			},
		},
		HandoverDocuments:   readRecords(handoverFiles(root, a.opts.HandoverDir)),
		ProjectPlans:        readRecords(existingCandidates(root, a.opts.PlanCandidates)),
		KeyFiles:            readRecords(existingCandidates(root, a.opts.KeyFileCandidates)),
		SourceCodeInventory: inventory(root, a.opts.SourceExtensions, a.opts.ExcludeGlobs),
	}
	return doc, nil
}

// Export assembles the document and writes it as indented JSON to a new
// timestamped file inside the export directory, creating the directory if
// needed. Returns the output path.
func (a *Assembler) Export() (string, error) {
	doc, err := a.Assemble()
	if err != nil {
		return "", err
	}
	root := a.opts.RootDir
	if root == "" {
		root, _ = os.Getwd()
	}
	exportDir := filepath.Join(root, a.opts.ExportDirName)
	if err := utils.EnsureDir(exportDir); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	stamp := a.opts.Now().UTC().Format("20060102_150405")
	outPath := filepath.Join(exportDir, fmt.Sprintf("%s_%s.json", a.opts.FilePrefix, stamp))
	data, err := utils.PrettyJSON(doc)
	if err != nil {
		return "", err
	}
	if err := utils.SafeWriteFile(outPath, data); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return outPath, nil
}

// Revision returns the short git commit hash for dir, or "" when the tool
// is missing, the directory is not a repository, or the command fails.
// A failed lookup must never abort an export.
func Revision(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// existingCandidates filters a fixed candidate list down to the names that
// exist under root. Absent candidates are silently skipped.
func existingCandidates(root string, names []string) []string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			paths = append(paths, p)
		}
	}
	return paths
}

// handoverFiles lists markdown files directly inside the handover
// directory. A missing directory yields an empty set, not an error.
func handoverFiles(root, handoverDir string) []string {
	dir := filepath.Join(root, handoverDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".md") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths
}

// readRecords reads full content for each path. A record is omitted when
// the file cannot be read; content is decoded best-effort so it is never
// null in the serialized document.
func readRecords(paths []string) []FileRecord {
	records := make([]FileRecord, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		records = append(records, FileRecord{
			FileName: filepath.Base(p),
			FilePath: p,
			Content:  utils.DecodeText(data),
		})
	}
	return records
}
