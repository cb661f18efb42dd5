package cmd

import (
	"fmt"

	"github.com/nockchain/nocktool/internal/export"
	"github.com/spf13/cobra"
)

var exportRootDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Create a smart export package of the project",
	Long: `Walks the project root and writes a timestamped JSON package with full
content for handover documents, project plans and key files, plus a
path-only inventory of source code.`,
	Example: `  nocktool export
  nocktool export --dir /path/to/project`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := export.Options{RootDir: exportRootDir}
		if cfg != nil {
			opts.Project = cfg.ExportProject
			opts.FilePrefix = cfg.ExportFilePrefix
			opts.ExportDirName = cfg.ExportDirName
			opts.HandoverDir = cfg.HandoverDir
			opts.PlanCandidates = cfg.PlanCandidates
			opts.KeyFileCandidates = cfg.KeyFileCandidates
			opts.SourceExtensions = cfg.SourceExtensions
			opts.ExcludeGlobs = cfg.ExcludeGlobs
		}
		fmt.Println("Creating smart export package...")
		outPath, err := export.New(opts).Export()
		if err != nil {
			return err
		}
		fmt.Printf("✓ Smart export created: %s\n", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportRootDir, "dir", "", "project root to export (default: current directory)")
}
