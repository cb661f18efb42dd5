package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/nockchain/nocktool/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set nocktool configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("backend: %s\n", cfg.Backend)
		if cfg.Model != "" {
			fmt.Printf("model: %s\n", cfg.Model)
		}
		fmt.Printf("max_tokens: %d\n", cfg.MaxTokens)
		fmt.Printf("temperature: %.3f\n", cfg.Temperature)
		fmt.Printf("http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Printf("retry_max_attempts: %d\n", cfg.RetryMaxAttempts)
		fmt.Printf("export_project: %s\n", cfg.ExportProject)
		fmt.Printf("export_file_prefix: %s\n", cfg.ExportFilePrefix)
		fmt.Printf("export_dir_name: %s\n", cfg.ExportDirName)
		fmt.Printf("handover_dir: %s\n", cfg.HandoverDir)
		fmt.Printf("plan_candidates: %s\n", strings.Join(cfg.PlanCandidates, ", "))
		fmt.Printf("key_file_candidates: %s\n", strings.Join(cfg.KeyFileCandidates, ", "))
		fmt.Printf("source_extensions: %s\n", strings.Join(cfg.SourceExtensions, ", "))
		fmt.Printf("exclude_globs: %s\n", strings.Join(cfg.ExcludeGlobs, ", "))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "backend":
			switch strings.ToLower(val) {
			case "groq":
				cfg.Backend = "groq"
			case "moonshot":
				cfg.Backend = "moonshot"
			default:
				return fmt.Errorf("invalid backend: %s (use groq or moonshot)", val)
			}
		case "model":
			cfg.Model = val
		case "max_tokens":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for max_tokens: %w", err)
			}
			cfg.MaxTokens = i
		case "temperature":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for temperature: %w", err)
			}
			cfg.Temperature = f
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			cfg.HTTPTimeoutSec = i
		case "retry_max_attempts":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for retry_max_attempts: %v", val)
			}
			cfg.RetryMaxAttempts = i
		case "export_project":
			cfg.ExportProject = val
		case "export_file_prefix":
			cfg.ExportFilePrefix = val
		case "export_dir_name":
			cfg.ExportDirName = val
		case "handover_dir":
			cfg.HandoverDir = val
		case "plan_candidates":
			cfg.PlanCandidates = splitList(val)
		case "key_file_candidates":
			cfg.KeyFileCandidates = splitList(val)
		case "source_extensions":
			cfg.SourceExtensions = splitList(val)
		case "exclude_globs":
			cfg.ExcludeGlobs = splitList(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

// splitList parses a comma-separated value into a trimmed string slice.
func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
