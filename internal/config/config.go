package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
//
// API keys are intentionally absent: each chat backend reads its own key
// from the provider environment variable (GROQ_API_KEY, MOONSHOT_API_KEY)
// so that secrets never land in the config file.
type Global struct {
	Backend     string  `mapstructure:"backend" yaml:"backend"`
	Model       string  `mapstructure:"model" yaml:"model"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	// HTTP/Retry configuration. Retries are off by default (one attempt);
	// raising retry_max_attempts opts in to exponential backoff.
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`

	// Export assembler settings.
	ExportProject     string   `mapstructure:"export_project" yaml:"export_project"`
	ExportFilePrefix  string   `mapstructure:"export_file_prefix" yaml:"export_file_prefix"`
	ExportDirName     string   `mapstructure:"export_dir_name" yaml:"export_dir_name"`
	HandoverDir       string   `mapstructure:"handover_dir" yaml:"handover_dir"`
	PlanCandidates    []string `mapstructure:"plan_candidates" yaml:"plan_candidates"`
	KeyFileCandidates []string `mapstructure:"key_file_candidates" yaml:"key_file_candidates"`
	SourceExtensions  []string `mapstructure:"source_extensions" yaml:"source_extensions"`
	ExcludeGlobs      []string `mapstructure:"exclude_globs" yaml:"exclude_globs"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.nocktool/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".nocktool")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("NOCKTOOL")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("backend", "groq")
	v.SetDefault("model", "")
	v.SetDefault("max_tokens", 4096)
	v.SetDefault("temperature", 0.7)
	// HTTP/retry defaults: a single attempt, no backoff unless configured
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 1)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
	// Export defaults mirror the original NOCKCHAIN project layout
	v.SetDefault("export_project", "NOCKCHAIN")
	v.SetDefault("export_file_prefix", "nockchain_smart_export")
	v.SetDefault("export_dir_name", "exports")
	v.SetDefault("handover_dir", "handover")
	v.SetDefault("plan_candidates", []string{"Projectplan.md", "Nockchainprojectplan.md"})
	v.SetDefault("key_file_candidates", []string{"README.md", "CLAUDE.md", "package.json", "docker-compose.yml"})
	v.SetDefault("source_extensions", []string{".ts", ".js", ".rs", ".css", ".sh", ".py"})
	v.SetDefault("exclude_globs", []string{"**/.git", "**/node_modules", "exports"})

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".nocktool")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
