package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/nockchain/nocktool/internal/ai"
	"github.com/nockchain/nocktool/internal/chat"
	"github.com/spf13/cobra"
)

var (
	chatBackend string
	chatModel   string
	chatStream  bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session with file commands",
	Long: `Starts a line-oriented chat loop against the selected backend (groq or
moonshot). Besides free-form prompts it understands three file verbs:
read <file>, write <file> <content>, and edit <file> <instruction>.`,
	Example: `  nocktool chat
  NOCKTOOL_BACKEND=moonshot nocktool chat --stream
  nocktool chat --backend groq --model llama3-8b-8192`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := chatBackend
		if backend == "" && cfg != nil {
			backend = cfg.Backend
		}
		if backend == "" {
			backend = ai.ProviderGroq
		}
		keyEnv, ok := ai.KeyEnvVar(backend)
		if !ok {
			return fmt.Errorf("invalid backend: %s (use %s or %s)", backend, ai.ProviderGroq, ai.ProviderMoonshot)
		}
		apiKey := os.Getenv(keyEnv)
		if apiKey == "" {
			return fmt.Errorf("set %s env var", keyEnv)
		}

		rc := ai.RuntimeConfig{APIKey: apiKey}
		maxTokens := 0
		temperature := 0.0
		if cfg != nil {
			rc.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSec) * time.Second
			rc.RetryMax = cfg.RetryMaxAttempts
			rc.BaseDelay = time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond
			rc.MaxDelay = time.Duration(cfg.RetryMaxDelayMs) * time.Millisecond
			maxTokens = cfg.MaxTokens
			temperature = cfg.Temperature
		}
		rt, ok := ai.GetRuntime(backend, rc)
		if !ok {
			return fmt.Errorf("no runtime registered for backend: %s", backend)
		}

		model := chatModel
		if model == "" && cfg != nil {
			model = cfg.Model
		}
		if model == "" {
			if name, ok := ai.DefaultModel(backend); ok {
				model = name
			} else {
				return fmt.Errorf("no default model for backend %s; use --model", backend)
			}
		}

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}

		fmt.Printf("Using %s with %s\n", backend, model)
		session := chat.NewSession(chat.Options{
			Runtime:     rt,
			Model:       model,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			ProjectDir:  wd,
			Stream:      chatStream,
		})
		return session.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatBackend, "backend", "", "chat backend: groq|moonshot (default from config/env)")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "override model (default per backend)")
	chatCmd.Flags().BoolVar(&chatStream, "stream", false, "stream responses if supported by the backend")
}
