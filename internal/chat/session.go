// Package chat implements the interactive command relay: a line-oriented
// loop that dispatches read/write/edit file verbs and falls back to a
// direct chat prompt against the configured backend.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nockchain/nocktool/internal/ai"
	"github.com/nockchain/nocktool/internal/utils"
)

const editPromptFormat = "Original: %s\nEdit per: %s\nOutput full updated code only."

// Options configures a Session. All collaborators are passed explicitly;
// the session holds no ambient global state.
type Options struct {
	Runtime     ai.Runtime
	Model       string
	MaxTokens   int
	Temperature float64
	ProjectDir  string
	Input       io.Reader
	Output      io.Writer
	Stream      bool
}

// Session is a single interactive relay session.
type Session struct {
	rt          ai.Runtime
	model       string
	maxTokens   int
	temperature float64
	projectDir  string
	in          *bufio.Reader
	out         io.Writer
	stream      bool
}

// NewSession builds a session from options. Input/Output default to the
// process stdin/stdout, ProjectDir to the current working directory.
func NewSession(opts Options) *Session {
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	dir := opts.ProjectDir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	temp := opts.Temperature
	if temp == 0 {
		temp = 0.7
	}
	return &Session{
		rt:          opts.Runtime,
		model:       opts.Model,
		maxTokens:   maxTokens,
		temperature: temp,
		projectDir:  dir,
		in:          bufio.NewReader(in),
		out:         out,
		stream:      opts.Stream,
	}
}

// Run drives the interactive loop until "exit" or end of input. Individual
// command and API failures are rendered inline; they never end the loop.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "nocktool chat (%s) — type 'exit' to quit. Commands: read <file>, write <file> <content>, edit <file> <instruction>\n", s.model)
	for {
		fmt.Fprint(s.out, "Prompt: ")
		line, err := s.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if err != nil {
				return nil
			}
			continue
		}
		if strings.EqualFold(line, "exit") {
			return nil
		}
		fmt.Fprintln(s.out, "\nResponse:")
		if resp := s.Handle(ctx, line); resp != "" {
			fmt.Fprintln(s.out, resp)
		}
		if err != nil {
			return nil
		}
	}
}

// Handle dispatches a single input line and returns the rendered result.
// In streaming mode the chat fallback writes deltas directly to the output
// and returns an empty string.
func (s *Session) Handle(ctx context.Context, line string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "read "):
		return s.readFile(strings.TrimSpace(line[5:]))
	case strings.HasPrefix(lower, "write "):
		parts := strings.SplitN(strings.TrimSpace(line[6:]), " ", 2)
		if len(parts) < 2 {
			return "Usage: write <file> <content>"
		}
		return s.writeFile(parts[0], parts[1])
	case strings.HasPrefix(lower, "edit "):
		parts := strings.SplitN(strings.TrimSpace(line[5:]), " ", 2)
		if len(parts) < 2 {
			return "Usage: edit <file> <instruction>"
		}
		return s.editFile(ctx, parts[0], parts[1])
	default:
		return s.ask(ctx, line)
	}
}

// readFile returns the file content, or an inline error string.
func (s *Session) readFile(path string) string {
	data, err := os.ReadFile(filepath.Join(s.projectDir, path))
	if err != nil {
		return fmt.Sprintf("Error reading: %v", err)
	}
	return utils.DecodeText(data)
}

// writeFile writes content to the file, asking for confirmation before
// overwriting an existing one. A brand-new file needs no confirmation.
func (s *Session) writeFile(path, content string) string {
	full := filepath.Join(s.projectDir, path)
	if _, err := os.Stat(full); err == nil {
		fmt.Fprintf(s.out, "Overwrite %s? (y/n): ", path)
		answer, _ := s.in.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return "Cancelled"
		}
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Sprintf("Error writing: %v", err)
	}
	return fmt.Sprintf("Wrote to %s", path)
}

// editFile reads the target, asks the model for a full rewrite per the
// instruction, and writes the response back through the confirmed path.
func (s *Session) editFile(ctx context.Context, path, instruction string) string {
	content := s.readFile(path)
	if strings.HasPrefix(content, "Error reading:") {
		return content
	}
	prompt := fmt.Sprintf(editPromptFormat, content, instruction)
	newContent, errStr := s.generate(ctx, prompt)
	if errStr != "" {
		return errStr
	}
	return s.writeFile(path, newContent) + "\nNew content:\n" + newContent
}

// ask sends the line verbatim as a single user message.
func (s *Session) ask(ctx context.Context, prompt string) string {
	if s.stream {
		if sr, ok := s.rt.(ai.StreamRuntime); ok {
			s.warnContextWindow(prompt)
			req := s.request(prompt)
			if err := sr.GenerateStream(ctx, req, func(delta string) {
				fmt.Fprint(s.out, delta)
			}); err != nil {
				return fmt.Sprintf("Error: %v", err)
			}
			fmt.Fprintln(s.out)
			return ""
		}
	}
	resp, errStr := s.generate(ctx, prompt)
	if errStr != "" {
		return errStr
	}
	return resp
}

// generate performs one blocking completion; failures come back as an
// inline error string so the loop keeps running.
func (s *Session) generate(ctx context.Context, prompt string) (string, string) {
	s.warnContextWindow(prompt)
	resp, err := s.rt.Generate(ctx, s.request(prompt))
	if err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", "Error: no content returned from model"
	}
	return resp.Choices[0].Message.Content, ""
}

func (s *Session) request(prompt string) ai.GenerateRequest {
	return ai.GenerateRequest{
		Model:       s.model,
		Messages:    []ai.Message{{Role: "user", Content: prompt}},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}
}

// warnContextWindow prints a heads-up when the estimated prompt size plus
// the response budget exceeds the model's known context window.
func (s *Session) warnContextWindow(prompt string) {
	mi, ok := ai.LookupModel(s.model)
	if !ok {
		return
	}
	if tokens := utils.CountTokens(prompt); tokens+s.maxTokens > mi.ContextTokens {
		fmt.Fprintf(s.out, "⚠ Prompt (≈%d tokens) + max-tokens (%d) may exceed %s context window (~%d tokens)\n",
			tokens, s.maxTokens, mi.Name, mi.ContextTokens)
	}
}
