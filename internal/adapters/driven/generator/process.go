// Package generator runs the local language model as a child process.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var _ driven.Generator = (*Process)(nil)

const (
	// DefaultCommand is the model runner binary
	DefaultCommand = "ollama"

	// MaxDetailBytes caps the stderr excerpt carried in a failure
	MaxDetailBytes = 500

	// waitDelay bounds how long Wait blocks on pipes held open by
	// grandchildren after the process is killed.
	waitDelay = time.Second
)

// DefaultArgs are passed before the model name
var DefaultArgs = []string{"run"}

// ProcessConfig holds configuration for the process generator
type ProcessConfig struct {
	Command string
	Args    []string
	Logger  *slog.Logger
}

// Process runs "<command> <args...> <model>" once per request, writes the
// prompt to stdin and returns stdout. It never retries.
type Process struct {
	command string
	args    []string
	logger  *slog.Logger
}

// NewProcess creates a process generator
func NewProcess(cfg ProcessConfig) *Process {
	p := &Process{
		command: cfg.Command,
		args:    cfg.Args,
		logger:  cfg.Logger,
	}
	if p.command == "" {
		p.command = DefaultCommand
		if p.args == nil {
			p.args = DefaultArgs
		}
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Name returns the runner command
func (p *Process) Name() string {
	return p.command
}

// Generate runs one generation. A zero Timeout means no deadline beyond ctx.
func (p *Process) Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	start := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	argv := append(append([]string{}, p.args...), req.Model)
	cmd := exec.CommandContext(ctx, p.command, argv...) // #nosec G204
	cmd.Stdin = strings.NewReader(req.Prompt)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	took := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		p.logger.Warn("generation timed out", "model", req.Model, "timeout", req.Timeout)
		return domain.GenerationFailed(domain.FailureTimeout,
			fmt.Sprintf("generation exceeded %s", req.Timeout), took)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			detail := CleanDetail(stderr.String())
			if detail == "" {
				detail = fmt.Sprintf("exit status %d", exitErr.ExitCode())
			}
			return domain.GenerationFailed(domain.FailureNonZeroExit, detail, took)
		}
		return domain.GenerationFailed(domain.FailureException, CleanDetail(err.Error()), took)
	}

	return domain.GenerationSucceeded(strings.TrimSpace(stdout.String()), took)
}

// CleanDetail trims s, drops control characters and caps it at
// MaxDetailBytes without splitting a rune.
func CleanDetail(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	s = strings.TrimSpace(s)

	if len(s) <= MaxDetailBytes {
		return s
	}
	cut := MaxDetailBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
