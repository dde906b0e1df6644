// Package runner shells out to the external agent script. The contract is
// deliberately narrow: the script accepts a JSON config path and a prompt,
// and returns text (usually Markdown) on stdout within the timeout. Nothing
// in the tree engine depends on what the script does internally.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner invokes one configured agent script.
type Runner struct {
	// Script is the executable to run (e.g. a run_agent entry point).
	Script string
	// ConfigPath is passed to the script as its agent config.
	ConfigPath string
	// Timeout bounds one invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

const DefaultTimeout = 120 * time.Second

var ErrNoScript = errors.New("no runner script configured")

// Run executes the script with the config path and prompt as arguments and
// returns trimmed stdout. A non-zero exit includes stderr in the error; a
// deadline hit comes back as context.DeadlineExceeded.
func (r Runner) Run(ctx context.Context, prompt string) (string, error) {
	script := strings.TrimSpace(r.Script)
	if script == "" {
		return "", ErrNoScript
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{}
	if strings.TrimSpace(r.ConfigPath) != "" {
		args = append(args, "--config", r.ConfigPath)
	}

	cmd := exec.CommandContext(ctx, script, args...)
	cmd.Stdin = strings.NewReader(prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s: %s", script, msg)
		}
		return "", fmt.Errorf("%s: %w", script, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
