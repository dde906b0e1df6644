package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "agent.sh")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestRunCapturesStdout(t *testing.T) {
	script := writeScript(t, `echo "config=$2"; cat`)
	r := Runner{Script: script, ConfigPath: "/tmp/agent.json"}

	out, err := r.Run(context.Background(), "hello agent")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out, "config=/tmp/agent.json") {
		t.Fatalf("config path not passed through: %q", out)
	}
	if !strings.Contains(out, "hello agent") {
		t.Fatalf("prompt not piped to stdin: %q", out)
	}
}

func TestRunSurfacesStderrOnFailure(t *testing.T) {
	script := writeScript(t, `echo "model unavailable" >&2; exit 3`)
	r := Runner{Script: script}

	_, err := r.Run(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("stderr not surfaced: %v", err)
	}
}

func TestRunTimeout(t *testing.T) {
	script := writeScript(t, `sleep 5`)
	r := Runner{Script: script, Timeout: 50 * time.Millisecond}

	start := time.Now()
	_, err := r.Run(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded; got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not enforced")
	}
}

func TestRunRequiresScript(t *testing.T) {
	r := Runner{}
	if _, err := r.Run(context.Background(), "prompt"); !errors.Is(err, ErrNoScript) {
		t.Fatalf("expected ErrNoScript; got %v", err)
	}
}
