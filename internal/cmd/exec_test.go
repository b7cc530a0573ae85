package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/herokusan/san/internal/log"
)

func logCtx(buf *bytes.Buffer, verbose bool) context.Context {
	l := log.New(buf, verbose, false)
	return log.WithLogger(context.Background(), l)
}

func TestRunContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"success", []string{"sh", "-c", "exit 0"}, ""},
		{"stderr becomes error", []string{"sh", "-c", "echo 'fatal: not a git repository' >&2; exit 128"}, "fatal: not a git repository"},
		{"no stderr keeps exit error", []string{"sh", "-c", "exit 3"}, "exit status 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := RunContext(logCtx(&bytes.Buffer{}, false), "", tt.args[0], tt.args[1:]...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("RunContext = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("RunContext error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestOutputContext(t *testing.T) {
	t.Parallel()

	out, err := OutputContext(logCtx(&bytes.Buffer{}, false), "/tmp", "pwd")
	if err != nil {
		t.Fatalf("OutputContext(pwd) = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(string(out)), "tmp") {
		t.Errorf("OutputContext(pwd) = %q, want a path ending in tmp", out)
	}
}

func TestOutputContext_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx(&bytes.Buffer{}, false))
	cancel()
	_, err := OutputContext(ctx, "", "sleep", "10")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("OutputContext error = %v, want context.Canceled", err)
	}
}

func TestExec_StreamsOutput(t *testing.T) {
	t.Parallel()

	var stdout, stderr, logs bytes.Buffer
	e := &Exec{Stdout: &stdout, Stderr: &stderr, Stdin: strings.NewReader("")}
	err := e.Run(logCtx(&logs, true), "sh", "-c", "echo migrated; echo warn >&2")
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	if stdout.String() != "migrated\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "migrated\n")
	}
	if stderr.String() != "warn\n" {
		t.Errorf("stderr = %q, want %q", stderr.String(), "warn\n")
	}
	if !strings.HasPrefix(logs.String(), "$ sh -c") {
		t.Errorf("verbose log = %q, want command echo", logs.String())
	}
}

func TestExec_FailurePropagatesExitError(t *testing.T) {
	t.Parallel()

	e := &Exec{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Stdin: strings.NewReader("")}
	err := e.Run(logCtx(&bytes.Buffer{}, false), "sh", "-c", "exit 2")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run error = %v (%T), want *exec.ExitError", err, err)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", exitErr.ExitCode())
	}
}

type nopRunner struct{}

func (nopRunner) Run(context.Context, string, ...string) error { return nil }

func TestRunnerFromContext(t *testing.T) {
	t.Parallel()

	r := RunnerFromContext(context.Background(), "/srv/app")
	e, ok := r.(*Exec)
	if !ok || e.Dir != "/srv/app" {
		t.Errorf("default runner = %#v, want *Exec in /srv/app", r)
	}

	var stored Runner = nopRunner{}
	if got := RunnerFromContext(WithRunner(context.Background(), stored), "/srv/app"); got != stored {
		t.Errorf("RunnerFromContext = %#v, want the attached runner", got)
	}
}
