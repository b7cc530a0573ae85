package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/herokusan/san/internal/log"
)

// Runner issues a single external command and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Exec is a Runner that connects the child to the given streams.
// Nil streams fall back to the process's own stdin/stdout/stderr.
type Exec struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes name with args, streaming its output.
func (e *Exec) Run(ctx context.Context, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = e.Dir
	c.Stdin = orReader(e.Stdin, os.Stdin)
	c.Stdout = orWriter(e.Stdout, os.Stdout)
	c.Stderr = orWriter(e.Stderr, os.Stderr)

	done := log.FromContext(ctx).Command(e.Dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// RunContext executes a command and returns stderr in the error message if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command and returns stdout, with stderr in the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	output, err := c.Output()
	done(time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, errors.New(errMsg)
		}
		return nil, err
	}
	return output, nil
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

type runnerKey struct{}

// WithRunner attaches r to the context. Commands that run the heroku and
// git tools pick it up with RunnerFromContext.
func WithRunner(ctx context.Context, r Runner) context.Context {
	return context.WithValue(ctx, runnerKey{}, r)
}

// RunnerFromContext returns the Runner attached to ctx, or an Exec in dir
// streaming to the process's own stdio.
func RunnerFromContext(ctx context.Context, dir string) Runner {
	if r, ok := ctx.Value(runnerKey{}).(Runner); ok {
		return r
	}
	return &Exec{Dir: dir}
}
