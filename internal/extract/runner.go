package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Runner executes the external tools the pipeline depends on (ImageMagick
// and darktable-chart). Abstracting it lets tests substitute canned output
// for real processes.
type Runner interface {
	// Output runs a tool and returns its stdout. Stderr is discarded.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs a tool, passing its stdout and stderr through.
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs tools found on the search path.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", name, err)
	}
	return out, nil
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

// ToolError reports an external tool invocation that failed or produced
// output that could not be parsed.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string { return fmt.Sprintf("%s: %v", e.Tool, e.Err) }

func (e *ToolError) Unwrap() error { return e.Err }
