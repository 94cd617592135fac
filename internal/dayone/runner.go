package dayone

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Command is a single invocation of the Day One CLI.
type Command struct {
	Binary string
	Args   []string
	Stdin  string
}

// Output is what a finished process left behind.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands. It returns an error only when the process could
// not be run at all; a non-zero exit is reported through Output.ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

func (ExecRunner) Run(ctx context.Context, cmd Command) (Output, error) {
	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	c.Stdin = strings.NewReader(cmd.Stdin)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}
