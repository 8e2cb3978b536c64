package execx

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"
)

// RunOptions adjusts how a command is executed.
type RunOptions struct {
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Trace records the observable facts of one subprocess execution. The
// start/end pair brackets the full subprocess lifetime including its own I/O.
type Trace struct {
	StartedAt   time.Time
	FinishedAt  time.Time
	ExitSuccess bool
	Stdout      []byte
	Stderr      []byte
}

// Duration returns the wall-clock interval of the execution.
func (t Trace) Duration() time.Duration {
	return t.FinishedAt.Sub(t.StartedAt)
}

// Runner abstracts subprocess execution so the scan layers can be tested
// without spawning real binaries. No timeout is imposed here; callers bound
// execution time through ctx.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (Trace, error)
}

// CmdRunner executes commands with os/exec.
type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) (Trace, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer

	stdoutWriter := io.Writer(&stdoutBuf)
	if opts.Stdout != nil {
		stdoutWriter = io.MultiWriter(&stdoutBuf, opts.Stdout)
	}
	stderrWriter := io.Writer(&stderrBuf)
	if opts.Stderr != nil {
		stderrWriter = io.MultiWriter(&stderrBuf, opts.Stderr)
	}

	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	trace := Trace{StartedAt: time.Now()}
	err := cmd.Run()
	trace.FinishedAt = time.Now()
	trace.ExitSuccess = err == nil
	trace.Stdout = stdoutBuf.Bytes()
	trace.Stderr = stderrBuf.Bytes()
	return trace, err
}

var _ Runner = CmdRunner{}
