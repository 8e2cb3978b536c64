package execx

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
)

func shell(script string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/c", script}
	}
	return "sh", []string{"-c", script}
}

func TestRunCapturesStdout(t *testing.T) {
	cmd, args := shell("echo hello")
	trace, err := CmdRunner{}.Run(context.Background(), cmd, args, RunOptions{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !trace.ExitSuccess {
		t.Fatal("expected ExitSuccess for zero exit")
	}
	if got := strings.TrimSpace(string(trace.Stdout)); got != "hello" {
		t.Fatalf("stdout = %q, want %q", got, "hello")
	}
	if trace.FinishedAt.Before(trace.StartedAt) {
		t.Fatal("FinishedAt precedes StartedAt")
	}
}

func TestRunCapturesStderrAndFailure(t *testing.T) {
	cmd, args := shell("echo oops 1>&2; exit 3")
	trace, err := CmdRunner{}.Run(context.Background(), cmd, args, RunOptions{})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if trace.ExitSuccess {
		t.Fatal("expected ExitSuccess = false")
	}
	if !strings.Contains(string(trace.Stderr), "oops") {
		t.Fatalf("stderr = %q, want it to contain %q", trace.Stderr, "oops")
	}
}

func TestRunTeesWriters(t *testing.T) {
	var tee bytes.Buffer
	cmd, args := shell("echo teed")
	trace, err := CmdRunner{}.Run(context.Background(), cmd, args, RunOptions{Stdout: &tee})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !bytes.Equal(trace.Stdout, tee.Bytes()) {
		t.Fatalf("tee mismatch: trace %q vs writer %q", trace.Stdout, tee.Bytes())
	}
}
