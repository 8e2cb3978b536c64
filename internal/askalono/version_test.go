package askalono

import (
	"context"
	"errors"
	"testing"

	"licensecrawl/internal/execx"
)

type scriptedRunner struct {
	stdout  string
	err     error
	command string
	args    []string
}

func (r *scriptedRunner) Run(_ context.Context, command string, args []string, _ execx.RunOptions) (execx.Trace, error) {
	r.command = command
	r.args = args
	return execx.Trace{Stdout: []byte(r.stdout), ExitSuccess: r.err == nil}, r.err
}

func TestVersionStripsToolName(t *testing.T) {
	runner := &scriptedRunner{stdout: "askalono 0.2.0-beta.1\n"}
	art := &Artifact{Dir: "/tmp/x", Path: "/tmp/x/askalono.linux"}

	version, err := Version(context.Background(), runner, art)
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "0.2.0-beta.1" {
		t.Fatalf("version = %q, want %q", version, "0.2.0-beta.1")
	}
	if runner.command != art.Path {
		t.Fatalf("ran %q, want %q", runner.command, art.Path)
	}
	if len(runner.args) != 1 || runner.args[0] != "--version" {
		t.Fatalf("args = %v, want [--version]", runner.args)
	}
}

func TestVersionKeepsUnprefixedOutput(t *testing.T) {
	runner := &scriptedRunner{stdout: "0.3.0\nextra diagnostics\n"}
	art := &Artifact{Dir: "/tmp/x", Path: "/tmp/x/askalono.linux"}

	version, err := Version(context.Background(), runner, art)
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "0.3.0" {
		t.Fatalf("version = %q, want first line only", version)
	}
}

func TestVersionPropagatesRunError(t *testing.T) {
	wantErr := errors.New("exec format error")
	runner := &scriptedRunner{err: wantErr}
	art := &Artifact{Dir: "/tmp/x", Path: "/tmp/x/askalono.linux"}

	_, err := Version(context.Background(), runner, art)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
}
