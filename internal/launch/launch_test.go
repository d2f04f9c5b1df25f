package launch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCompose(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name       string
		command    []string
		pending    []string
		filePath   string
		launchArgs bool
		wantExe    string
		wantArgs   []string
	}{
		{
			name:       "placeholders dropped without args",
			command:    []string{"firefox", "%u"},
			launchArgs: true,
			wantExe:    "firefox",
		},
		{
			name:       "feature off ignores pending args",
			command:    []string{"firefox", "%u"},
			pending:    []string{"--private"},
			launchArgs: false,
			wantExe:    "firefox",
		},
		{
			name:       "placeholder replaced in place",
			command:    []string{"vlc", "--play", "%U", "--loop"},
			pending:    []string{"movie.mp4"},
			launchArgs: true,
			wantExe:    "vlc",
			wantArgs:   []string{"--play", "movie.mp4", "--loop"},
		},
		{
			name:       "every placeholder gets the full list",
			command:    []string{"x", "%f", "%F"},
			pending:    []string{"a", "b"},
			launchArgs: true,
			wantExe:    "x",
			wantArgs:   []string{"a", "b", "a", "b"},
		},
		{
			name:       "no placeholder appends args",
			command:    []string{"code", "--reuse-window"},
			pending:    []string{"proj"},
			launchArgs: true,
			wantExe:    "code",
			wantArgs:   []string{"--reuse-window", "proj"},
		},
		{
			name:       "file path overwrites the last arg",
			command:    []string{"ed", "%f"},
			pending:    []string{"-s", "draft"},
			filePath:   "/tmp/z",
			launchArgs: true,
			wantExe:    "ed",
			wantArgs:   []string{"-s", "/tmp/z"},
		},
		{
			name:       "pending args are tilde expanded",
			command:    []string{"ed", "%f"},
			pending:    []string{"~/notes.txt"},
			launchArgs: true,
			wantExe:    "ed",
			wantArgs:   []string{filepath.Join(home, "notes.txt")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe, args := Compose(tt.command, tt.pending, tt.filePath, tt.launchArgs)
			if exe != tt.wantExe {
				t.Errorf("exe = %q, want %q", exe, tt.wantExe)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestValidationArgs(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, []string{"-v", "-S", "-k"}},
		{[]string{"-u", "root"}, []string{"-u", "root", "-v", "-S", "-k"}},
		{[]string{"-r", "role", "-n"}, []string{"role", "-n", "-v", "-S", "-k"}},
		{[]string{"-E"}, []string{"-v", "-S", "-k"}},
	}
	for _, tt := range tests {
		if got := ValidationArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ValidationArgs(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type fakeChild struct {
	stdin   bytes.Buffer
	closed  bool
	waited  bool
	waitErr error
}

func (c *fakeChild) Write(p []byte) (int, error) { return c.stdin.Write(p) }
func (c *fakeChild) CloseInput() error           { c.closed = true; return nil }
func (c *fakeChild) Wait() error                 { c.waited = true; return c.waitErr }

type fakeHost struct {
	detached  [][]string
	piped     [][]string
	detachErr error
	pipeErr   error
	children  []*fakeChild
}

func (h *fakeHost) SpawnDetached(name string, args ...string) error {
	h.detached = append(h.detached, append([]string{name}, args...))
	return h.detachErr
}

func (h *fakeHost) SpawnPiped(name string, args ...string) (Child, error) {
	h.piped = append(h.piped, append([]string{name}, args...))
	if h.pipeErr != nil {
		return nil, h.pipeErr
	}
	child := h.children[0]
	h.children = h.children[1:]
	return child, nil
}

func TestValidateSuccess(t *testing.T) {
	child := &fakeChild{}
	host := &fakeHost{children: []*fakeChild{child}}
	esc := Escalator{Host: host}

	ok, err := esc.Validate([]string{"-u", "root"}, "hunter2")
	if err != nil || !ok {
		t.Fatalf("Validate = (%v, %v), want (true, nil)", ok, err)
	}
	want := []string{"sudo", "-u", "root", "-v", "-S", "-k"}
	if !reflect.DeepEqual(host.piped[0], want) {
		t.Errorf("argv = %v, want %v", host.piped[0], want)
	}
	if got := child.stdin.String(); got != "hunter2\n" {
		t.Errorf("stdin = %q, want password plus newline", got)
	}
	if !child.closed || !child.waited {
		t.Error("stdin must be closed and the child reaped")
	}
}

func TestValidateRejected(t *testing.T) {
	child := &fakeChild{waitErr: errors.New("exit status 1")}
	host := &fakeHost{children: []*fakeChild{child}}
	esc := Escalator{Host: host}

	ok, err := esc.Validate(nil, "wrong")
	if err != nil {
		t.Fatalf("rejection is not an error: %v", err)
	}
	if ok {
		t.Error("non-zero exit should reject the password")
	}
}

func TestValidateSpawnFailure(t *testing.T) {
	host := &fakeHost{pipeErr: errors.New("no sudo")}
	esc := Escalator{Host: host}

	ok, err := esc.Validate(nil, "pw")
	if ok || err == nil {
		t.Errorf("Validate = (%v, %v), want (false, error)", ok, err)
	}
}

func TestLaunchPrivileged(t *testing.T) {
	child := &fakeChild{}
	host := &fakeHost{children: []*fakeChild{child}}
	esc := Escalator{Host: host}

	cmd := &Command{Name: "htop", Exec: "htop", Args: []string{"-d", "10"}}
	if err := esc.LaunchPrivileged(cmd, []string{"-u", "root"}, "hunter2"); err != nil {
		t.Fatalf("LaunchPrivileged: %v", err)
	}
	want := []string{"sudo", "-u", "root", "-b", "-S", "htop", "-d", "10"}
	if !reflect.DeepEqual(host.piped[0], want) {
		t.Errorf("argv = %v, want %v", host.piped[0], want)
	}
	if got := child.stdin.String(); got != "hunter2\n" {
		t.Errorf("stdin = %q", got)
	}
	if !child.closed {
		t.Error("stdin left open")
	}
}

func TestLaunchPrivilegedFailure(t *testing.T) {
	child := &fakeChild{waitErr: errors.New("exit status 1")}
	host := &fakeHost{children: []*fakeChild{child}}
	esc := Escalator{Host: host}

	err := esc.LaunchPrivileged(&Command{Exec: "htop"}, nil, "pw")
	if err == nil {
		t.Error("sudo failure should surface")
	}
}

func TestOpenPath(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(doc, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	host := &fakeHost{}
	if err := OpenPath(host, script); err != nil {
		t.Fatalf("OpenPath(script): %v", err)
	}
	if !reflect.DeepEqual(host.detached[0], []string{script}) {
		t.Errorf("executable should launch directly, got %v", host.detached[0])
	}

	if err := OpenPath(host, doc); err != nil {
		t.Fatalf("OpenPath(doc): %v", err)
	}
	if !reflect.DeepEqual(host.detached[1], []string{"xdg-open", doc}) {
		t.Errorf("plain file should go through xdg-open, got %v", host.detached[1])
	}

	if err := OpenPath(host, filepath.Join(dir, "missing")); err == nil {
		t.Error("missing path should error")
	}
	if len(host.detached) != 2 {
		t.Error("missing path must not spawn anything")
	}
}

func TestOpenPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	host := &fakeHost{}
	if err := OpenPath(host, "~/a.txt"); err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	want := []string{"xdg-open", filepath.Join(home, "a.txt")}
	if !reflect.DeepEqual(host.detached[0], want) {
		t.Errorf("got %v, want %v", host.detached[0], want)
	}
}
