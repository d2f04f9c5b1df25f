package launch

import (
	"io"
	"os/exec"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Child is a spawned process the escalation handshake feeds a
// password to.
type Child interface {
	io.Writer
	CloseInput() error
	Wait() error
}

// Host abstracts process creation so launches and the escalation
// handshake can be tested without spawning anything.
type Host interface {
	// SpawnDetached starts a program in its own session with no
	// attached stdio and does not wait for it.
	SpawnDetached(name string, args ...string) error
	// SpawnPiped starts a program with a stdin pipe and returns a
	// handle to feed it and wait for its exit.
	SpawnPiped(name string, args ...string) (Child, error)
}

// OSHost runs real processes.
type OSHost struct{}

// SpawnDetached launches the program in a new session so it survives
// the launcher exiting. Stdio stays disconnected; the TUI owns the
// terminal.
func (OSHost) SpawnDetached(name string, args ...string) error {
	logrus.Debugf("spawn: %s %v", name, args)
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in case the launcher stays open after a failure
	// elsewhere.
	go cmd.Wait()
	return nil
}

type pipedChild struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func (c *pipedChild) Write(p []byte) (int, error) { return c.stdin.Write(p) }
func (c *pipedChild) CloseInput() error           { return c.stdin.Close() }
func (c *pipedChild) Wait() error                 { return c.cmd.Wait() }

// SpawnPiped starts the program with only stdin connected. Stdout and
// stderr go to the null device so helper output cannot corrupt the
// interface.
func (OSHost) SpawnPiped(name string, args ...string) (Child, error) {
	logrus.Debugf("spawn piped: %s %v", name, args)
	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &pipedChild{cmd: cmd, stdin: stdin}, nil
}
