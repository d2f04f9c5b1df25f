package launch

import (
	"io"
	"strings"
)

// safeValidationFlags is the allow-list of sudo flags forwarded to
// the validation call.
var safeValidationFlags = map[string]bool{
	"-u": true, "-g": true, "-h": true, "-p": true,
	"-n": true, "-k": true, "-S": true,
}

// ValidationArgs reduces the user's sudo flags to the validation
// allow-list and appends the validate-only arguments. Non-flag
// tokens (flag values) always pass through.
func ValidationArgs(sudoFlags []string) []string {
	var args []string
	for _, f := range sudoFlags {
		if !strings.HasPrefix(f, "-") || safeValidationFlags[f] {
			args = append(args, f)
		}
	}
	return append(args, "-v", "-S", "-k")
}

// Escalator performs the two-step sudo handshake: validate the
// password, then launch the pending command in the background.
type Escalator struct {
	Host Host
}

// Validate checks the password with a credentials-only sudo call.
// The first result is false with a nil error when sudo rejects the
// password (any non-zero exit counts as a rejection); a non-nil
// error reports a failure spawning or feeding the helper.
func (e Escalator) Validate(sudoFlags []string, password string) (bool, error) {
	child, err := e.Host.SpawnPiped("sudo", ValidationArgs(sudoFlags)...)
	if err != nil {
		return false, err
	}
	if err := feed(child, password); err != nil {
		return false, err
	}
	if err := child.Wait(); err != nil {
		return false, nil
	}
	return true, nil
}

// LaunchPrivileged starts the pending command through sudo in
// background mode, feeding it the already validated password.
func (e Escalator) LaunchPrivileged(cmd *Command, sudoFlags []string, password string) error {
	args := append(append([]string{}, sudoFlags...), "-b", "-S", cmd.Exec)
	args = append(args, cmd.Args...)
	child, err := e.Host.SpawnPiped("sudo", args...)
	if err != nil {
		return err
	}
	if err := feed(child, password); err != nil {
		return err
	}
	return child.Wait()
}

// feed writes the password line to the child's stdin and closes it.
// The child is always reaped on a write failure.
func feed(child Child, password string) error {
	if _, err := io.WriteString(child, password+"\n"); err != nil {
		child.CloseInput()
		child.Wait()
		return err
	}
	if err := child.CloseInput(); err != nil {
		child.Wait()
		return err
	}
	return nil
}
