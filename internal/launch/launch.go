package launch

import (
	"os"

	"flint/internal/pathx"
)

// Command is a fully composed launch request.
type Command struct {
	Name string
	Exec string
	Args []string
}

// placeholders are the desktop-entry field codes the composer
// substitutes or strips.
var placeholders = map[string]bool{"%f": true, "%F": true, "%u": true, "%U": true}

// Compose expands a desktop-entry command template. With pending
// launch arguments, every placeholder token is replaced in place by
// the whole tilde-expanded argument list (appended when the template
// has no placeholder). Without pending arguments, or with the
// feature disabled, placeholders are simply dropped.
func Compose(command, pendingArgs []string, filePath string, launchArgs bool) (string, []string) {
	exe := command[0]
	template := command[1:]

	if !launchArgs || len(pendingArgs) == 0 {
		var args []string
		for _, tok := range template {
			if placeholders[tok] {
				continue
			}
			args = append(args, tok)
		}
		return exe, args
	}

	resolved := make([]string, len(pendingArgs))
	copy(resolved, pendingArgs)
	if filePath != "" {
		resolved[len(resolved)-1] = filePath
	}
	for i, a := range resolved {
		resolved[i] = pathx.ExpandTilde(a)
	}

	var args []string
	substituted := false
	for _, tok := range template {
		if placeholders[tok] {
			args = append(args, resolved...)
			substituted = true
			continue
		}
		args = append(args, tok)
	}
	if !substituted {
		args = append(args, resolved...)
	}
	return exe, args
}

// OpenPath launches the file at path directly when it is an
// executable regular file, otherwise hands it to xdg-open.
func OpenPath(h Host, path string) error {
	full := pathx.ExpandTilde(path)
	info, err := os.Stat(full)
	if err != nil {
		return err
	}
	if !info.IsDir() && info.Mode()&0o111 != 0 {
		return h.SpawnDetached(full)
	}
	return h.SpawnDetached("xdg-open", full)
}
