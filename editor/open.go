package editor

import (
	"os/exec"
	"runtime"
)

// launch is swapped out in tests.
var launch = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open triggers the platform's URI-open mechanism for the given protocol URI.
// When no opener is available (server-side or stripped-down environments) it
// is a no-op returning nil; a missing protocol handler on the other end is out
// of scope here.
func Open(uri string) error {
	name, args := openCommand()
	if name == "" {
		return nil
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil
	}
	return launch(name, append(args, uri)...)
}

func openCommand() (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", nil
	default:
		return "", nil
	}
}
