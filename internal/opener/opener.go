// Package opener hands a file to the desktop's default application.
package opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrOpen indicates the system opener could not be started.
var ErrOpen = errors.New("failed to open with system application")

// Opener opens a file or URL outside this process.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// System opens targets with xdg-open, open, or start depending on GOOS.
type System struct {
	GOOS string // Empty uses runtime.GOOS

	start func(*exec.Cmd) error // Replaced in tests
}

// Command returns the program and arguments that open target on goos.
func Command(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		// The empty argument is start's window title.
		return "cmd", []string{"/c", "start", "", target}
	default:
		return "xdg-open", []string{target}
	}
}

// Open starts the opener without waiting for the application to exit.
func (s *System) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	goos := s.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	name, args := Command(goos, target)
	cmd := exec.Command(name, args...) // #nosec G204 -- fixed program, target is a local path
	cmd.Stdout, cmd.Stderr, cmd.Stdin = nil, nil, nil

	start := s.start
	if start == nil {
		start = startDetached
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpen, name, err)
	}
	return nil
}

// startDetached starts cmd and reaps it in the background.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

var _ Opener = (*System)(nil)
