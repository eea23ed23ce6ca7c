//go:build !windows

package process

import (
	"errors"
	"syscall"
)

// killTree sends SIGKILL to the process group (negative PID). The launcher
// starts Chrome as a group leader, so the group holds all its helpers.
func killTree(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
