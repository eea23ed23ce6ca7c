// Package process tears down browser process trees.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for PIDs that would target the caller's own
// process group or init.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree kills pid and every process it spawned. Chrome forks renderer
// and GPU helpers that outlive their parent when only the parent is killed.
func KillTree(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
