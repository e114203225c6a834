//go:build !windows

package readline

import (
	"golang.org/x/sys/unix"
)

// suspend hands the terminal back and stops the process group, as Ctrl+Z
// would outside raw mode. Raw mode is restored on resume.
func (t *Terminal) suspend() error {
	if err := t.restore(); err != nil {
		return err
	}

	_ = unix.Kill(0, unix.SIGSTOP)

	// on resume...
	return t.makeRaw()
}
