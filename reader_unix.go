//go:build unix

package termcore

import (
	"time"

	"golang.org/x/sys/unix"
)

// terminalSize returns the terminal dimensions for an fd, defaulting to
// 80x24 when the ioctl fails.
func terminalSize(fd int) (width, height int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// selectWithTimeoutAndInterrupt performs a select() on fd and an interrupt fd.
// Returns (ready, interrupted, err) where ready means the main fd has data,
// interrupted means the interrupt fd was triggered, and a negative timeout
// blocks indefinitely. EINTR is treated as a timeout since signals are
// expected to arrive while blocked.
func selectWithTimeoutAndInterrupt(fd, intrFd int, timeout time.Duration) (ready, interrupted bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd)

	maxFd := fd
	if intrFd >= 0 {
		readFds.Set(intrFd)
		if intrFd > maxFd {
			maxFd = intrFd
		}
	}

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}

	n, err := unix.Select(maxFd+1, &readFds, nil, nil, tv)
	if err != nil {
		if err == unix.EINTR {
			return false, false, nil
		}
		return false, false, err
	}
	if n == 0 {
		return false, false, nil // Timeout
	}

	if intrFd >= 0 && readFds.IsSet(intrFd) {
		return false, true, nil
	}
	return readFds.IsSet(fd), false, nil
}
