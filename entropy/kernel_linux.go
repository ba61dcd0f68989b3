//go:build linux

package entropy

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Kernel asks the kernel directly through getrandom(2). It works inside a
// chroot where /dev/urandom is missing.
type Kernel struct{}

func (Kernel) Fill(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, err := unix.Getrandom(b, unix.GRND_NONBLOCK)
	if n < 0 {
		n = 0
	}
	if n == len(b) {
		return n, nil
	}
	if n == 0 {
		return 0, fmt.Errorf("getrandom: %w: %v", ErrUnavailable, err)
	}
	return n, fmt.Errorf("getrandom: %w (%v of %v bytes)", ErrShort, n, len(b))
}
