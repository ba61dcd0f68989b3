//go:build !linux

package entropy

import "fmt"

// Kernel has no direct kernel interface on this platform.
type Kernel struct{}

func (Kernel) Fill(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return 0, fmt.Errorf("kernel: %w", ErrUnavailable)
}
