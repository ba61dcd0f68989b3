// Package entropy provides best-effort access to system entropy.
// Nothing here blocks indefinitely or retries: a provider hands back
// whatever it managed to read and says how much that was.
package entropy

import (
	"errors"
	"fmt"
)

const urandom = "/dev/urandom"

var (
	ErrUnavailable = errors.New("entropy source unavailable")
	ErrShort       = errors.New("short read from entropy source")
)

// Source fills b as far as it can. n is always the number of leading bytes
// of b that were written, even when err is non-nil.
type Source interface {
	Fill(b []byte) (n int, err error)
}

// Sink accepts bytes fed back into the system pool.
type Sink interface {
	Feed(b []byte) error
}

type Func func(b []byte) (int, error)

func (f Func) Fill(b []byte) (int, error) {
	return f(b)
}

// Zero never provides anything.
type Zero struct{}

func (Zero) Fill(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return 0, fmt.Errorf("zero: %w", ErrUnavailable)
}

type fallback struct {
	primary   Source
	secondary Source
}

// Fallback reads from primary and, if it comes up short, continues into the
// rest of the buffer from secondary.
func Fallback(primary, secondary Source) Source {
	return &fallback{primary: primary, secondary: secondary}
}

func (f *fallback) Fill(b []byte) (int, error) {
	n, err := f.primary.Fill(b)
	if n > len(b) || n < 0 {
		n = 0
	}
	if n == len(b) {
		return n, nil
	}

	m, err2 := f.secondary.Fill(b[n:])
	if m > len(b)-n || m < 0 {
		m = 0
	}
	n += m
	if n == len(b) {
		return n, nil
	}
	if err2 != nil {
		return n, err2
	}
	if err != nil {
		return n, err
	}
	return n, fmt.Errorf("fallback: %w", ErrShort)
}

// Default is /dev/urandom backed by the kernel random interface.
func Default() Source {
	return Fallback(Device{Path: urandom}, Kernel{})
}

func DefaultSink() Sink {
	return Device{Path: urandom}
}
