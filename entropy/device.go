package entropy

import (
	"fmt"
	"io"
	"os"
)

// Device is a character device such as /dev/urandom. Each Fill opens the
// device, reads once and closes it again.
type Device struct {
	Path string
}

func (d Device) Fill(b []byte) (int, error) {
	f, err := os.Open(d.Path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", d.Path, ErrUnavailable, err)
	}
	defer f.Close()

	n, err := io.ReadFull(f, b)
	if n == len(b) {
		return n, nil
	}
	if n == 0 {
		return 0, fmt.Errorf("%s: %w: %v", d.Path, ErrUnavailable, err)
	}
	return n, fmt.Errorf("%s: %w (%v of %v bytes)", d.Path, ErrShort, n, len(b))
}

// Feed writes b back to the device. Some platforms mix such writes into
// their pool; others ignore or refuse them.
func (d Device) Feed(b []byte) error {
	f, err := os.OpenFile(d.Path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
