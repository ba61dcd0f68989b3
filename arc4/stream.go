// Arc4 keystream engine used by arc4random(3)
// Derived from the OpenBSD libc arc4random.c

package arc4

import "errors"

var ErrEmptyInput = errors.New("arc4: empty entropy input")

// Stream is a 256-cell permutation plus its two cursors.
// The zero value is not a valid permutation; call Init or use New.
type Stream struct {
	i uint8
	j uint8
	s [256]byte
}

func New() *Stream {
	var as Stream
	as.Init()
	return &as
}

func (as *Stream) Init() {
	for n := 0; n < 256; n++ {
		as.s[n] = byte(n)
	}
	as.i = 0
	as.j = 0
}

// AddRandom runs the key schedule over dat, repeating it to cover all 256
// cells. The first round operates on the current i.
func (as *Stream) AddRandom(dat []byte) error {
	if len(dat) == 0 {
		return ErrEmptyInput
	}

	as.i--
	for n := 0; n < 256; n++ {
		as.i++
		si := as.s[as.i]
		as.j += si + dat[n%len(dat)]
		as.s[as.i] = as.s[as.j]
		as.s[as.j] = si
	}
	as.j = as.i
	return nil
}

func (as *Stream) Byte() byte {
	as.i++
	si := as.s[as.i]
	as.j += si
	sj := as.s[as.j]
	as.s[as.i] = sj
	as.s[as.j] = si
	return as.s[si+sj]
}

// Word packs the next four bytes most significant first.
func (as *Stream) Word() uint32 {
	val := uint32(as.Byte()) << 24
	val |= uint32(as.Byte()) << 16
	val |= uint32(as.Byte()) << 8
	val |= uint32(as.Byte())
	return val
}

func (as *Stream) Discard(n int) {
	for ; n > 0; n-- {
		as.Byte()
	}
}

// Read fills p with keystream. It never fails.
func (as *Stream) Read(p []byte) (int, error) {
	for k := range p {
		p[k] = as.Byte()
	}
	return len(p), nil
}

func (as *Stream) Permutation() [256]byte {
	return as.s
}

func (as *Stream) Cursors() (i, j uint8) {
	return as.i, as.j
}
