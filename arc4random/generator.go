// Package arc4random is a self-reseeding arc4 word generator in the manner of
// the libc arc4random(3) family.
//
// Wall-clock time is folded into every reseed, so output can never be
// reproduced. Do not use it for keys or encryption.
package arc4random

import (
	"encoding/binary"
	"os"
	"sync"
	"time"

	"github.com/fysac/arc4random/arc4"
	"github.com/fysac/arc4random/entropy"
	"github.com/sirupsen/logrus"
)

const (
	// Words handed out between reseeds.
	DefaultBudget = 400000

	// Layout of the reseed sample: seconds, microseconds, identity,
	// then system entropy up to sampleSize.
	sampleSize = 128
	headerSize = 20

	// Early keystream is biased, so 256 words are thrown away after mixing.
	// See http://www.wisdom.weizmann.ac.il/~itsik/RC4/Papers/Rc4_ksa.ps
	initialDiscard = 256 * 4

	feedbackSize = 16
)

var ErrEmptyInput = arc4.ErrEmptyInput

type State int

const (
	Unseeded State = iota
	Seeded
	Stale
)

func (s State) String() string {
	switch s {
	case Unseeded:
		return "unseeded"
	case Seeded:
		return "seeded"
	case Stale:
		return "stale"
	}
	return "unknown"
}

type Config struct {
	// Source supplies system entropy at every reseed.
	Source entropy.Source

	// Sink receives a few bytes of fresh output after every reseed.
	// Leave nil to skip the write-back.
	Sink entropy.Sink

	// Identity reports the current execution context. A change since the
	// last reseed forces a new one, e.g. after a fork.
	Identity func() int

	Now func() time.Time

	// Budget is the number of words produced per reseed.
	Budget int

	Logger logrus.FieldLogger
}

// DefaultConfig reads /dev/urandom (falling back to the kernel interface),
// writes back to /dev/urandom and keys on the process id.
func DefaultConfig() Config {
	return Config{
		Source:   entropy.Default(),
		Sink:     entropy.DefaultSink(),
		Identity: os.Getpid,
		Now:      time.Now,
		Budget:   DefaultBudget,
		Logger:   logrus.StandardLogger(),
	}
}

// withDefaults fills unset fields. A nil Sink stays nil.
func (c Config) withDefaults() Config {
	if c.Source == nil {
		c.Source = entropy.Default()
	}
	if c.Identity == nil {
		c.Identity = os.Getpid
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Budget <= 0 {
		c.Budget = DefaultBudget
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}

// Generator is safe for concurrent use. The zero value is ready to use and
// seeds itself from DefaultConfig on first access.
type Generator struct {
	mu sync.Mutex

	conf       Config
	configured bool

	rs      arc4.Stream
	seeded  bool
	owner   int
	count   int
	reseeds uint64
}

// New returns a Generator that has already been seeded once.
func New(c Config) *Generator {
	g := &Generator{conf: c.withDefaults(), configured: true}
	g.stir()
	return g
}

func (g *Generator) configure() {
	if !g.configured {
		g.conf = DefaultConfig()
		g.configured = true
	}
}

func (g *Generator) stir() {
	if !g.seeded {
		g.rs.Init()
		g.seeded = true
	}

	var rdat [sampleSize]byte
	now := g.conf.Now()
	pid := g.conf.Identity()
	binary.LittleEndian.PutUint64(rdat[0:8], uint64(now.Unix()))
	binary.LittleEndian.PutUint64(rdat[8:16], uint64(now.Nanosecond()/1000))
	binary.LittleEndian.PutUint32(rdat[16:headerSize], uint32(pid))

	// Whatever could not be read stays zero; time and identity are still mixed.
	rnd := rdat[headerSize:]
	if n, err := g.conf.Source.Fill(rnd); err != nil {
		g.conf.Logger.WithFields(logrus.Fields{
			"read": n,
			"want": len(rnd),
		}).WithError(err).Warn("reseeding with incomplete system entropy")
	}

	// rdat is never empty
	_ = g.rs.AddRandom(rdat[:])

	g.rs.Discard(initialDiscard)
	g.rs.Discard(int(g.rs.Byte()&0x0f) + 1)

	if g.conf.Sink != nil {
		fb := make([]byte, feedbackSize)
		g.rs.Read(fb)
		if err := g.conf.Sink.Feed(fb); err != nil {
			g.conf.Logger.WithError(err).Debug("entropy write-back failed")
		}
		g.rs.Byte()
	}

	g.count = g.conf.Budget
	g.owner = pid
	g.reseeds++
}

func (g *Generator) state() State {
	if !g.seeded {
		return Unseeded
	}
	if g.count <= 0 || g.owner != g.conf.Identity() {
		return Stale
	}
	return Seeded
}

// word must be called with g.mu held.
func (g *Generator) word() uint32 {
	g.configure()
	if g.state() != Seeded {
		g.stir()
	}
	g.count--
	return g.rs.Word()
}

func (g *Generator) Uint32() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.word()
}

// Read fills p from successive words, most significant byte first. Every
// started word is charged against the budget. It never fails.
func (g *Generator) Read(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var buf [4]byte
	for off := 0; off < len(p); off += 4 {
		binary.BigEndian.PutUint32(buf[:], g.word())
		copy(p[off:], buf[:])
	}
	return len(p), nil
}

// Uniform returns a value in [0, upper) without modulo bias. It returns 0
// when upper < 2.
func (g *Generator) Uniform(upper uint32) uint32 {
	if upper < 2 {
		return 0
	}

	// 2**32 % upper, the count of low values that would skew the result.
	threshold := -upper % upper

	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		if r := g.word(); r >= threshold {
			return r % upper
		}
	}
}

// AddEntropy mixes b straight into the live state. The budget is not reset.
// An empty b is rejected before anything else happens.
func (g *Generator) AddEntropy(b []byte) error {
	if len(b) == 0 {
		return ErrEmptyInput
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.configure()
	if !g.seeded {
		g.stir()
	}
	return g.rs.AddRandom(b)
}

// Stir reseeds unconditionally.
func (g *Generator) Stir() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configure()
	g.stir()
}

func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configure()
	return g.state()
}

type Stats struct {
	State     State
	Budget    int
	Remaining int
	Reseeds   uint64
	Owner     int
}

func (g *Generator) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configure()

	st := Stats{
		State:   g.state(),
		Budget:  g.conf.Budget,
		Reseeds: g.reseeds,
		Owner:   g.owner,
	}
	if g.count > 0 {
		st.Remaining = g.count
	}
	return st
}
