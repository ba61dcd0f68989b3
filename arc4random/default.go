package arc4random

// std backs the package-level functions. It seeds itself on first use.
var std Generator

// Uint32 returns a random word from the process-wide generator.
func Uint32() uint32 {
	return std.Uint32()
}

func Read(p []byte) (int, error) {
	return std.Read(p)
}

func Uniform(upper uint32) uint32 {
	return std.Uniform(upper)
}

func AddEntropy(b []byte) error {
	return std.AddEntropy(b)
}

func Stir() {
	std.Stir()
}
