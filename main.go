package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fysac/arc4random/arc4random"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func main() {
	l := log.New(os.Stderr, "", 0)

	count := flag.Int("n", 1, "number of words to print")
	hex := flag.Bool("hex", false, "print words as 0x-prefixed hex")
	seedFile := flag.String("seed-file", "", "file whose contents are mixed in before output")
	budget := flag.Int("budget", arc4random.DefaultBudget, "words produced between reseeds")
	noFeedback := flag.Bool("no-feedback", false, "do not write output back to the system entropy pool")
	stats := flag.Bool("stats", false, "print generator state as json after output")
	flag.Parse()

	if *count < 0 {
		l.Println("-n must not be negative")
		flag.Usage()
		os.Exit(1)
	}

	conf := arc4random.DefaultConfig()
	conf.Budget = *budget
	if *noFeedback {
		conf.Sink = nil
	}
	g := arc4random.New(conf)

	if *seedFile != "" {
		b, err := os.ReadFile(*seedFile)
		if err != nil {
			l.Fatal(err)
		}
		if err := g.AddEntropy(b); err != nil {
			l.Fatalf("%v: %v\n", *seedFile, err)
		}
	}

	for i := 0; i < *count; i++ {
		if *hex {
			fmt.Printf("0x%08x\n", g.Uint32())
		} else {
			fmt.Println(g.Uint32())
		}
	}

	if *stats {
		if err := writeStats(os.Stdout, g.Stats()); err != nil {
			l.Fatal(err)
		}
	}
}

func writeStats(w io.Writer, st arc4random.Stats) error {
	// Keep field order stable for people diffing the output.
	m := orderedmap.New[string, any]()
	m.Set("state", st.State.String())
	m.Set("budget", st.Budget)
	m.Set("remaining", st.Remaining)
	m.Set("reseeds", st.Reseeds)
	m.Set("owner", st.Owner)

	b, err := m.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, b, "", "\t"); err != nil {
		return err
	}
	buf.WriteString("\n")
	_, err = buf.WriteTo(w)
	return err
}
