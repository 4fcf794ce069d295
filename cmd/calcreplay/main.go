// Command calcreplay feeds a key script through the accumulator and prints the
// readouts, without a window or the task system.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"abacus/accum"
)

func main() {
	var (
		inPath  = flag.String("in", "-", "Key script to replay (- for stdin).")
		outPath = flag.String("out", "-", "Output file (- for stdout).")
		mode    = flag.String("mode", "echo", "echo|final.")
		strict  = flag.Bool("strict", false, "Ignore a new entry followed by = when no operator is pending.")
	)
	flag.Parse()

	m, err := parseMode(*mode)
	if err != nil {
		fatalf("%v\nusage: calcreplay [-in keys.txt] [-out out.txt] [-mode echo|final] [-strict]", err)
	}
	policy := accum.PolicySeed
	if *strict {
		policy = accum.PolicyStrict
	}

	in := io.Reader(os.Stdin)
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			fatalf("open: %v", err)
		}
		defer f.Close()
		in = f
	}
	out := io.Writer(os.Stdout)
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatalf("create: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := replay(in, out, m, policy); err != nil {
		fatalf("replay: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

type replayMode uint8

const (
	modeEcho replayMode = iota
	modeFinal
)

func parseMode(s string) (replayMode, error) {
	switch strings.ToLower(s) {
	case "echo":
		return modeEcho, nil
	case "final":
		return modeFinal, nil
	default:
		return 0, fmt.Errorf("unknown mode: %s", s)
	}
}

// replay applies every key in r. In echo mode each readout is written as a
// line; in final mode only the last one is. A rejected key shows "Error" and
// leaves the accumulator as it was.
func replay(r io.Reader, w io.Writer, mode replayMode, policy accum.Policy) error {
	a := accum.New(policy)
	bw := bufio.NewWriter(w)
	br := bufio.NewReader(r)

	last := ""
	for {
		ch, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) || (err == nil && accum.IsQuitRune(ch)) {
			break
		}
		if err != nil {
			return err
		}
		cmd, ok := accum.CommandForRune(ch)
		if !ok {
			continue
		}
		if err := a.Apply(cmd); err != nil {
			if !errors.Is(err, accum.ErrMalformedInput) {
				return err
			}
			last = "Error"
		} else {
			last = a.Render()
		}
		if mode == modeEcho {
			if _, err := fmt.Fprintln(bw, last); err != nil {
				return err
			}
		}
	}
	if mode == modeFinal {
		if _, err := fmt.Fprintln(bw, last); err != nil {
			return err
		}
	}
	return bw.Flush()
}
