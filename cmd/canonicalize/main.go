// Command canonicalize reads raw position titles from stdin, one per line,
// and prints their canonical forms. It is used to preview rule changes
// against a sample of real titles.
//
// Usage:
//
//	canonicalize [--explain] < titles.txt
//
// Exit codes: 0 = success, 1 = I/O error.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/heartmarshall/vacancy-normalizer/internal/position"
)

func main() {
	explain := flag.Bool("explain", false, "print the rules that fired for each title")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, position.Default(), *explain); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, c *position.Canonicalizer, explain bool) error {
	sc := bufio.NewScanner(in)
	w := bufio.NewWriter(out)

	for sc.Scan() {
		raw := sc.Text()
		if !explain {
			fmt.Fprintf(w, "%s\t%s\n", raw, c.Canonicalize(raw))
			continue
		}
		canonical, fired := c.Explain(raw)
		fmt.Fprintf(w, "%s\t%s\n", raw, canonical)
		for _, f := range fired {
			fmt.Fprintf(w, "\t%s\n", f)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
