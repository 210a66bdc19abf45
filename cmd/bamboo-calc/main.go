// Command bamboo-calc evaluates bamboo dimension expressions.
//
// Each argument is one expression. With no arguments, or with -in, each line
// of the input is one expression. Percentages are taken of -basis.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/safinsingh/bamboo/calc"
	"github.com/safinsingh/bamboo/logging"
)

func main() {
	log := logging.New("bamboo-calc")
	var (
		inname, verb string
		basis        float64
		prec         int
		echo, exact  bool
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Float64Var(&basis, "basis", 100, "value that percentages are taken of")
	flag.IntVar(&prec, "p", 64, "precision of exact calculations in bits")
	flag.BoolVar(&echo, "echo", false, "print the canonical form of each expression")
	flag.BoolVar(&exact, "exact", false, "also evaluate in arbitrary precision")
	flag.Parse()
	if prec <= 0 {
		log.Error("precision must be positive", "p", prec)
		os.Exit(2)
	}

	srcs, err := readInput(inname, flag.NArg() == 0)
	if err != nil {
		log.Error("failed to read input", "error", err)
		os.Exit(1)
	}
	srcs = append(srcs, flag.Args()...)

	verb += "\n"
	bad := false
	for _, src := range srcs {
		c, err := calc.Parse(src)
		if err != nil {
			fmt.Printf("%q: %v\n", src, err)
			bad = true
			continue
		}
		if echo {
			fmt.Printf("%v : ", c)
		}
		fmt.Printf(verb, c.Evaluate(float32(basis)))
		if exact {
			r, err := c.EvaluateExact(big.NewFloat(basis), uint(prec))
			if err != nil {
				fmt.Printf("\texact: %v\n", err)
				continue
			}
			fmt.Printf("\texact: "+verb, r)
		}
	}
	if bad {
		os.Exit(1)
	}
}

// readInput returns the expressions in the named file, or in stdin if the
// name is "-" or std is set and there is no name.
func readInput(inname string, std bool) ([]string, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return lines(f)
	case inname == "-", std:
		return lines(os.Stdin)
	}
	return nil, nil
}

// lines returns the non-blank lines of r.
func lines(r io.Reader) ([]string, error) {
	var l []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if t := strings.TrimSpace(s.Text()); t != "" {
			l = append(l, t)
		}
	}
	return l, s.Err()
}
