package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	calc "github.com/zephyrtronium/calculation"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname, histname string
		with                      [][2]string
		nl, echo, verbose, consts bool
		symbols                   bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML or JSON session configuration file")
	flag.StringVar(&histname, "history", "", "SQLite database to record calculations in")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&nl, "n", false, "calculate separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&verbose, "v", false, "log every calculation")
	flag.BoolVar(&consts, "constants", false, "define pi, e, ln2, and ln10")
	flag.BoolVar(&symbols, "symbols", true, "accept ×, ÷, and − as operators")
	flag.Parse()

	var cfg calc.Config
	if cfgname != "" {
		c, err := calc.LoadConfig(cfgname)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if histname != "" {
		cfg.History = histname
	}
	cfg.Constants = cfg.Constants || consts
	cfg.Symbols = cfg.Symbols || symbols

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	opts = append(opts, calc.WithLogger(logger))
	for _, d := range with {
		nm, vl := d[0], d[1]
		if !calc.IsIdentifier(nm) {
			log.Fatalf("setting %s: invalid variable name", nm)
		}
		r, err := calc.Eval(vl, nil)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		opts = append(opts, calc.SetVar(nm, r))
	}
	sess := calc.NewSession(opts...)
	defer sess.Close()

	var exprs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		in, err := readExprs(f, nl)
		if err != nil {
			log.Fatal(err)
		}
		exprs = append(exprs, in...)
	}
	exprs = append(exprs, flag.Args()...)

	failed := false
	for _, ex := range exprs {
		if echo {
			if a, err := calc.Compile(ex); err == nil {
				fmt.Printf("%v : ", a)
			}
		}
		r := sess.Calculate(ex)
		if r == calc.ErrorResult {
			failed = true
		}
		fmt.Println(r)
	}
	if failed {
		sess.Close()
		os.Exit(1)
	}
}

// readExprs reads expressions from r. With lines, each non-blank line is an
// expression; otherwise the entire input is one expression.
func readExprs(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	var exprs []string
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		if strings.TrimSpace(scan.Text()) == "" {
			continue
		}
		exprs = append(exprs, scan.Text())
	}
	return exprs, scan.Err()
}

func infile(inname string, std bool) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
