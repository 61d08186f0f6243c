package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lmorg/readline"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/texcalc"
)

func main() {
	var (
		inname, verb, varsname string
		with                   [][2]string
		echo, ll, verbose, rl  bool
		maxdepth               int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.StringVar(&varsname, "vars", "", "YAML file mapping variable names to values")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&ll, "llvm", false, "print LLVM IR instead of evaluating")
	flag.BoolVar(&verbose, "v", false, "log compilation details to stderr")
	flag.BoolVar(&rl, "i", false, "read expressions and parameters interactively")
	flag.IntVar(&maxdepth, "depth", texcalc.DefaultMaxDepth, "maximum nesting depth")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	}
	if maxdepth <= 0 {
		log.Fatal().Int("depth", maxdepth).Msg("nesting depth must be positive")
	}
	opts := []texcalc.Option{texcalc.Logger(log), texcalc.MaxDepth(maxdepth)}

	vars := make(map[string]float64)
	if varsname != "" {
		f, err := os.Open(varsname)
		if err != nil {
			log.Fatal().Err(err).Msg("opening variables")
		}
		err = loadVars(f, vars)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", varsname).Msg("reading variables")
		}
	}
	for _, d := range with {
		nm, vl := d[0], d[1]
		if !validName(nm) {
			log.Fatal().Str("name", nm).Msg("variable names must be single letters")
		}
		r, err := constant(vl, opts)
		if err != nil {
			log.Fatal().Err(err).Str("name", nm).Msg("setting variable")
		}
		vars[nm] = r
	}

	verb += "\n"
	if rl {
		r := readline.NewInstance()
		repl(r, os.Stdout, verb, opts)
		return
	}

	var srcs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal().Err(err).Msg("opening input")
	}
	if f != nil {
		s, err := lines(f)
		if err != nil {
			log.Fatal().Err(err).Msg("reading input")
		}
		srcs = s
	}
	srcs = append(srcs, flag.Args()...)

	status := 0
	for _, src := range srcs {
		fn, err := texcalc.Compile(src, opts...)
		if err != nil {
			fmt.Fprintln(os.Stderr, highlight(src, err))
			status = 1
			continue
		}
		if ll {
			name := fn.Name()
			if name == "" {
				name = "f"
			}
			fmt.Print(fn.LLVM(name))
			continue
		}
		if echo {
			fmt.Printf("%v : ", fn)
		}
		args, err := bind(fn.Params(), vars)
		if err != nil {
			fmt.Println(err)
			status = 1
			continue
		}
		r, _ := fn.Call(args...)
		fmt.Printf(verb, r)
	}
	os.Exit(status)
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}

// lines reads non-blank lines from r and closes it.
func lines(r io.ReadCloser) ([]string, error) {
	defer r.Close()
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			srcs = append(srcs, s)
		}
	}
	return srcs, sc.Err()
}

// validName returns whether s names a variable.
func validName(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// constant evaluates an expression that has no parameters.
func constant(src string, opts []texcalc.Option) (float64, error) {
	fn, err := texcalc.Compile(src, opts...)
	if err != nil {
		return 0, err
	}
	if p := fn.Params(); len(p) != 0 {
		return 0, fmt.Errorf("%q is not a constant: uses %s", src, strings.Join(p, ", "))
	}
	return fn.Eval(nil), nil
}

// bind gets the values of the named variables.
func bind(params []string, vars map[string]float64) ([]float64, error) {
	var missing []string
	args := make([]float64, len(params))
	for i, p := range params {
		v, ok := vars[p]
		if !ok {
			missing = append(missing, p)
			continue
		}
		args[i] = v
	}
	if missing != nil {
		return nil, fmt.Errorf("no value for %s", strings.Join(missing, ", "))
	}
	return args, nil
}

// highlight formats an error with a line marking its location in src, when
// the error has one.
func highlight(src string, err error) string {
	var ie texcalc.InputError
	if !errors.As(err, &ie) {
		return err.Error()
	}
	w := ie.Width()
	if w < 1 {
		w = 1
	}
	s := src + "\n" + strings.Repeat(" ", ie.Pos()) + strings.Repeat("^", w) + "\n" + err.Error()
	if cmd := suggest(err); cmd != "" {
		s += "\ndid you mean " + cmd + "?"
	}
	return s
}
