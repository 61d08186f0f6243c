package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/zephyrtronium/texcalc"
)

// prompter is the part of *readline.Instance the REPL uses.
type prompter interface {
	SetPrompt(string)
	Readline() (string, error)
}

// repl reads expressions and their parameters until rl returns an error.
func repl(rl prompter, out io.Writer, verb string, opts []texcalc.Option) {
	for {
		rl.SetPrompt("Expression > ")
		src, err := rl.Readline()
		if err != nil {
			return
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		fn, err := texcalc.Compile(src, opts...)
		if err != nil {
			fmt.Fprintln(out, highlight(src, err))
			continue
		}
		var args []float64
		if p := fn.Params(); len(p) != 0 {
			fmt.Fprintf(out, "parameters: %s\n", strings.Join(p, ", "))
			rl.SetPrompt("Parameters > ")
			line, err := rl.Readline()
			if err != nil {
				return
			}
			args, err = parseArgs(line, opts)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
		}
		r, err := fn.Call(args...)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintf(out, verb, r)
	}
}

// parseArgs parses a comma-separated list of constant expressions.
func parseArgs(line string, opts []texcalc.Option) ([]float64, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	fields := strings.Split(line, ",")
	args := make([]float64, len(fields))
	for i, f := range fields {
		r, err := constant(strings.TrimSpace(f), opts)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args[i] = r
	}
	return args, nil
}
