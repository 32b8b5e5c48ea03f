package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		deriv, scan  string
		given        []string
		nl, echo     bool
		fold         bool
		step         float64
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times)")
	flag.BoolVarP(&nl, "lines", "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&fold, "fold", true, "evaluate constant subexpressions while parsing")
	flag.StringVar(&deriv, "deriv", "", "print the derivative with respect to this variable instead of the value")
	flag.StringVar(&scan, "scan", "", "tabulate over name=lo:hi:n instead of printing one value")
	flag.Float64Var(&step, "step", calc.DefaultStep, "step used to approximate derivatives")
	flag.Parse()

	ctx := calc.NewContext(calc.Step(step))
	for _, d := range given {
		nm, vl, err := splitdef(d)
		if err != nil {
			log.Fatal(err)
		}
		a, err := calc.Parse(vl, true)
		if err != nil {
			log.Fatal(errors.Wrapf(err, "setting %s", nm))
		}
		// Definitions may refer to earlier ones.
		r, err := ctx.Eval(a)
		if err != nil {
			log.Fatal(errors.Wrapf(err, "setting %s", nm))
		}
		ctx.Set(nm, r)
	}
	var sc *scanner
	if scan != "" {
		s, err := parsescan(scan)
		if err != nil {
			log.Fatal(err)
		}
		sc = &s
	}
	run := runner{ctx: ctx, verb: verb + "\n", deriv: deriv, scan: sc, fold: fold, echo: echo}

	if inname == "" && flag.NArg() == 0 && isatty.IsTerminal(os.Stdin.Fd()) {
		run.repl(os.Stdin, os.Stdout)
		return
	}

	var srcs []string
	if inname != "" || flag.NArg() == 0 {
		b, err := readin(inname)
		if err != nil {
			log.Fatal(err)
		}
		if nl {
			for _, line := range strings.Split(b, "\n") {
				if strings.TrimSpace(line) != "" {
					srcs = append(srcs, line)
				}
			}
		} else {
			srcs = append(srcs, b)
		}
	}
	srcs = append(srcs, flag.Args()...)

	var p []*calc.Expr
	for _, src := range srcs {
		a, err := calc.Parse(src, fold)
		if err != nil {
			log.Fatal(describe(src, err))
		}
		p = append(p, a)
	}
	failed := false
	for _, a := range p {
		if err := run.print(os.Stdout, a); err != nil {
			fmt.Println(err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// runner evaluates parsed expressions and prints their results.
type runner struct {
	ctx   *calc.Context
	verb  string
	deriv string
	scan  *scanner
	fold  bool
	echo  bool
}

func (r *runner) print(w io.Writer, a *calc.Expr) error {
	if r.echo {
		fmt.Fprintf(w, "%v : ", a)
	}
	if r.deriv != "" {
		a = calc.Derivative(a, r.deriv, nil)
	}
	if r.scan != nil {
		xs := calc.Points(r.scan.lo, r.scan.hi, r.scan.n)
		ys, err := a.Table(context.Background(), r.ctx, r.scan.name, xs)
		if err != nil {
			return err
		}
		if r.echo {
			fmt.Fprintln(w)
		}
		for i, x := range xs {
			fmt.Fprintf(w, "%g\t"+r.verb, x, ys[i])
		}
		return nil
	}
	v, err := r.ctx.Eval(a)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, r.verb, v)
	return nil
}

// repl reads and evaluates one expression per line until the input ends.
// A line of the form name=expr defines a variable instead.
func (r *runner) repl(in io.Reader, out io.Writer) {
	s := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !s.Scan() {
			break
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if nm, vl, err := splitdef(line); err == nil && isname(nm) {
			a, err := calc.Parse(vl, true)
			if err != nil {
				fmt.Fprintln(out, describe(vl, err))
				continue
			}
			v, err := r.ctx.Eval(a)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			r.ctx.Set(nm, v)
			continue
		}
		a, err := calc.Parse(line, r.fold)
		if err != nil {
			fmt.Fprintln(out, describe(line, err))
			continue
		}
		if err := r.print(out, a); err != nil {
			fmt.Fprintln(out, err)
		}
	}
	fmt.Fprintln(out)
	if err := s.Err(); err != nil {
		log.Fatal(err)
	}
}

// describe formats a parse error with a marker under its position.
func describe(src string, err error) error {
	var ie calc.InputError
	if !errors.As(err, &ie) || strings.Contains(src, "\n") {
		return err
	}
	return errors.Newf("%v\n%s\n%s^", err, src, strings.Repeat(" ", ie.Pos()-1))
}

func splitdef(s string) (name, value string, err error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return "", "", errors.Newf(`variable definitions must be "name=value", not %q`, s)
	}
	return strings.TrimSpace(d[0]), strings.TrimSpace(d[1]), nil
}

// isname reports whether s lexes as exactly one identifier.
func isname(s string) bool {
	toks, err := calc.Tokenize(s)
	return err == nil && len(toks) == 1 && toks[0].Kind == calc.TokenIdent
}

type scanner struct {
	name   string
	lo, hi float64
	n      int
}

// parsescan parses a scan range of the form name=lo:hi:n.
func parsescan(s string) (scanner, error) {
	nm, rg, err := splitdef(s)
	if err != nil {
		return scanner{}, err
	}
	f := strings.Split(rg, ":")
	if len(f) != 3 {
		return scanner{}, errors.Newf(`scan range must be "name=lo:hi:n", not %q`, s)
	}
	lo, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return scanner{}, errors.Wrap(err, "scan lower bound")
	}
	hi, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return scanner{}, errors.Wrap(err, "scan upper bound")
	}
	n, err := strconv.Atoi(f[2])
	if err != nil {
		return scanner{}, errors.Wrap(err, "scan point count")
	}
	if n <= 0 {
		return scanner{}, errors.Newf("scan point count (%d) must be positive", n)
	}
	return scanner{name: nm, lo: lo, hi: hi, n: n}, nil
}

func readin(inname string) (string, error) {
	var f *os.File
	switch inname {
	case "", "-":
		f = os.Stdin
	default:
		in, err := os.Open(inname)
		if err != nil {
			return "", err
		}
		defer in.Close()
		f = in
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", f.Name())
	}
	return string(b), nil
}
