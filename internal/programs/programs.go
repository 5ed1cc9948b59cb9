// Package programs registers the fixture programs by the class names they
// carry in the java-compiler test tree, with the bounds their main methods
// hardcode.
package programs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"javafixtures/internal/samples"
)

// ErrUnknownProgram is returned by Lookup.
var ErrUnknownProgram = errors.New("unknown program")

// Bounds is an inclusive integer range.
type Bounds struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

func (b Bounds) String() string {
	return fmt.Sprintf("%d..%d", b.Start, b.End)
}

// Options overrides a program's defaults for a single run.
type Options struct {
	Start *int
	End   *int
	Mode  samples.Mode
}

// Program is one fixture: a routine plus the bounds its entry point uses.
type Program struct {
	Name        string
	Source      string
	Description string
	Defaults    Bounds
	// UsesMode is true when the routine's output depends on Options.Mode.
	UsesMode bool

	run func(w io.Writer, b Bounds, mode samples.Mode) error
}

// Bounds resolves the effective bounds for opts.
func (p *Program) Bounds(opts Options) Bounds {
	b := p.Defaults
	if opts.Start != nil {
		b.Start = *opts.Start
	}
	if opts.End != nil {
		b.End = *opts.End
	}
	return b
}

// Run writes the program's output to w. A context that is already done
// prevents the run from starting; once started, a run completes.
func (p *Program) Run(ctx context.Context, w io.Writer, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := opts.Mode
	if mode == "" {
		mode = samples.ModeTrial
	}
	if err := p.run(w, p.Bounds(opts), mode); err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	return nil
}

var registry = map[string]*Program{
	"test": {
		Name:        "Test",
		Source:      "Test.java",
		Description: "FizzBuzz over the range",
		Defaults:    Bounds{Start: 1, End: 100},
		run: func(w io.Writer, b Bounds, _ samples.Mode) error {
			return samples.FizzBuzz(w, b.Start, b.End)
		},
	},
	"primes": {
		Name:        "Primes",
		Source:      "tests/Primes.java",
		Description: "header line, then each prime in the range",
		Defaults:    Bounds{Start: 1, End: 120},
		UsesMode:    true,
		run: func(w io.Writer, b Bounds, mode samples.Mode) error {
			return samples.PrintPrimes(w, b.Start, b.End, mode)
		},
	},
}

// Lookup finds a program by name, ignoring case.
func Lookup(name string) (*Program, error) {
	p, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownProgram, name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// All returns every registered program sorted by name.
func All() []*Program {
	out := make([]*Program, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered program names, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}
