// Package fixpoint solves systems of equations over value-set domain values
// by chaotic iteration, switching from join to widening so that iteration
// terminates.
package fixpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/cs-au-dk/vsa/analysis/vsa"
	"github.com/cs-au-dk/vsa/utils"
	"github.com/cs-au-dk/vsa/utils/indenter"
	"github.com/cs-au-dk/vsa/utils/worklist"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrNoConvergence is returned when solving exceeds the step budget.
	ErrNoConvergence = errors.New("no convergence within step budget")
	// ErrUnknownVariable is returned for references to undefined variables.
	ErrUnknownVariable = errors.New("unknown variable")
)

type (
	// Env binds every variable of a system to its current value.
	Env map[string]vsa.Value

	// Equation computes the next value of a variable from the environment.
	Equation func(env Env) (vsa.Value, error)

	variable struct {
		name string
		bits uint
		eq   Equation
	}

	// System is a set of variables, each defined by an equation over the others.
	System struct {
		vars       map[string]*variable
		order      []string
		dependents map[string][]string
		deps       map[string][]string
	}

	// Options control the iteration strategy.
	Options struct {
		// WidenAfter is the number of updates of a variable that are joined
		// before further updates are widened.
		WidenAfter int
		// MaxSteps bounds the total number of equation evaluations.
		MaxSteps int
	}
)

// DefaultOptions widens after three joins.
func DefaultOptions() Options {
	return Options{WidenAfter: 3, MaxSteps: 10000}
}

// Lookup retrieves the value of a variable.
func (env Env) Lookup(name string) (vsa.Value, error) {
	if v, ok := env[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownVariable, name)
}

func (env Env) String() string {
	names := maps.Keys(env)
	slices.Sort(names)

	items := make([]string, 0, len(names))
	for _, name := range names {
		items = append(items, name+" ↦ "+env[name].String())
	}
	return indenter.Nest("[", "]", items...)
}

func NewSystem() *System {
	return &System{
		vars:       make(map[string]*variable),
		dependents: make(map[string][]string),
		deps:       make(map[string][]string),
	}
}

// Define adds a variable of the given width, computed by eq from the
// variables in deps. Redefining a variable replaces its equation.
func (s *System) Define(name string, bits uint, eq Equation, deps ...string) {
	if _, found := s.vars[name]; !found {
		s.order = append(s.order, name)
	}
	s.vars[name] = &variable{name, bits, eq}
	s.deps[name] = deps
}

func (s *System) link() error {
	s.dependents = make(map[string][]string)
	for _, name := range s.order {
		for _, dep := range s.deps[name] {
			if _, found := s.vars[dep]; !found {
				return fmt.Errorf("%w %q used by %q", ErrUnknownVariable, dep, name)
			}
			s.dependents[dep] = append(s.dependents[dep], name)
		}
	}
	return nil
}

// Solve computes a post-fixpoint of the system. Every variable starts as the
// empty value of its width.
func (s *System) Solve(opts Options) (Env, error) {
	if err := s.link(); err != nil {
		return nil, err
	}
	if utils.Opts().Verbose() {
		defer utils.TimeTrack(time.Now(), "Fixpoint")
	}

	env := make(Env, len(s.vars))
	for name, v := range s.vars {
		env[name] = vsa.Elements().Empty(v.bits)
	}

	var (
		updates = make(map[string]int)
		steps   = 0
		err     error
	)

	W := worklist.Empty[string]()
	for _, name := range s.order {
		W.Add(name)
	}
	W.ProcessUntil(func(name string, add func(string)) bool {
		if steps++; steps > opts.MaxSteps {
			err = fmt.Errorf("%w: %d steps", ErrNoConvergence, opts.MaxSteps)
			return false
		}

		v := s.vars[name]
		val, e := v.eq(env)
		if e != nil {
			err = fmt.Errorf("evaluating %s: %w", name, e)
			return false
		}

		old := env[name]
		var next vsa.Value
		if updates[name] < opts.WidenAfter {
			next, e = old.Union(val)
		} else {
			next, e = old.Widen(val)
		}
		if e != nil {
			err = fmt.Errorf("updating %s: %w", name, e)
			return false
		}

		if vsa.Identical(old, next) {
			return true
		}
		utils.VerbosePrint("%s: %s ↦ %s\n", name, old, next)

		env[name] = next
		updates[name]++
		for _, dep := range s.dependents[name] {
			add(dep)
		}
		return true
	})

	if err != nil {
		return nil, err
	}
	utils.Opts().OnVerbose(func() {
		fmt.Printf("Solved %d variables in %d steps:\n%s\n", len(env), steps, env)
	})
	return env, nil
}
