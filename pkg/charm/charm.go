// Package charm is a minimalist CLI framework inspired by cobra and urfave/cli.
package charm

import (
	"errors"
	"flag"
	"os"
)

var (
	NeedHelp = errors.New("help")
	ErrNoRun = errors.New("no run method")
)

// Constructor builds a command from its parent and registers the
// command's flags in f.
type Constructor func(parent Command, f *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden hides this command from help.
	Hidden bool
	// HiddenFlags is a comma-separated list of flags left out of help.
	HiddenFlags string
	// RedactedFlags is a comma-separated list of flags whose default
	// values are left out of help.
	RedactedFlags string
	children      []*Spec
	parent        *Spec
}

func (s *Spec) Add(child *Spec) {
	s.children = append(s.children, child)
	child.parent = s
}

func (s *Spec) Root() *Spec {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

func (s *Spec) lookupSub(name string) *Spec {
	for _, child := range s.children {
		if name == child.Name {
			return child
		}
	}
	return nil
}

// ExecRoot parses args against the command tree rooted at s and runs the
// selected command.  If parsing or the command asks for help, usage for
// the deepest command found is written to stderr instead.
func (s *Spec) ExecRoot(args []string) error {
	p, rest, err := parse(s, args, nil)
	if err == nil {
		err = p.run(rest)
	}
	if errors.Is(err, NeedHelp) && len(p) > 0 {
		p.help(os.Stderr)
		return nil
	}
	return err
}
