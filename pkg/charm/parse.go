package charm

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// parse walks args down the command tree from spec, creating an instance
// and parsing flags at each level, and stops at the first argument that
// does not name a subcommand.  The path built so far is returned even on
// error so that help can be shown for it.
func parse(spec *Spec, args []string, parent Command) (path, []string, error) {
	var p path
	for {
		inst, err := newInstance(parent, spec)
		if err != nil {
			return p, nil, err
		}
		p = append(p, inst)
		rest, err := parseFlags(inst.flags, args)
		if err != nil {
			return p, nil, err
		}
		if len(rest) == 0 {
			return p, rest, nil
		}
		if rest[0] == "help" {
			return p, nil, NeedHelp
		}
		child := spec.lookupSub(rest[0])
		if child == nil {
			return p, rest, nil
		}
		spec, args, parent = child, rest[1:], inst.command
	}
}

func parseFlags(flags *flag.FlagSet, args []string) ([]string, error) {
	flags.SetOutput(io.Discard)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, NeedHelp
		}
		return nil, fmt.Errorf("%s: %w", flags.Name(), err)
	}
	return flags.Args(), nil
}

// path is the chain of command instances from the root to the command
// being run.
type path []*instance

// UsageError reports a command that needs a subcommand it was not given
// or was given an unknown one.
type UsageError struct {
	Path     string
	Arg      string
	Commands []string
}

func (u *UsageError) Error() string {
	if u.Arg == "" {
		return fmt.Sprintf("%s: missing command (one of: %s)", u.Path, strings.Join(u.Commands, ", "))
	}
	return fmt.Sprintf("%s: unknown command %q (one of: %s)", u.Path, u.Arg, strings.Join(u.Commands, ", "))
}

func (p path) run(args []string) error {
	err := p.last().command.Run(args)
	if !errors.Is(err, ErrNoRun) {
		return err
	}
	u := &UsageError{Path: p.pathname(), Commands: p.subCommands()}
	if len(args) > 0 {
		u.Arg = args[0]
	}
	return u
}

func (p path) last() *instance {
	return p[len(p)-1]
}

func (p path) pathname() string {
	var b strings.Builder
	for k, inst := range p {
		if k > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(inst.spec.Name)
	}
	return b.String()
}

func (p path) subCommands() []string {
	var names []string
	for _, child := range p.last().spec.children {
		if !child.Hidden {
			names = append(names, child.Name)
		}
	}
	return names
}
