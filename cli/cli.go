// Package cli holds the flags and startup logic common to every tabq
// command.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"syscall"

	"go.uber.org/multierr"
)

// version is set with -ldflags "-X github.com/brimdata/tabq/cli.version=...".
var version string

// Version returns the linker-provided version, the module version recorded
// in the build, or "unknown".
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "unknown"
}

// Initializer is a flag group that validates or prepares itself once
// flags are parsed.
type Initializer interface {
	Init() error
}

type Flags struct {
	showVersion bool
	profiler    profiler
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")
	fs.StringVar(&f.profiler.cpuPath, "cpuprofile", "", "write a CPU profile to this file")
	fs.StringVar(&f.profiler.memPath, "memprofile", "", "write an allocation profile to this file on exit")
}

// Init runs each initializer, reporting every failure, and starts
// profiling if requested.  The returned context is canceled by SIGINT,
// SIGPIPE, or SIGTERM.  The cleanup function stops profiling and must be
// called before exit.
func (f *Flags) Init(all ...Initializer) (context.Context, func(), error) {
	if f.showVersion {
		fmt.Printf("tabq %s (%s)\n", Version(), runtime.Version())
		os.Exit(0)
	}
	var err error
	for _, i := range all {
		err = multierr.Append(err, i.Init())
	}
	if err != nil {
		return nil, nil, err
	}
	if err := f.profiler.start(); err != nil {
		return nil, nil, err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGPIPE, syscall.SIGTERM)
	return &interruptedContext{ctx}, func() {
		cancel()
		if err := f.profiler.stop(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}, nil
}

// interruptedContext reports cancellation by signal as "interrupted".
type interruptedContext struct{ context.Context }

func (i *interruptedContext) Err() error {
	if err := i.Context.Err(); !errors.Is(err, context.Canceled) {
		return err
	}
	return errors.New("interrupted")
}

type profiler struct {
	cpuPath string
	memPath string
	cpu     *os.File
}

func (p *profiler) start() error {
	if p.cpuPath == "" {
		return nil
	}
	f, err := os.Create(p.cpuPath)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}
	p.cpu = f
	return nil
}

func (p *profiler) stop() error {
	var err error
	if p.cpu != nil {
		pprof.StopCPUProfile()
		err = p.cpu.Close()
		p.cpu = nil
	}
	if p.memPath != "" {
		err = multierr.Append(err, writeHeapProfile(p.memPath))
	}
	return err
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	return multierr.Append(pprof.Lookup("allocs").WriteTo(f, 0), f.Close())
}
