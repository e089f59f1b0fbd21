package main

import (
	"fmt"
	"os"

	"github.com/brimdata/tabq/cmd/tabq/query"
	"github.com/brimdata/tabq/cmd/tabq/root"
	"github.com/brimdata/tabq/cmd/tabq/run"
)

func main() {
	tabq := root.Tabq
	tabq.Add(query.Cmd)
	tabq.Add(run.Cmd)
	if err := tabq.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
