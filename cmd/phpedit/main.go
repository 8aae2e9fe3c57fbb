package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/phpedit/cmds"
	"github.com/reusee/phpedit/modes"
)

func main() {
	cmds.Execute(os.Args[1:])
	if len(actions) == 0 {
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(2)
	}

	mode := modes.ForProduction()
	if *devMode {
		mode = modes.ForDevelopment()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ok := true
	dscope.New(
		new(Module),
		mode,
	).Call(func(
		run Run,
	) {
		for _, a := range actions {
			if !run(ctx, a, os.Stdout, os.Stderr) {
				ok = false
			}
		}
	})

	if !ok {
		cancel()
		os.Exit(1)
	}
}
