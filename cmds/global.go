package cmds

import (
	"fmt"
	"os"
)

// GlobalExecutor holds the commands defined by package initializers.
var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs args against GlobalExecutor, exiting on failure.
func Execute(args []string) {
	if err := GlobalExecutor.Execute(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		GlobalExecutor.exitWith(2)
	}
}

func (p *Executor) exitWith(code int) {
	if p.exit != nil {
		p.exit(code)
		return
	}
	os.Exit(code)
}
