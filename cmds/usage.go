package cmds

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/samber/lo"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

// WriteUsage lists commands sorted by name, one per line, with aliases
// folded into the primary name and sub commands indented below.
func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	aliases := make(map[string]bool)
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		for _, alias := range cmd.Aliases {
			aliases[alias] = true
		}
	}
	names := lo.Filter(lo.Keys(commands), func(name string, _ int) bool {
		return !aliases[name]
	})
	slices.Sort(names)

	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		cmd := commands[name]
		if cmd == nil {
			continue
		}
		line := indent + strings.Join(append([]string{name}, cmd.Aliases...), ", ")
		for _, arg := range argNames(cmd) {
			line += " <" + arg + ">"
		}
		if cmd.Description != "" {
			line += "\t" + cmd.Description
		}
		fmt.Fprintln(w, line)
		if len(cmd.Subs) > 0 {
			writeCommands(w, cmd.Subs, depth+1)
		}
	}
}

func argNames(cmd *Command) []string {
	if len(cmd.ArgNames) > 0 || !cmd.Func.IsValid() {
		return cmd.ArgNames
	}
	fnType := cmd.Func.Type()
	return lo.Times(fnType.NumIn(), func(i int) string {
		t := fnType.In(i)
		if t.Kind() == reflect.Pointer {
			return t.Elem().String() + "?"
		}
		return t.String()
	})
}
