package pipelines

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/reusee/phpedit/cmds"
	"github.com/reusee/phpedit/configs"
	"github.com/reusee/phpedit/logs"
	"github.com/reusee/phpedit/traversers"
	"github.com/reusee/starlarkutil"
	"github.com/spf13/afero"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	renameFlag = cmds.Collect[string]("-rename", "add a rename rule, kind:from:to")
	rulesFlag  = cmds.Collect[string]("-rules", "load rewrite rules from a starlark file")
)

// Rule makes a fresh visitor for every file, visitors keep counts.
type Rule struct {
	Name string
	New  func() traversers.Visitor
}

type GetRules func() ([]Rule, error)

func (Module) GetRules(
	loader configs.Loader,
	fs afero.Fs,
	logger logs.Logger,
) GetRules {
	return sync.OnceValues(func() (ret []Rule, err error) {
		var renames []Rename

		for _, spec := range *renameFlag {
			rename, err := ParseRename(spec)
			if err != nil {
				return nil, err
			}
			renames = append(renames, rename)
		}

		for list, err := range configs.All[[]Rename](loader, "renames") {
			if err != nil {
				return nil, err
			}
			renames = append(renames, list...)
		}

		for _, rename := range renames {
			if err := rename.validate(); err != nil {
				return nil, err
			}
			ret = append(ret, rename.Rule())
		}

		scripts := append([]string(nil), *rulesFlag...)
		for list, err := range configs.All[[]string](loader, "rule_scripts") {
			if err != nil {
				return nil, err
			}
			scripts = append(scripts, list...)
		}
		for _, path := range scripts {
			content, err := afero.ReadFile(fs, path)
			if err != nil {
				return nil, err
			}
			rules, err := LoadRules(path, content)
			if err != nil {
				return nil, err
			}
			ret = append(ret, rules...)
		}

		for _, rule := range ret {
			logger.Debug("rule", "name", rule.Name)
		}
		return ret, nil
	})
}

// ParseRename reads "kind:from:to".
func ParseRename(spec string) (Rename, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return Rename{}, fmt.Errorf("bad rename %q, expecting kind:from:to", spec)
	}
	rename := Rename{
		Kind: RenameKind(parts[0]),
		From: parts[1],
		To:   parts[2],
	}
	return rename, rename.validate()
}

// LoadRules runs a starlark script that declares rules by calling
// rename_variable, rename_function, rename_class, rename_constant and
// remove_calls.
func LoadRules(path string, content []byte) ([]Rule, error) {
	var rules []Rule
	var invalid []error
	renamer := func(kind RenameKind) func(string, string) {
		return func(from, to string) {
			rename := Rename{
				Kind: kind,
				From: from,
				To:   to,
			}
			if err := rename.validate(); err != nil {
				invalid = append(invalid, err)
				return
			}
			rules = append(rules, rename.Rule())
		}
	}

	predeclared := starlark.StringDict{
		"rename_variable": starlarkutil.MakeFunc("rename_variable", renamer(RenameVariable)),
		"rename_function": starlarkutil.MakeFunc("rename_function", renamer(RenameFunction)),
		"rename_class":    starlarkutil.MakeFunc("rename_class", renamer(RenameClass)),
		"rename_constant": starlarkutil.MakeFunc("rename_constant", renamer(RenameConstant)),
		"remove_calls": starlarkutil.MakeFunc("remove_calls", func(name string) {
			rules = append(rules, Rule{
				Name: "remove calls to " + name,
				New: func() traversers.Visitor {
					return &RemoveCallsVisitor{Function: name}
				},
			})
		}),
	}

	thread := &starlark.Thread{
		Name: path,
	}
	if _, err := starlark.ExecFileOptions(&syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
	}, thread, path, content, predeclared); err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("rules %s: %w", path, errors.Join(invalid...))
	}
	return rules, nil
}
