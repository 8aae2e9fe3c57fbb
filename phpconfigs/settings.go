package phpconfigs

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/reusee/phpedit/cmds"
	"github.com/reusee/phpedit/configs"
	"github.com/reusee/phpedit/vars"
)

var (
	phpVersionFlag    = cmds.Var[string]("-php", "target PHP version")
	shortArraysFlag   = cmds.Var[string]("-short-arrays", "print [] for arrays without a kind: yes or no")
	indentFlag        = cmds.Var[string]("-indent", "number of spaces, or tab")
	crlfFlag          = cmds.Switch("-crlf", "print \\r\\n newlines")
	collectErrorsFlag = cmds.Switch("-collect-errors", "report every syntax error instead of stopping at the first")
	attributesFlag    = cmds.Collect[string]("-attribute", "capture an attribute when parsing, or all")
	jobsFlag          = cmds.Var[int]("-jobs", "files processed in parallel")
)

type PHPVersion string

var _ configs.Configurable = PHPVersion("")

func (PHPVersion) ConfigKey() string {
	return "php_version"
}

func (Module) PHPVersion(
	loader configs.Loader,
) PHPVersion {
	return vars.FirstNonZero(
		PHPVersion(*phpVersionFlag),
		configs.First[PHPVersion](loader, "php_version"),
	)
}

type ShortArraySyntax bool

func (ShortArraySyntax) ConfigKey() string {
	return "short_array_syntax"
}

func (Module) ShortArraySyntax(
	loader configs.Loader,
) ShortArraySyntax {
	if *shortArraysFlag != "" {
		return ShortArraySyntax(vars.StrToBool(*shortArraysFlag))
	}
	v, ok, err := configs.Lookup[ShortArraySyntax](loader)
	if err != nil {
		panic(err)
	}
	if !ok {
		return true
	}
	return v
}

// Indent is the indentation unit of printed code.
type Indent string

func (Indent) ConfigKey() string {
	return "indent"
}

func (Module) Indent(
	loader configs.Loader,
) Indent {
	if *indentFlag != "" {
		return parseIndent(*indentFlag)
	}
	return vars.FirstNonZero(
		configs.First[Indent](loader, "indent"),
		"    ",
	)
}

func parseIndent(s string) Indent {
	if strings.EqualFold(s, "tab") {
		return "\t"
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return Indent(strings.Repeat(" ", n))
	}
	// validated with the printer options
	return Indent(s)
}

type Newline string

func (Newline) ConfigKey() string {
	return "newline"
}

func (Module) Newline(
	loader configs.Loader,
) Newline {
	if *crlfFlag {
		return "\r\n"
	}
	return vars.FirstNonZero(
		configs.First[Newline](loader, "newline"),
		"\n",
	)
}

type CollectErrors bool

func (CollectErrors) ConfigKey() string {
	return "collect_errors"
}

func (Module) CollectErrors(
	loader configs.Loader,
) CollectErrors {
	return CollectErrors(*collectErrorsFlag) || configs.First[CollectErrors](loader, "collect_errors")
}

// Attributes names the node attributes the parser captures.
type Attributes []string

func (Attributes) ConfigKey() string {
	return "attributes"
}

func (Module) Attributes(
	loader configs.Loader,
) Attributes {
	if len(*attributesFlag) > 0 {
		return Attributes(*attributesFlag)
	}
	return configs.First[Attributes](loader, "attributes")
}

type Jobs int

func (Jobs) ConfigKey() string {
	return "jobs"
}

func (Module) Jobs(
	loader configs.Loader,
) Jobs {
	return vars.FirstNonZero(
		Jobs(*jobsFlag),
		configs.First[Jobs](loader, "jobs"),
		Jobs(runtime.NumCPU()),
	)
}
