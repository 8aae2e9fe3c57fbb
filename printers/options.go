package printers

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/reusee/phpedit/lexers"
)

type Options struct {
	// target PHP version, lexers.DefaultVersion when nil
	Version *semver.Version
	// [] instead of array() for arrays without a kind attribute
	ShortArraySyntax bool
	// "\n" or "\r\n"
	Newline string
	// all spaces, or a single tab
	Indent string
}

func DefaultOptions() Options {
	return Options{
		Version:          lexers.DefaultVersion,
		ShortArraySyntax: true,
		Newline:          "\n",
		Indent:           "    ",
	}
}

var (
	version71 = semver.MustParse("7.1.0")
	version73 = semver.MustParse("7.3.0")
	version80 = semver.MustParse("8.0.0")
)

func (o Options) version() *semver.Version {
	if o.Version == nil {
		return lexers.DefaultVersion
	}
	return o.Version
}

func (o Options) atLeast(v *semver.Version) bool {
	return !o.version().LessThan(v)
}

func (o Options) validate() error {
	if o.Newline != "\n" && o.Newline != "\r\n" {
		return fmt.Errorf("newline must be \\n or \\r\\n, got %q", o.Newline)
	}
	if o.Indent != "\t" && (o.Indent == "" || strings.Trim(o.Indent, " ") != "") {
		return fmt.Errorf("indent must either be all spaces or a single tab, got %q", o.Indent)
	}
	return nil
}

func (o Options) supportsFlexibleHeredoc() bool {
	return o.atLeast(version73)
}

func (o Options) supportsNullsafe() bool {
	return o.atLeast(version80)
}

func (o Options) supportsShortArrayDestructuring() bool {
	return o.atLeast(version71)
}

func (o Options) supportsTrailingCommaInParamList() bool {
	return o.atLeast(version80)
}

// (float) replaced (double) as the canonical spelling in PHP 8.
func (o Options) prefersFloatCast() bool {
	return o.atLeast(version80)
}
