package lexers

import (
	"github.com/Masterminds/semver/v3"
	"github.com/reusee/phpedit/nodes"
)

// DefaultVersion is the newest grammar the lexer emits tokens for.
var DefaultVersion = semver.MustParse("8.1.0")

var (
	version73 = semver.MustParse("7.3.0")
	version74 = semver.MustParse("7.4.0")
	version80 = semver.MustParse("8.0.0")
	version81 = semver.MustParse("8.1.0")
)

type Options struct {
	// target PHP version, DefaultVersion when nil
	Version *semver.Version
	// attributes the parser materializes on nodes
	Attributes nodes.AttributeSet
}

func DefaultOptions() Options {
	return Options{
		Version:    DefaultVersion,
		Attributes: nodes.CaptureComments | nodes.CaptureLines | nodes.CaptureStartTokenPos | nodes.CaptureEndTokenPos,
	}
}

func (o Options) version() *semver.Version {
	if o.Version == nil {
		return DefaultVersion
	}
	return o.Version
}

func (o Options) atLeast(v *semver.Version) bool {
	return !o.version().LessThan(v)
}

// ParseVersion accepts forms like "7.4", "8", "v8.1.2".
func ParseVersion(s string) (*semver.Version, error) {
	return semver.NewVersion(s)
}
