package pipelines

import (
	"github.com/reusee/dscope"
	"github.com/reusee/phpedit/debugs"
	"github.com/reusee/phpedit/sources"
)

// Module wires the source to source pipelines: lexing, parsing, fresh and
// format-preserving printing, rewriting and checking. A Mode must be
// provided along with it, see the modes package.
type Module struct {
	dscope.Module
	Sources sources.Module
	Debugs  debugs.Module
}
