package sources

import (
	"github.com/reusee/dscope"
	"github.com/reusee/phpedit/phpconfigs"
)

type Module struct {
	dscope.Module
	Configs phpconfigs.Module
}
