package phpconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/phpedit/logs"
	"github.com/spf13/afero"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// Fs is where config files and PHP sources are read from and written to.
func (Module) Fs() afero.Fs {
	return afero.NewOsFs()
}
