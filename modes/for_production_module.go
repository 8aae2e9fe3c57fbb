package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

type ModuleForProduction struct {
	dscope.Module
	mode Mode
}

func ForProduction() ModuleForProduction {
	return ModuleForProduction{
		mode: ModeProduction,
	}
}

// ForDevelopment is ForProduction with output verification turned on.
func ForDevelopment() ModuleForProduction {
	return ModuleForProduction{
		mode: ModeDevelopment,
	}
}

func (ModuleForProduction) T() *testing.T {
	return nil
}

func (m ModuleForProduction) Mode() Mode {
	if m.mode == 0 {
		return ModeProduction
	}
	return m.mode
}
