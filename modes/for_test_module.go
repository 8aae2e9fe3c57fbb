package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForTest puts a scope in test mode. Printed code is verified as in
// development mode, and failed verifications are logged to t with the code
// that did not parse.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (ModuleForTest) Mode() Mode {
	return ModeTest
}
