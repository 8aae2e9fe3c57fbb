package modes

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
	ModeTest
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	case ModeTest:
		return "test"
	}
	return "unknown"
}

// VerifyOutput reports whether printed code should be parsed again to make
// sure the printers produced valid PHP.
func (m Mode) VerifyOutput() bool {
	return m == ModeDevelopment || m == ModeTest
}
