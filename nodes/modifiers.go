package nodes

import (
	"errors"
	"strings"
)

const (
	ModifierPublic    = 1
	ModifierProtected = 2
	ModifierPrivate   = 4
	ModifierStatic    = 8
	ModifierAbstract  = 16
	ModifierFinal     = 32
	ModifierReadonly  = 64

	VisibilityMask = ModifierPublic | ModifierProtected | ModifierPrivate
)

// ModifierNames lists modifier keywords in canonical print order.
var ModifierNames = []struct {
	Flag int
	Name string
}{
	{ModifierFinal, "final"},
	{ModifierAbstract, "abstract"},
	{ModifierPublic, "public"},
	{ModifierProtected, "protected"},
	{ModifierPrivate, "private"},
	{ModifierStatic, "static"},
	{ModifierReadonly, "readonly"},
}

// ModifierString renders flags as space terminated keywords.
func ModifierString(flags int) string {
	var b strings.Builder
	for _, m := range ModifierNames {
		if flags&m.Flag != 0 {
			b.WriteString(m.Name)
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func ModifierName(flag int) string {
	for _, m := range ModifierNames {
		if m.Flag == flag {
			return m.Name
		}
	}
	return ""
}

// VerifyModifier checks that adding b to member modifiers a is legal.
func VerifyModifier(a, b int) error {
	if a&VisibilityMask != 0 && b&VisibilityMask != 0 {
		return errors.New("Multiple access type modifiers are not allowed")
	}
	if a&ModifierAbstract != 0 && b&ModifierAbstract != 0 {
		return errors.New("Multiple abstract modifiers are not allowed")
	}
	if a&ModifierStatic != 0 && b&ModifierStatic != 0 {
		return errors.New("Multiple static modifiers are not allowed")
	}
	if a&ModifierFinal != 0 && b&ModifierFinal != 0 {
		return errors.New("Multiple final modifiers are not allowed")
	}
	if a&ModifierReadonly != 0 && b&ModifierReadonly != 0 {
		return errors.New("Multiple readonly modifiers are not allowed")
	}
	if a&(ModifierAbstract|ModifierFinal) != 0 && b&(ModifierAbstract|ModifierFinal) != 0 {
		return errors.New("Cannot use the final modifier on an abstract class member")
	}
	return nil
}

// VerifyClassModifier checks that adding b to class modifiers a is legal.
func VerifyClassModifier(a, b int) error {
	if a&ModifierAbstract != 0 && b&ModifierAbstract != 0 {
		return errors.New("Multiple abstract modifiers are not allowed")
	}
	if a&ModifierFinal != 0 && b&ModifierFinal != 0 {
		return errors.New("Multiple final modifiers are not allowed")
	}
	if a&ModifierReadonly != 0 && b&ModifierReadonly != 0 {
		return errors.New("Multiple readonly modifiers are not allowed")
	}
	if a&(ModifierAbstract|ModifierFinal) != 0 && b&(ModifierAbstract|ModifierFinal) != 0 {
		return errors.New("Cannot use the final modifier on an abstract class")
	}
	return nil
}
