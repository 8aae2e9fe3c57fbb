package cmds

import "strings"

// Var defines name to set a value and name+"." to reset it.
func Var[T any](name string, desc ...string) *T {
	var value T

	Define(name, Func(func(v T) {
		value = v
	}).Desc(strings.Join(desc, " ")))

	var zero T
	Define(name+".", Func(func() {
		value = zero
	}).Desc("reset "+name))

	return &value
}

// Switch defines name to turn a flag on and "!"+name to turn it off.
func Switch(name string, desc ...string) *bool {
	var value bool

	Define(name, Func(func() {
		value = true
	}).Desc(strings.Join(desc, " ")))

	Define("!"+name, Func(func() {
		value = false
	}).Desc("disable "+name))

	return &value
}

// Collect defines name to append to a list, for commands given once per file.
func Collect[T any](name string, desc ...string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(strings.Join(desc, " ")))
	return &value
}
