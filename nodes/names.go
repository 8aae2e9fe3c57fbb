package nodes

import "strings"

type NameKind uint8

const (
	NameNormal NameKind = iota
	NameFullyQualified
	NameRelative
)

// Name is a possibly qualified name. Name holds the parts joined by a
// backslash, without any leading separator or namespace prefix.
type Name struct {
	Base
	Name string `node:"name"`
	Kind NameKind
}

func (n *Name) Type() string {
	switch n.Kind {
	case NameFullyQualified:
		return "Name_FullyQualified"
	case NameRelative:
		return "Name_Relative"
	}
	return "Name"
}

func (n *Name) Parts() []string {
	return strings.Split(n.Name, `\`)
}

func (n *Name) First() string {
	if i := strings.IndexByte(n.Name, '\\'); i >= 0 {
		return n.Name[:i]
	}
	return n.Name
}

func (n *Name) Last() string {
	if i := strings.LastIndexByte(n.Name, '\\'); i >= 0 {
		return n.Name[i+1:]
	}
	return n.Name
}

func (n *Name) IsUnqualified() bool {
	return n.Kind == NameNormal && !strings.Contains(n.Name, `\`)
}

func (n *Name) IsQualified() bool {
	return n.Kind == NameNormal && strings.Contains(n.Name, `\`)
}

func (n *Name) IsFullyQualified() bool {
	return n.Kind == NameFullyQualified
}

func (n *Name) IsRelative() bool {
	return n.Kind == NameRelative
}

func (n *Name) String() string {
	return n.Name
}

func (n *Name) LowerString() string {
	return strings.ToLower(n.Name)
}

// CodeString returns the name as it would be written in source.
func (n *Name) CodeString() string {
	switch n.Kind {
	case NameFullyQualified:
		return `\` + n.Name
	case NameRelative:
		return `namespace\` + n.Name
	}
	return n.Name
}

// IsSpecialClassName reports whether the name is self, parent or static.
func (n *Name) IsSpecialClassName() bool {
	return n.Kind == NameNormal && isSpecialClassName(n.Name)
}

func isSpecialClassName(name string) bool {
	switch strings.ToLower(name) {
	case "self", "parent", "static":
		return true
	}
	return false
}

// ParseName splits the written form of a name into its kind and parts.
func ParseName(code string) *Name {
	switch {
	case strings.HasPrefix(code, `\`):
		return &Name{Name: code[1:], Kind: NameFullyQualified}
	case len(code) > 10 && strings.EqualFold(code[:10], `namespace\`):
		return &Name{Name: code[10:], Kind: NameRelative}
	}
	return &Name{Name: code}
}

type Identifier struct {
	Base
	Name string `node:"name"`
}

func (*Identifier) Type() string {
	return "Identifier"
}

func (i *Identifier) String() string {
	return i.Name
}

func (i *Identifier) LowerString() string {
	return strings.ToLower(i.Name)
}

func (i *Identifier) IsSpecialClassName() bool {
	return isSpecialClassName(i.Name)
}

// VarLikeIdentifier is an identifier written like a variable without the $,
// as in static property fetches and property declarations.
type VarLikeIdentifier struct {
	Base
	Name string `node:"name"`
}

func (*VarLikeIdentifier) Type() string {
	return "VarLikeIdentifier"
}

type NullableType struct {
	Base
	TypeNode Node `node:"type"`
}

func (*NullableType) Type() string {
	return "NullableType"
}

type UnionType struct {
	Base
	Types []Node `node:"types"`
}

func (*UnionType) Type() string {
	return "UnionType"
}

var builtinTypes = map[string]bool{
	"bool":     true,
	"int":      true,
	"float":    true,
	"string":   true,
	"iterable": true,
	"void":     true,
	"object":   true,
	"null":     true,
	"false":    true,
	"true":     true,
	"mixed":    true,
	"never":    true,
	"callable": true,
	"array":    true,
	"static":   true,
}

// IsBuiltinType reports whether a type name is reserved for a builtin type.
func IsBuiltinType(name string) bool {
	return builtinTypes[strings.ToLower(name)]
}
