package printers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reusee/phpedit/nodes"
)

func (p *Printer) printInt(n *nodes.Int) string {
	if n.Value == math.MinInt64 {
		// the sign is not part of the literal
		return "(-" + strconv.FormatInt(math.MaxInt64, 10) + "-1)"
	}
	kind := n.Attributes().Int(nodes.KindKey)
	if kind < 0 || kind == nodes.IntKindDec {
		return strconv.FormatInt(n.Value, 10)
	}
	sign := ""
	abs := uint64(n.Value)
	if n.Value < 0 {
		sign = "-"
		abs = uint64(-n.Value)
	}
	switch kind {
	case nodes.IntKindBin:
		return sign + "0b" + strconv.FormatUint(abs, 2)
	case nodes.IntKindOct:
		return sign + "0" + strconv.FormatUint(abs, 8)
	case nodes.IntKindHex:
		return sign + "0x" + strconv.FormatUint(abs, 16)
	}
	p.fail("invalid integer kind %d", kind)
	return ""
}

var integerLike = regexp.MustCompile(`^-?[0-9]+$`)

// printFloat uses the shortest of 16 or 17 significant digits that reads
// back exactly, and always looks like a float.
func printFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return `\INF`
	case math.IsInf(f, -1):
		return `-\INF`
	case math.IsNaN(f):
		return `\NAN`
	}
	s := strconv.FormatFloat(f, 'G', 16, 64)
	if back, err := strconv.ParseFloat(s, 64); err != nil || back != f {
		s = strconv.FormatFloat(f, 'G', 17, 64)
	}
	if integerLike.MatchString(s) {
		s += ".0"
	}
	return s
}

func (p *Printer) printString(n *nodes.String) string {
	attrs := n.Attributes()
	kind := attrs.Int(nodes.KindKey)
	label := attrs.String(nodes.DocLabelKey)
	switch kind {
	case nodes.StringKindNowdoc:
		if label != "" && !containsEndLabel(n.Value, label, true, true) &&
			!strings.HasSuffix(n.Value, "\r") {
			if n.Value == "" {
				return "<<<'" + label + "'" + p.docNewline() + label + p.docStringEnd
			}
			return "<<<'" + label + "'" + p.docNewline() + p.docBody(n.Value) + p.docNewline() + label + p.docStringEnd
		}
		return singleQuoted(n.Value)
	case nodes.StringKindHeredoc:
		escaped := escapeString(n.Value, 0)
		if label != "" && !containsEndLabel(escaped, label, true, true) {
			if escaped == "" {
				return "<<<" + label + p.docNewline() + label + p.docStringEnd
			}
			return "<<<" + label + p.docNewline() + p.docBody(escaped) + p.docNewline() + label + p.docStringEnd
		}
		return `"` + escapeString(n.Value, '"') + `"`
	case nodes.StringKindDoubleQuoted:
		return `"` + escapeString(n.Value, '"') + `"`
	}
	return singleQuoted(n.Value)
}

func (p *Printer) printInterpolatedString(n *nodes.InterpolatedString) string {
	attrs := n.Attributes()
	if attrs.Int(nodes.KindKey) == nodes.StringKindHeredoc {
		label := attrs.String(nodes.DocLabelKey)
		if label != "" && !interpolatedContainsEndLabel(n.Parts, label) {
			if len(n.Parts) == 1 {
				if part, ok := n.Parts[0].(*nodes.InterpolatedStringPart); ok && part.Value == "" {
					return "<<<" + label + p.docNewline() + label + p.docStringEnd
				}
			}
			return "<<<" + label + p.docNewline() + p.pEncapsList(n.Parts, 0) + p.docNewline() + label + p.docStringEnd
		}
	}
	return `"` + p.pEncapsList(n.Parts, '"') + `"`
}

func interpolatedContainsEndLabel(parts []nodes.Node, label string) bool {
	for i, part := range parts {
		if s, ok := part.(*nodes.InterpolatedStringPart); ok &&
			containsEndLabel(s.Value, label, i == 0, i == len(parts)-1) {
			return true
		}
	}
	return false
}

// docNewline ends a doc string line. Flexible doc strings are indented
// along with the code around them.
func (p *Printer) docNewline() string {
	if p.options.supportsFlexibleHeredoc() {
		return p.nl
	}
	return p.options.Newline
}

func (p *Printer) docBody(s string) string {
	if !p.options.supportsFlexibleHeredoc() {
		return s
	}
	return strings.ReplaceAll(s, "\n", p.nl)
}

// quote 0 escapes for a heredoc body
func (p *Printer) pEncapsList(parts []nodes.Node, quote byte) string {
	var b strings.Builder
	for _, part := range parts {
		if s, ok := part.(*nodes.InterpolatedStringPart); ok {
			escaped := escapeString(s.Value, quote)
			if quote == 0 {
				escaped = p.docBody(escaped)
			}
			b.WriteString(escaped)
			continue
		}
		b.WriteString("{" + p.p(part) + "}")
	}
	return b.String()
}

func singleQuoted(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return b.String()
}

const hexDigits = "0123456789abcdef"

// escapeString escapes s for a double quoted string, or for a heredoc body
// when quote is 0. Control characters and bytes that are not part of valid
// UTF-8 become \x escapes.
func escapeString(s string, quote byte) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size <= 1 {
				b.WriteString(`\x`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xf])
				i++
				continue
			}
			b.WriteString(s[i : i+size])
			i += size
			continue
		}
		i++
		switch c {
		case '\n':
			if quote == 0 {
				b.WriteByte(c)
			} else {
				b.WriteString(`\n`)
			}
			continue
		case '\r':
			if quote == 0 {
				b.WriteByte(c)
			} else {
				b.WriteString(`\r`)
			}
			continue
		case '\t':
			b.WriteString(`\t`)
			continue
		case '\f':
			b.WriteString(`\f`)
			continue
		case '\v':
			b.WriteString(`\v`)
			continue
		case '$', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
			continue
		}
		if quote != 0 && c == quote {
			b.WriteByte('\\')
			b.WriteByte(c)
			continue
		}
		if c < 0x20 {
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xf])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
