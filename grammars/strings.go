package grammars

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
)

var escapeReplacements = map[string]string{
	`\`: `\`,
	`$`: `$`,
	`n`: "\n",
	`r`: "\r",
	`t`: "\t",
	`f`: "\f",
	`v`: "\v",
	`e`: "\x1b",
}

var escapePattern = regexp.MustCompile(`\\([\\$nrtfve]|[xX][0-9a-fA-F]{1,2}|[0-7]{1,3}|u\{([0-9a-fA-F]+)\})`)

// parseEscapeSequences resolves backslash escapes of double quoted and
// heredoc strings. A non-empty quote is unescaped first.
func parseEscapeSequences(r *parsers.Reduction, s string, quote string) string {
	if quote != "" {
		s = strings.ReplaceAll(s, `\`+quote, quote)
	}
	return escapePattern.ReplaceAllStringFunc(s, func(match string) string {
		seq := match[1:]
		if rep, ok := escapeReplacements[seq]; ok {
			return rep
		}
		switch seq[0] {
		case 'x', 'X':
			n, _ := strconv.ParseUint(seq[1:], 16, 8)
			return string([]byte{byte(n)})
		case 'u':
			n, err := strconv.ParseUint(seq[2:len(seq)-1], 16, 64)
			if err != nil {
				n = math.MaxInt64
			}
			s, ok := codePointToUTF8(n)
			if !ok && r != nil {
				r.Emit(errs.New("Invalid UTF-8 codepoint escape sequence: Codepoint too large", r.Attrs()))
			}
			return s
		}
		n, _ := strconv.ParseUint(seq, 8, 16)
		return string([]byte{byte(n & 255)})
	})
}

// codePointToUTF8 encodes without validating surrogates, like the PHP
// runtime does.
func codePointToUTF8(n uint64) (string, bool) {
	switch {
	case n <= 0x7f:
		return string([]byte{byte(n)}), true
	case n <= 0x7ff:
		return string([]byte{
			byte(n>>6) + 0xc0,
			byte(n&0x3f) + 0x80,
		}), true
	case n <= 0xffff:
		return string([]byte{
			byte(n>>12) + 0xe0,
			byte((n>>6)&0x3f) + 0x80,
			byte(n&0x3f) + 0x80,
		}), true
	case n <= 0x1fffff:
		return string([]byte{
			byte(n>>18) + 0xf0,
			byte((n>>12)&0x3f) + 0x80,
			byte((n>>6)&0x3f) + 0x80,
			byte(n&0x3f) + 0x80,
		}), true
	}
	return string(utf8.RuneError), false
}

// stringFromString builds a string node from a quoted literal.
func stringFromString(r *parsers.Reduction, literal string, attrs nodes.Attributes) *nodes.String {
	attrs[nodes.RawValueKey] = literal
	body := literal
	if body != "" && (body[0] == 'b' || body[0] == 'B') {
		body = body[1:]
	}
	var value string
	if strings.HasPrefix(body, "'") {
		attrs[nodes.KindKey] = nodes.StringKindSingleQuoted
		value = singleQuotedReplacer.Replace(body[1 : len(body)-1])
	} else {
		attrs[nodes.KindKey] = nodes.StringKindDoubleQuoted
		value = parseEscapeSequences(r, body[1:len(body)-1], `"`)
	}
	return with(&nodes.String{
		Value: value,
	}, attrs)
}

var singleQuotedReplacer = strings.NewReplacer(`\\`, `\`, `\'`, `'`)

// intFromString parses an integer literal. ok is false for invalid octal
// literals.
func intFromString(literal string, attrs nodes.Attributes) (*nodes.Int, bool) {
	attrs[nodes.RawValueKey] = literal
	s := strings.ReplaceAll(literal, "_", "")
	n := &nodes.Int{}
	switch {
	case s[0] != '0' || s == "0":
		attrs[nodes.KindKey] = nodes.IntKindDec
		n.Value = parseIntPrefix(s, 10)
	case s[1] == 'x' || s[1] == 'X':
		attrs[nodes.KindKey] = nodes.IntKindHex
		n.Value = parseIntPrefix(s[2:], 16)
	case s[1] == 'b' || s[1] == 'B':
		attrs[nodes.KindKey] = nodes.IntKindBin
		n.Value = parseIntPrefix(s[2:], 2)
	default:
		if strings.ContainsAny(s, "89") {
			return with(n, attrs), false
		}
		if s[1] == 'o' || s[1] == 'O' {
			s = s[2:]
		}
		attrs[nodes.KindKey] = nodes.IntKindOct
		n.Value = parseIntPrefix(s, 8)
	}
	return with(n, attrs), true
}

// parseIntPrefix converts the longest valid prefix, saturating on overflow.
func parseIntPrefix(s string, base int) int64 {
	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return math.MaxInt64
	}
	return v
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 99
}

func (st *parseState) parseLNumber(r *parsers.Reduction, literal string, attrs nodes.Attributes) *nodes.Int {
	n, ok := intFromString(literal, attrs)
	if !ok {
		r.Emit(errs.New("Invalid numeric literal", n.Attributes()))
		n.Value = 0
	}
	return n
}

// floatFromString parses a float literal. Integer literals too large for
// int64 also arrive here.
func floatFromString(literal string, attrs nodes.Attributes) *nodes.Float {
	attrs[nodes.RawValueKey] = literal
	s := strings.ReplaceAll(literal, "_", "")
	var value float64
	if len(s) > 1 && s[0] == '0' && !strings.ContainsAny(s, ".eE") {
		base := 8
		switch s[1] {
		case 'x', 'X':
			base, s = 16, s[2:]
		case 'b', 'B':
			base, s = 2, s[2:]
		case 'o', 'O':
			s = s[2:]
		}
		for i := 0; i < len(s) && digitValue(s[i]) < base; i++ {
			value = value*float64(base) + float64(digitValue(s[i]))
		}
	} else {
		value, _ = strconv.ParseFloat(s, 64)
	}
	return with(&nodes.Float{
		Value: value,
	}, attrs)
}

var numStringPattern = regexp.MustCompile(`^(?:0|-?[1-9][0-9]*)$`)

// parseNumString converts canonical integer offsets in strings to integers
// and keeps everything else as a string, since "08" and 8 are different
// array keys.
func parseNumString(s string, attrs nodes.Attributes) nodes.Expr {
	if !numStringPattern.MatchString(s) {
		return with(&nodes.String{Value: s}, attrs)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return with(&nodes.String{Value: s}, attrs)
	}
	return with(&nodes.Int{Value: n}, attrs)
}

var docStartPattern = regexp.MustCompile(`\A[bB]?<<<[ \t]*['"]?([a-zA-Z_\x80-\xff][a-zA-Z0-9_\x80-\xff]*)['"]?(?:\r\n|\n|\r)\z`)

var trailingNewline = regexp.MustCompile(`(?:\r\n|\n|\r)\z`)

// parseDocString builds the node of a heredoc or nowdoc. contents is the
// body text or the list of interpolated parts.
func (st *parseState) parseDocString(
	r *parsers.Reduction,
	startToken string,
	contents any,
	endToken string,
	attrs nodes.Attributes,
	endTokenAttrs nodes.Attributes,
) nodes.Expr {
	kind := nodes.StringKindHeredoc
	if strings.Contains(startToken, "'") {
		kind = nodes.StringKindNowdoc
	}
	label := ""
	if m := docStartPattern.FindStringSubmatch(startToken); m != nil {
		label = m[1]
	}
	indentation := endToken[:len(endToken)-len(strings.TrimLeft(endToken, " \t"))]
	attrs[nodes.KindKey] = kind
	attrs[nodes.DocLabelKey] = label
	attrs[nodes.DocIndentationKey] = indentation

	hasSpaces := strings.Contains(indentation, " ")
	hasTabs := strings.Contains(indentation, "\t")
	if hasSpaces && hasTabs {
		r.Emit(errs.New("Invalid indentation - tabs and spaces cannot be mixed", endTokenAttrs))
		indentation = ""
	}
	indent := dedent{
		r:      r,
		length: len(indentation),
		char:   '\t',
	}
	if hasSpaces {
		indent.char = ' '
	}

	switch contents := contents.(type) {
	case string:
		if contents == "" {
			attrs[nodes.RawValueKey] = ""
			return with(&nodes.String{}, attrs)
		}
		contents = indent.strip(contents, true, true, attrs)
		contents = trailingNewline.ReplaceAllString(contents, "")
		attrs[nodes.RawValueKey] = contents
		if kind == nodes.StringKindHeredoc {
			contents = parseEscapeSequences(r, contents, "")
		}
		return with(&nodes.String{
			Value: contents,
		}, attrs)

	case []nodes.Node:
		if len(contents) > 0 {
			if _, ok := contents[0].(*nodes.InterpolatedStringPart); !ok {
				// validate the indentation of the first line
				indent.strip("", true, false, contents[0].Attributes())
			}
		}
		parts := make([]nodes.Node, 0, len(contents))
		for i, part := range contents {
			if p, ok := part.(*nodes.InterpolatedStringPart); ok {
				last := i == len(contents)-1
				p.Value = indent.strip(p.Value, i == 0, last, p.Attributes())
				if last {
					p.Value = trailingNewline.ReplaceAllString(p.Value, "")
				}
				p.SetAttribute(nodes.RawValueKey, p.Value)
				p.Value = parseEscapeSequences(r, p.Value, "")
				if p.Value == "" {
					continue
				}
			}
			parts = append(parts, part)
		}
		return with(&nodes.InterpolatedString{
			Parts: parts,
		}, attrs)
	}

	return with(&nodes.String{}, attrs)
}

// dedent removes the closing marker indentation from doc string lines.
type dedent struct {
	r      *parsers.Reduction
	length int
	char   byte
}

// strip removes up to length indentation characters from every line start
// in s. Line starts are the positions after a newline, plus the start of s
// when atStart is set. Lines that end the string only count when atEnd is
// set.
func (d dedent) strip(s string, atStart, atEnd bool, attrs nodes.Attributes) string {
	if d.length == 0 {
		return s
	}
	other := byte(' ')
	if d.char == ' ' {
		other = '\t'
	}

	var sb strings.Builder
	i := 0
	lineStart := atStart
	for {
		if !lineStart {
			nl := strings.IndexByte(s[i:], '\n')
			if nl < 0 {
				sb.WriteString(s[i:])
				break
			}
			sb.WriteString(s[i : i+nl+1])
			i += nl + 1
		}
		lineStart = false

		// measure the whitespace run at i
		j := i
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		atLineEnd := j < len(s) && (s[j] == '\n' || s[j] == '\r')
		if j == len(s) && atEnd {
			atLineEnd = true
		}
		prefix := s[i:min(i+d.length, j)]
		if strings.IndexByte(prefix, other) >= 0 {
			d.r.Emit(errs.New("Invalid indentation - tabs and spaces cannot be mixed", attrs))
		} else if len(prefix) < d.length && !atLineEnd {
			d.r.Emit(errs.Newf(attrs, "Invalid body indentation level (expecting an indentation level of at least %d)", d.length))
		}
		i += len(prefix)

		if i >= len(s) {
			break
		}
	}
	return sb.String()
}
