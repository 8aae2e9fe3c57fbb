package lexers

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/reusee/phpedit/tokens"
)

type mode uint8

const (
	modeHTML mode = iota
	modeScripting
	// scripting inside "{$...}" of a string, popped by the matching brace
	modeEmbedded
	modeDoubleQuotes
	modeHeredoc
	modeVarOffset
)

type frame struct {
	mode  mode
	label string
}

// scanner produces raw tokens. Bytes it cannot classify are skipped and
// become gaps between token positions.
type scanner struct {
	options Options
	src     []byte
	pos     int
	stack   []frame
	toks    []tokens.Token
	// kind of the last token that is not whitespace or a comment
	last tokens.Kind
	// significant tokens still expected after __halt_compiler
	haltTokens int
	halted     bool
	// offsets of "${" in interpolated strings, which are not supported
	dollarBraces []int
}

func newScanner(src []byte, options Options) *scanner {
	return &scanner{
		options: options,
		src:     src,
		stack:   []frame{{mode: modeHTML}},
	}
}

func (s *scanner) top() *frame {
	return &s.stack[len(s.stack)-1]
}

func (s *scanner) push(f frame) {
	s.stack = append(s.stack, f)
}

func (s *scanner) pop() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *scanner) emit(kind tokens.Kind, start, end int) {
	tok := tokens.Token{
		Kind: kind,
		Text: string(s.src[start:end]),
		Pos:  start,
	}
	s.toks = append(s.toks, tok)
	s.pos = end
	switch kind {
	case tokens.Whitespace, tokens.Comment, tokens.DocComment:
	default:
		s.last = kind
	}
}

func (s *scanner) scan() []tokens.Token {
	for s.pos < len(s.src) && !s.halted {
		switch s.top().mode {
		case modeHTML:
			s.scanHTML()
		case modeScripting, modeEmbedded:
			s.scanScripting()
		case modeDoubleQuotes, modeHeredoc:
			s.scanString()
		case modeVarOffset:
			s.scanVarOffset()
		}
	}
	return s.toks
}

func (s *scanner) scanHTML() {
	start := s.pos
	i := start
	for {
		idx := bytes.Index(s.src[i:], []byte("<?"))
		if idx < 0 {
			s.emit(tokens.InlineHTML, start, len(s.src))
			return
		}
		i += idx
		if n := openTagLength(s.src[i:]); n > 0 {
			if i > start {
				s.emit(tokens.InlineHTML, start, i)
			}
			s.emit(tokens.OpenTag, i, i+n)
			s.top().mode = modeScripting
			return
		}
		if bytes.HasPrefix(s.src[i:], []byte("<?=")) {
			if i > start {
				s.emit(tokens.InlineHTML, start, i)
			}
			s.emit(tokens.OpenTagWithEcho, i, i+3)
			s.top().mode = modeScripting
			return
		}
		i += 2
	}
}

// openTagLength matches "<?php" plus one following whitespace character.
func openTagLength(b []byte) int {
	if len(b) < 5 || !strings.EqualFold(string(b[:5]), "<?php") {
		return 0
	}
	if len(b) == 5 {
		return 5
	}
	switch b[5] {
	case ' ', '\t', '\n':
		return 6
	case '\r':
		if len(b) > 6 && b[6] == '\n' {
			return 7
		}
		return 6
	}
	return 0
}

func isLabelStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isLabelChar(c byte) bool {
	return isLabelStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func labelLength(b []byte) int {
	if len(b) == 0 || !isLabelStart(b[0]) {
		return 0
	}
	n := 1
	for n < len(b) && isLabelChar(b[n]) {
		n++
	}
	return n
}

// yieldFromLength returns the length of the whitespace and "from" following
// a yield keyword, or 0 when they are absent.
func yieldFromLength(b []byte) int {
	n := 0
	for n < len(b) && isWhitespace(b[n]) {
		n++
	}
	if n == 0 || labelLength(b[n:]) != 4 || !strings.EqualFold(string(b[n:n+4]), "from") {
		return 0
	}
	return n + 4
}

func (s *scanner) scanScripting() {
	src := s.src
	start := s.pos
	c := src[start]

	if s.haltTokens == 0 && s.last == tokens.HaltCompiler {
		s.haltTokens = 3
	}

	switch {

	case isWhitespace(c):
		i := start
		for i < len(src) && isWhitespace(src[i]) {
			i++
		}
		s.emit(tokens.Whitespace, start, i)
		return

	case c == '?' && start+1 < len(src) && src[start+1] == '>':
		end := start + 2
		if end < len(src) && src[end] == '\n' {
			end++
		} else if end+1 < len(src) && src[end] == '\r' && src[end+1] == '\n' {
			end += 2
		}
		s.emit(tokens.CloseTag, start, end)
		s.top().mode = modeHTML
		s.afterHaltToken()
		return

	case c == '#' || c == '/' && start+1 < len(src) && src[start+1] == '/':
		i := start
		for i < len(src) {
			if src[i] == '\n' {
				i++
				break
			}
			if src[i] == '\r' {
				i++
				if i < len(src) && src[i] == '\n' {
					i++
				}
				break
			}
			if src[i] == '?' && i+1 < len(src) && src[i+1] == '>' {
				break
			}
			i++
		}
		s.emit(tokens.Comment, start, i)
		return

	case c == '/' && start+1 < len(src) && src[start+1] == '*':
		kind := tokens.Comment
		if start+3 < len(src) && src[start+2] == '*' && isWhitespace(src[start+3]) {
			kind = tokens.DocComment
		}
		end := len(src)
		if idx := bytes.Index(src[start+2:], []byte("*/")); idx >= 0 {
			end = start + 2 + idx + 2
		}
		s.emit(kind, start, end)
		return

	case c == '$' && start+1 < len(src) && isLabelStart(src[start+1]):
		n := labelLength(src[start+1:])
		s.emit(tokens.Variable, start, start+1+n)
		s.afterHaltToken()
		return

	case isLabelStart(c):
		if (c == 'b' || c == 'B') && start+1 < len(src) && (src[start+1] == '\'' || src[start+1] == '"') {
			s.pos++
			if src[start+1] == '\'' {
				s.scanSingleQuoted(start)
				s.afterHaltToken()
			} else {
				s.scanDoubleQuotedStart(start)
			}
			return
		}
		n := labelLength(src[start:])
		kind := s.labelKind(string(src[start : start+n]))
		if kind == tokens.Yield {
			n += yieldFromLength(src[start+n:])
			if n > 5 {
				kind = tokens.YieldFrom
			}
		}
		s.emit(kind, start, start+n)
		s.afterHaltToken()
		return

	case isDigit(c) || c == '.' && start+1 < len(src) && isDigit(src[start+1]):
		kind, end := s.scanNumber(start)
		s.emit(kind, start, end)
		s.afterHaltToken()
		return

	case c == '\'':
		s.scanSingleQuoted(start)
		s.afterHaltToken()
		return

	case c == '"':
		s.scanDoubleQuotedStart(start)
		return

	case c == '<' && bytes.HasPrefix(src[start:], []byte("<<<")):
		if s.scanHeredocStart(start) {
			return
		}

	case c == '(':
		if kind, end, ok := s.scanCast(start); ok {
			s.emit(kind, start, end)
			s.afterHaltToken()
			return
		}

	case c == '\\':
		s.emit(tokens.NsSeparator, start, start+1)
		s.afterHaltToken()
		return

	case c == '{':
		s.emit('{', start, start+1)
		s.push(frame{mode: modeScripting})
		s.afterHaltToken()
		return

	case c == '}':
		s.emit('}', start, start+1)
		s.pop()
		s.afterHaltToken()
		return

	}

	if kind, n, ok := tokens.Operator(src[start:], s.acceptOperator); ok {
		s.emit(kind, start, start+n)
		s.afterHaltToken()
		return
	}

	if strings.IndexByte(tokens.Punctuation, c) >= 0 {
		s.emit(tokens.Kind(c), start, start+1)
		s.afterHaltToken()
		return
	}

	// unclassifiable byte, reported as a gap
	s.pos++
}

func (s *scanner) acceptOperator(kind tokens.Kind) bool {
	switch kind {
	case tokens.CoalesceEqual:
		return s.options.atLeast(version74)
	case tokens.NullsafeObjectOperator:
		return s.options.atLeast(version80)
	}
	return true
}

func (s *scanner) labelKind(label string) tokens.Kind {
	switch s.last {
	case tokens.ObjectOperator, tokens.NullsafeObjectOperator, tokens.DoubleColon:
		return tokens.String
	}
	kind, ok := tokens.Keyword(label)
	if !ok {
		return tokens.String
	}
	switch kind {
	case tokens.Fn:
		if !s.options.atLeast(version74) {
			return tokens.String
		}
	case tokens.Readonly:
		if !s.options.atLeast(version81) {
			return tokens.String
		}
	}
	return kind
}

// afterHaltToken counts the "(", ")" and ";" following __halt_compiler.
// Everything after them is a single inline HTML token.
func (s *scanner) afterHaltToken() {
	if s.haltTokens == 0 {
		return
	}
	s.haltTokens--
	last := s.toks[len(s.toks)-1].Kind
	if s.haltTokens > 0 && last != tokens.CloseTag {
		return
	}
	s.haltTokens = 0
	if s.pos < len(s.src) {
		s.emit(tokens.InlineHTML, s.pos, len(s.src))
	}
	s.halted = true
}

func (s *scanner) scanCast(start int) (tokens.Kind, int, bool) {
	src := s.src
	i := start + 1
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	nameStart := i
	for i < len(src) && (src[i] >= 'a' && src[i] <= 'z' || src[i] >= 'A' && src[i] <= 'Z') {
		i++
	}
	if i == nameStart {
		return 0, 0, false
	}
	name := string(src[nameStart:i])
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i >= len(src) || src[i] != ')' {
		return 0, 0, false
	}
	kind, ok := tokens.Cast(name)
	if !ok {
		return 0, 0, false
	}
	return kind, i + 1, true
}

func (s *scanner) digitsEnd(i int, isValid func(byte) bool) int {
	src := s.src
	separators := s.options.atLeast(version74)
	for i < len(src) {
		if isValid(src[i]) {
			i++
			continue
		}
		if separators && src[i] == '_' && i > 0 && isValid(src[i-1]) &&
			i+1 < len(src) && isValid(src[i+1]) {
			i++
			continue
		}
		break
	}
	return i
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isBinDigit(c byte) bool {
	return c == '0' || c == '1'
}

func isOctDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

func (s *scanner) scanNumber(start int) (tokens.Kind, int) {
	src := s.src

	if src[start] == '0' && start+2 < len(src) {
		var base int
		var valid func(byte) bool
		switch src[start+1] {
		case 'x', 'X':
			base, valid = 16, isHexDigit
		case 'b', 'B':
			base, valid = 2, isBinDigit
		case 'o', 'O':
			if s.options.atLeast(version81) {
				base, valid = 8, isOctDigit
			}
		}
		if base != 0 && valid(src[start+2]) {
			end := s.digitsEnd(start+2, valid)
			digits := strings.ReplaceAll(string(src[start+2:end]), "_", "")
			if _, err := strconv.ParseInt(digits, base, 64); err != nil {
				return tokens.DNumber, end
			}
			return tokens.LNumber, end
		}
	}

	i := s.digitsEnd(start, isDigit)
	isFloat := false
	if i < len(src) && src[i] == '.' {
		isFloat = true
		i = s.digitsEnd(i+1, isDigit)
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			isFloat = true
			i = s.digitsEnd(j, isDigit)
		}
	}
	if isFloat {
		return tokens.DNumber, i
	}

	digits := strings.ReplaceAll(string(src[start:i]), "_", "")
	base := 10
	if len(digits) > 1 && digits[0] == '0' {
		base = 8
	}
	if _, err := strconv.ParseInt(digits, base, 64); err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return tokens.DNumber, i
		}
		// invalid octal literals are diagnosed by the parser
	}
	return tokens.LNumber, i
}

func (s *scanner) scanSingleQuoted(start int) {
	src := s.src
	i := s.pos + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '\'':
			s.emit(tokens.ConstantEncapsedString, start, i+1)
			return
		}
		i++
	}
	s.emit(tokens.EncapsedAndWhitespace, start, len(src))
}

// scanDoubleQuotedStart emits a whole constant string when the literal has
// no interpolation, or the opening quote otherwise.
func (s *scanner) scanDoubleQuotedStart(start int) {
	src := s.src
	i := s.pos + 1
	for i < len(src) {
		switch c := src[i]; {
		case c == '\\':
			i += 2
			continue
		case c == '"':
			s.emit(tokens.ConstantEncapsedString, start, i+1)
			s.afterHaltToken()
			return
		case s.interpolationAt(i):
			s.emit('"', start, s.pos+1)
			s.push(frame{mode: modeDoubleQuotes})
			return
		}
		i++
	}
	s.emit('"', start, s.pos+1)
	s.push(frame{mode: modeDoubleQuotes})
}

func (s *scanner) interpolationAt(i int) bool {
	src := s.src
	if src[i] == '$' && i+1 < len(src) && isLabelStart(src[i+1]) {
		return true
	}
	if src[i] == '{' && i+1 < len(src) && src[i+1] == '$' {
		return true
	}
	return false
}

func (s *scanner) scanHeredocStart(start int) bool {
	src := s.src
	i := start + 3
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	var quote byte
	if i < len(src) && (src[i] == '\'' || src[i] == '"') {
		quote = src[i]
		i++
	}
	n := labelLength(src[i:])
	if n == 0 {
		return false
	}
	label := string(src[i : i+n])
	i += n
	if quote != 0 {
		if i >= len(src) || src[i] != quote {
			return false
		}
		i++
	}
	switch {
	case i < len(src) && src[i] == '\n':
		i++
	case i+1 < len(src) && src[i] == '\r' && src[i+1] == '\n':
		i += 2
	default:
		return false
	}
	s.emit(tokens.StartHeredoc, start, i)

	if quote == '\'' {
		s.scanNowdocBody(label)
		return true
	}
	s.push(frame{mode: modeHeredoc, label: label})
	return true
}

// closingMarkerAt returns the end of a closing heredoc marker starting at
// line start i, or -1.
func (s *scanner) closingMarkerAt(i int, label string) int {
	src := s.src
	j := i
	if s.options.atLeast(version73) {
		for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
			j++
		}
	}
	if !bytes.HasPrefix(src[j:], []byte(label)) {
		return -1
	}
	end := j + len(label)
	if end < len(src) && isLabelChar(src[end]) {
		return -1
	}
	return end
}

func (s *scanner) scanNowdocBody(label string) {
	src := s.src
	start := s.pos
	i := start
	for i <= len(src) {
		if end := s.closingMarkerAt(i, label); end >= 0 {
			if i > start {
				s.emit(tokens.EncapsedAndWhitespace, start, i)
			}
			s.emit(tokens.EndHeredoc, i, end)
			s.afterHaltToken()
			return
		}
		idx := bytes.IndexByte(src[i:], '\n')
		if idx < 0 {
			break
		}
		i += idx + 1
	}
	if start < len(src) {
		s.emit(tokens.EncapsedAndWhitespace, start, len(src))
	}
}

func (s *scanner) atLineStart(i int) bool {
	return i > 0 && s.src[i-1] == '\n'
}

// scanString scans interpolated double-quoted or heredoc bodies.
func (s *scanner) scanString() {
	src := s.src
	f := s.top()
	heredoc := f.mode == modeHeredoc
	label := f.label
	start := s.pos

	i := start
	for i < len(src) {
		if heredoc && s.atLineStart(i) {
			if end := s.closingMarkerAt(i, label); end >= 0 {
				if i > start {
					s.emit(tokens.EncapsedAndWhitespace, start, i)
				}
				s.pop()
				s.emit(tokens.EndHeredoc, i, end)
				s.afterHaltToken()
				return
			}
		}
		c := src[i]
		if c == '\\' {
			i += 2
			continue
		}
		if !heredoc && c == '"' {
			if i > start {
				s.emit(tokens.EncapsedAndWhitespace, start, i)
			}
			s.pop()
			s.emit('"', i, i+1)
			s.afterHaltToken()
			return
		}
		if c == '$' && i+1 < len(src) && src[i+1] == '{' {
			if n := len(s.dollarBraces); n == 0 || s.dollarBraces[n-1] < i {
				s.dollarBraces = append(s.dollarBraces, i)
			}
		}
		if s.interpolationAt(i) {
			if i > start {
				s.emit(tokens.EncapsedAndWhitespace, start, i)
				return
			}
			s.scanInterpolation(i)
			return
		}
		i++
	}
	if i > len(src) {
		i = len(src)
	}
	if i > start {
		s.emit(tokens.EncapsedAndWhitespace, start, i)
	}
}

func (s *scanner) scanInterpolation(i int) {
	src := s.src
	if src[i] == '{' {
		s.emit(tokens.CurlyOpen, i, i+1)
		s.push(frame{mode: modeEmbedded})
		return
	}
	n := labelLength(src[i+1:])
	end := i + 1 + n
	s.emit(tokens.Variable, i, end)
	if end < len(src) && src[end] == '[' {
		s.emit('[', end, end+1)
		s.push(frame{mode: modeVarOffset})
		return
	}
	for _, op := range []struct {
		text string
		kind tokens.Kind
	}{
		{"->", tokens.ObjectOperator},
		{"?->", tokens.NullsafeObjectOperator},
	} {
		if !bytes.HasPrefix(src[end:], []byte(op.text)) {
			continue
		}
		if op.kind == tokens.NullsafeObjectOperator && !s.options.atLeast(version80) {
			continue
		}
		after := end + len(op.text)
		if m := labelLength(src[after:]); m > 0 {
			s.emit(op.kind, end, after)
			s.emit(tokens.String, after, after+m)
		}
		return
	}
}

func (s *scanner) scanVarOffset() {
	src := s.src
	start := s.pos
	c := src[start]
	switch {
	case c == ']':
		s.emit(']', start, start+1)
		s.pop()
	case c == '-':
		s.emit('-', start, start+1)
	case isDigit(c):
		i := start
		for i < len(src) && isLabelChar(src[i]) {
			i++
		}
		s.emit(tokens.NumString, start, i)
	case c == '$' && start+1 < len(src) && isLabelStart(src[start+1]):
		n := labelLength(src[start+1:])
		s.emit(tokens.Variable, start, start+1+n)
	case isLabelStart(c):
		n := labelLength(src[start:])
		s.emit(tokens.String, start, start+n)
	default:
		// anything else ends the offset, the parser reports the error
		s.pop()
		s.pos++
	}
}
