package nodes

import (
	"regexp"
	"strings"
)

type Comment struct {
	Text string
	Doc  bool

	StartLine     int
	StartFilePos  int
	StartTokenPos int
	EndLine       int
	EndFilePos    int
	EndTokenPos   int
}

func (c *Comment) String() string {
	return c.Text
}

var (
	starLinesPattern     = regexp.MustCompile(`^.*(?:\n\s+\*.*)+$`)
	starPrefixPattern    = regexp.MustCompile(`(?m)^\s+\*`)
	openOwnLinePattern   = regexp.MustCompile(`^/\*\*?\s*\n`)
	closeIndentPattern   = regexp.MustCompile(`\n(\s*)\*/$`)
	openSameLinePattern  = regexp.MustCompile(`^/\*\*?\s*`)
	whitespacePrefixExpr = regexp.MustCompile(`^\s*`)
)

// ReformattedText returns the comment text with its indentation normalized,
// so it can be re-emitted at another indentation level.
func (c *Comment) ReformattedText() string {
	text := strings.ReplaceAll(c.Text, "\r\n", "\n")
	newlinePos := strings.IndexByte(text, '\n')
	if newlinePos < 0 {
		return text
	}

	//  /*
	//   * text
	//   */
	if starLinesPattern.MatchString(text) {
		return starPrefixPattern.ReplaceAllString(text, " *")
	}

	//  /*
	//      text
	//  */
	if openOwnLinePattern.MatchString(text) {
		if m := closeIndentPattern.FindStringSubmatch(text); m != nil {
			prefix := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(m[1]))
			return prefix.ReplaceAllString(text, "")
		}
	}

	//  /* text
	//     text */
	if m := openSameLinePattern.FindString(text); m != "" {
		prefixLen := shortestWhitespacePrefixLen(text[newlinePos+1:])
		removeLen := prefixLen - len(m)
		if removeLen <= 0 {
			return text
		}
		lines := strings.Split(text, "\n")
		for i := range lines {
			n := 0
			for n < removeLen && n < len(lines[i]) && isSpace(lines[i][n]) {
				n++
			}
			if n == removeLen {
				lines[i] = lines[i][n:]
			}
		}
		return strings.Join(lines, "\n")
	}

	return text
}

func shortestWhitespacePrefixLen(s string) int {
	shortest := -1
	for _, line := range strings.Split(s, "\n") {
		n := len(whitespacePrefixExpr.FindString(line))
		if shortest < 0 || n < shortest {
			shortest = n
		}
	}
	if shortest < 0 {
		return 0
	}
	return shortest
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
