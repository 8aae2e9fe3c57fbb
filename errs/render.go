package errs

import (
	"fmt"
	"strings"
)

// Render formats err with the offending source line and a caret under the
// first byte, like
//
//	Syntax error, unexpected ';' at foo.php:3:9
//	$a = 1 +;
//	        ^
func Render(err *Error, name string, code string) string {
	line := err.StartLine()
	if line < 1 || !err.HasColumnInfo() {
		return fmt.Sprintf("%s: %s", name, err.Error())
	}
	column := err.StartColumn(code)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s at %s:%d:%d\n", err.Message, name, line, column))

	lines := strings.Split(code, "\n")
	idx := line - 1
	if idx >= 0 && idx < len(lines) {
		content := strings.TrimRight(lines[idx], "\r")
		sb.WriteString(content)
		sb.WriteString("\n")

		col := column - 1
		for i, r := range content {
			if i >= col {
				break
			}
			if r == '\t' {
				sb.WriteString("\t")
			} else {
				for range runeWidth(r) {
					sb.WriteString(" ")
				}
			}
		}
		sb.WriteString("^\n")
	}

	return sb.String()
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}
