package codegen

import (
	"strconv"
	"strings"
)

// FloatLiteral renders v as a single-precision C literal with an explicit
// suffix: 2.5 becomes "2.5f", 1 becomes "1.0f". Values without a decimal
// point or exponent gain ".0" so the literal stays floating-point even if
// the suffix is stripped by a downstream tool.
func FloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "f"
}

// Indent prefixes every non-empty line of text with n spaces. Empty lines
// stay empty so emitted blocks do not carry trailing whitespace.
func Indent(text string, n int) string {
	if text == "" || n <= 0 {
		return text
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
