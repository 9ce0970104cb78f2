package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/liquid/filters"
)

var (
	signatureStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	currentParamStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Underline(true)
)

// filterCall describes the filter whose argument list holds the cursor.
type filterCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFilterCall reports whether the cursor sits in the argument list of a
// filter (after "| name:") and, if so, which argument it is on. Pipes, colons
// and commas inside quoted strings are ignored.
func detectFilterCall(input string, cursor int) filterCall {
	cursor = min(cursor, len(input))

	var (
		quote  rune
		pipe   = -1
		colon  = -1
		commas int
	)

	for i, r := range input[:cursor] {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '|':
			pipe, colon, commas = i, -1, 0
		case r == ':' && pipe >= 0 && colon < 0:
			colon = i
		case r == ',' && colon >= 0:
			commas++
		case r == '}' || r == '%':
			// Leaving a marker ends any call.
			pipe, colon, commas = -1, -1, 0
		}
	}

	if pipe < 0 || colon < 0 {
		return filterCall{}
	}

	return filterCall{
		name:     strings.TrimSpace(input[pipe+1 : colon]),
		argIndex: commas,
		inCall:   true,
	}
}

// signature returns the parameter names of a filter. Filters without
// declared parameters, such as those loaded from expr-lang programs, report
// ok false.
func signature(name string) (params []string, ok bool) {
	params, ok = filters.Params(name)

	return params, ok && len(params) > 0
}

// renderSignatureHint renders "name: p1, p2" with the parameter at
// currentArgIdx highlighted.
func renderSignatureHint(name string, params []string, currentArgIdx int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render(": "))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")

		if (variadic && currentArgIdx >= i) || (!variadic && currentArgIdx == i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	return b.String()
}
