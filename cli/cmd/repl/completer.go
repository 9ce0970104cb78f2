package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/syntax"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "vars", "filters", "set", "unset", "edit", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. Hyphens and question marks are excluded because template
// identifiers may contain them (e.g., my-var, empty?).
func isWordBoundary(r rune) bool {
	switch r {
	case '.', '[', ']', '(', ')',
		'|', ':', ',', '=',
		'{', '}', '%',
		'\'', '"':
		return true
	}

	return unicode.IsSpace(r)
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// between dots, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// position classifies what the word at the cursor names.
type position int

const (
	posVariable position = iota // start of an expression or a filter argument
	posMember                   // after a dot in a variable path
	posFilter                   // after a pipe
	posTag                      // first word of a tag
)

// wordPosition inspects the text before wordStart to decide what kind of
// name belongs there.
func wordPosition(input string, wordStart int) position {
	prefix := input[:wordStart]

	if strings.HasSuffix(prefix, ".") {
		return posMember
	}

	trimmed := strings.TrimRightFunc(prefix, unicode.IsSpace)

	switch {
	case strings.HasSuffix(trimmed, "|"):
		return posFilter
	case strings.HasSuffix(trimmed, syntax.OpenTag):
		return posTag
	}

	return posVariable
}

// parentPath returns the dot-separated variable path leading up to the
// current word. For input "x | f: user.address.ci" with the word "ci", the
// parent path is "user.address". Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	prefix := strings.TrimRight(input[:wordStart], ".")
	if prefix == "" {
		return ""
	}

	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return prefix[pos:]
}

// members returns the names that may follow the value found at path in
// globals.
func members(globals map[string]any, path string) []string {
	if path == "" {
		return nil
	}

	segments := strings.Split(path, ".")

	value, ok := globals[segments[0]]
	if !ok {
		return nil
	}

	for _, seg := range segments[1:] {
		var err error

		value, err = interp.Index(value, seg)
		if err != nil {
			return nil
		}
	}

	switch v := value.(type) {
	case map[string]any:
		return slices.Sorted(maps.Keys(v))
	case []any:
		return []string{interp.FieldFirst, interp.FieldLast, interp.FieldSize}
	case string:
		return []string{interp.FieldSize}
	}

	return nil
}

// candidates returns the completion candidates for the word at wordStart.
func (m model) wordCandidates(input string, wordStart int) []string {
	if m.mode == modeCtrl {
		return ctrlCommands
	}

	switch wordPosition(input, wordStart) {
	case posMember:
		return members(m.globals, parentPath(input, wordStart))

	case posFilter:
		return slices.Sorted(maps.Keys(m.filters))

	case posTag:
		names := m.registry.TagNames()
		for _, b := range m.registry.BlockNames() {
			names = append(names, b, "end"+b)
		}

		return names
	}

	return slices.Sorted(maps.Keys(m.globals))
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word yields no matches except after a dot or a pipe,
// where every candidate is offered so the user can browse them.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	candidates = m.wordCandidates(input, wordStart)
	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	if word == "" {
		if m.mode == modeCtrl {
			return nil, nil, wordStart, wordEnd
		}

		if pos := wordPosition(input, wordStart); pos != posMember && pos != posFilter {
			return nil, nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, candidates, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
