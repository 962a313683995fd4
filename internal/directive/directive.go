package directive

import (
	"regexp"
	"strings"
)

// Marker is the literal token that makes a comment line a directive. It also
// serves as the fast-path guard: files whose content never contains it must be
// left byte-for-byte untouched.
const Marker = "arrow-version:"

// EscapeToken denotes an intended line break in the rendered output,
// independent of the host file's own line terminator.
const EscapeToken = `\n`

// commentLeads are the comment conventions a directive may hide behind. The
// same directive grammar works across source files (//) and config files (#).
var commentLeads = []string{"//", "#"}

// Mode is the directive action applied to the line following it.
type Mode int

const (
	// ModeInsert emits the rendered lines and keeps the following original line.
	ModeInsert Mode = iota
	// ModeReplace emits the rendered lines and drops exactly one following
	// original line.
	ModeReplace
)

func (m Mode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "insert"
}

// Directive is one parsed directive line. Raw is always preserved verbatim in
// the output; only the line after it is ever a candidate for removal.
type Directive struct {
	Mode     Mode
	Template string
	Raw      string
	Line     int
}

// ParseLine matches a single line against the directive grammar: an arbitrary
// prefix, a comment lead, a space, the marker, a mode keyword, a colon, a
// single space and the template running to end of line. Ordinary lines return
// ok=false. A line that reaches the mode position with an unrecognized keyword
// is an *InvalidDirectiveError; there is no silent fallback to insert.
func ParseLine(path string, lineNo int, line string) (Directive, bool, error) {
	for _, lead := range commentLeads {
		token := lead + " " + Marker
		idx := strings.Index(line, token)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(token):]
		colon := strings.Index(rest, ":")
		if colon < 0 {
			return Directive{}, false, &InvalidDirectiveError{Path: path, Line: lineNo, Mode: rest}
		}
		var mode Mode
		switch rest[:colon] {
		case "insert":
			mode = ModeInsert
		case "replace":
			mode = ModeReplace
		default:
			return Directive{}, false, &InvalidDirectiveError{Path: path, Line: lineNo, Mode: rest[:colon]}
		}
		template := strings.TrimPrefix(rest[colon+1:], " ")
		return Directive{Mode: mode, Template: template, Raw: line, Line: lineNo}, true, nil
	}
	return Directive{}, false, nil
}

// placeholderPattern matches {name} substitution tokens. Braces around
// anything other than an identifier are ordinary template text.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Render substitutes every placeholder against vars, then splits the result on
// EscapeToken so one directive may expand to several output lines.
// Substitution is literal text replacement; no quoting is applied beyond what
// the template author wrote.
func (d Directive) Render(path string, vars map[string]string) ([]string, error) {
	missing := ""
	expanded := placeholderPattern.ReplaceAllStringFunc(d.Template, func(match string) string {
		name := match[1 : len(match)-1]
		val, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return val
	})
	if missing != "" {
		return nil, &UnknownPlaceholderError{Path: path, Line: d.Line, Name: missing}
	}
	return strings.Split(expanded, EscapeToken), nil
}

// Reconcile runs the per-file line state machine: directive lines are emitted
// verbatim followed by their rendered output, and a replace directive
// suppresses exactly the one original line after it. The suppression never
// spans more than one line even when the template rendered several; directive
// authors rely on that.
func Reconcile(path string, lines []string, vars map[string]string) ([]string, int, error) {
	out := make([]string, 0, len(lines))
	directives := 0
	carryOver := true
	for i, line := range lines {
		d, ok, err := ParseLine(path, i+1, line)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			rendered, err := d.Render(path, vars)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, d.Raw)
			out = append(out, rendered...)
			directives++
			carryOver = d.Mode != ModeReplace
			continue
		}
		if carryOver {
			out = append(out, line)
		}
		carryOver = true
	}
	return out, directives, nil
}
