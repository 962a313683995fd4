package directive

import "fmt"

// InvalidDirectiveError reports a line that carries the marker but an
// unrecognized mode keyword. The owning file is left unmodified.
type InvalidDirectiveError struct {
	Path string
	Line int
	Mode string
}

func (e *InvalidDirectiveError) Error() string {
	return fmt.Sprintf("%s:%d: invalid directive mode %q (want insert or replace)", e.Path, e.Line, e.Mode)
}

// UnknownPlaceholderError reports a template placeholder with no binding in
// the substitution context. The owning file is left unmodified.
type UnknownPlaceholderError struct {
	Path string
	Line int
	Name string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("%s:%d: unknown placeholder {%s}", e.Path, e.Line, e.Name)
}
