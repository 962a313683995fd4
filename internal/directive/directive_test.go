package directive

import (
	"errors"
	"testing"
)

func TestParseLineSlashComment(t *testing.T) {
	line := `    // arrow-version:insert: "arrow-{version}",`
	d, ok, err := ParseLine("Cargo.toml", 7, line)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !ok {
		t.Fatalf("expected directive match")
	}
	if d.Mode != ModeInsert {
		t.Fatalf("mode %v", d.Mode)
	}
	if d.Template != `"arrow-{version}",` {
		t.Fatalf("template %q", d.Template)
	}
	if d.Raw != line {
		t.Fatalf("raw not preserved: %q", d.Raw)
	}
	if d.Line != 7 {
		t.Fatalf("line %d", d.Line)
	}
}

func TestParseLineHashComment(t *testing.T) {
	d, ok, err := ParseLine("x.toml", 1, `# arrow-version:replace: arrow-{version}`)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !ok || d.Mode != ModeReplace {
		t.Fatalf("expected replace directive, got ok=%v mode=%v", ok, d.Mode)
	}
	if d.Template != "arrow-{version}" {
		t.Fatalf("template %q", d.Template)
	}
}

func TestParseLineTemplateRunsToEndOfLine(t *testing.T) {
	d, ok, err := ParseLine("f.rs", 1, `// arrow-version:replace: use arrow_json_{version}::ReaderBuilder; // trailing`)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if d.Template != `use arrow_json_{version}::ReaderBuilder; // trailing` {
		t.Fatalf("template %q", d.Template)
	}
}

func TestParseLineOrdinaryContent(t *testing.T) {
	for _, line := range []string{
		"",
		"use arrow_json_56::ReaderBuilder;",
		"// a normal comment",
		"# arrow-version mentioned without the marker colon form",
	} {
		_, ok, err := ParseLine("f.rs", 1, line)
		if err != nil {
			t.Fatalf("line %q: unexpected err %v", line, err)
		}
		if ok {
			t.Fatalf("line %q: unexpected match", line)
		}
	}
}

func TestParseLineUnknownMode(t *testing.T) {
	_, _, err := ParseLine("f.rs", 12, `// arrow-version:delete: gone`)
	if err == nil {
		t.Fatalf("expected InvalidDirective error")
	}
	var ide *InvalidDirectiveError
	if !errors.As(err, &ide) {
		t.Fatalf("wrong error type: %v", err)
	}
	if ide.Path != "f.rs" || ide.Line != 12 || ide.Mode != "delete" {
		t.Fatalf("error fields: %+v", ide)
	}
}

func TestParseLineMissingModeColon(t *testing.T) {
	_, _, err := ParseLine("f.rs", 3, `// arrow-version:insert no colon`)
	var ide *InvalidDirectiveError
	if !errors.As(err, &ide) {
		t.Fatalf("expected InvalidDirective, got %v", err)
	}
}
