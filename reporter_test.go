package vprop

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleReport() Report {
	return Report{
		Files: []FileResult{
			{Path: "Cargo.toml", Modified: true, Directives: 2},
			{Path: "src/lib.rs", Modified: false, Directives: 0},
		},
		Scanned:      2,
		Modified:     1,
		TotalElapsed: 42 * time.Millisecond,
	}
}

func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteReportJSON(path, sampleReport()); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("round trip: %v\n%s", err, data)
	}
	if rep.Scanned != 2 || rep.Modified != 1 || len(rep.Files) != 2 {
		t.Fatalf("round trip mismatch: %+v", rep)
	}
	if rep.Files[0].Path != "Cargo.toml" || !rep.Files[0].Modified {
		t.Fatalf("file entry: %+v", rep.Files[0])
	}
}

func TestWriteReportText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := WriteReportText(path, sampleReport()); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "rewrote Cargo.toml (2 directives)") {
		t.Fatalf("missing rewrite line:\n%s", out)
	}
	if strings.Contains(out, "src/lib.rs") {
		t.Fatalf("unmodified file should not be listed:\n%s", out)
	}
	if !strings.Contains(out, "scanned 2, modified 1") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

func TestWriteReportFormatDispatch(t *testing.T) {
	dir := t.TempDir()

	if err := WriteReport("text", filepath.Join(dir, "a.txt"), sampleReport()); err != nil {
		t.Fatalf("text: %v", err)
	}
	if err := WriteReport("", filepath.Join(dir, "b.json"), sampleReport()); err != nil {
		t.Fatalf("default json: %v", err)
	}
	if err := WriteReport("xml", filepath.Join(dir, "c"), sampleReport()); err == nil {
		t.Fatal("expected unknown format error")
	}
}
