package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runSet(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"set"}, args...))
	cmd.SetContext(context.Background())
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd.Execute()
}

func TestSetRewritesTree(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "Cargo.toml")
	body := "[package]\n# arrow-version:replace: version = \"{version}\"\nversion = \"55\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runSet(t, "version=56", tmp); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "[package]\n# arrow-version:replace: version = \"{version}\"\nversion = \"56\"\n"
	if string(got) != want {
		t.Fatalf("rewritten file:\n%q\nwant:\n%q", got, want)
	}
}

func TestSetSingleFileTarget(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "lib.rs")
	body := "// arrow-version:insert: // supports arrow {version}\nfn main() {}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runSet(t, "version=56", path); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "// supports arrow 56") {
		t.Fatalf("insert missing:\n%s", got)
	}
}

func TestSetDryRunWritesNothing(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "Cargo.toml")
	body := "# arrow-version:replace: version = \"{version}\"\nversion = \"55\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runSet(t, "--dry-run", "version=56", tmp); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != body {
		t.Fatalf("dry run modified file:\n%s", got)
	}
}

func TestSetWritesJSONReport(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "Cargo.toml")
	body := "# arrow-version:replace: version = \"{version}\"\nversion = \"55\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	report := filepath.Join(tmp, "report.json")

	if err := runSet(t, "version=56", "--reporter-json", report, tmp); err != nil {
		t.Fatalf("set: %v", err)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var rep struct {
		Scanned  int `json:"Scanned"`
		Modified int `json:"Modified"`
	}
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("report json: %v\n%s", err, data)
	}
	if rep.Scanned != 1 || rep.Modified != 1 {
		t.Fatalf("report counts: %+v\n%s", rep, data)
	}
}

func TestSetRejectsBareArgs(t *testing.T) {
	err := runSet(t, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "key=value") {
		t.Fatalf("expected assignment error, got %v", err)
	}
}
