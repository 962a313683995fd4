package bench

import (
	"fmt"
	"os"
	"strings"
)

const (
	startMarker = "<!-- start:benchmarks -->"
	endMarker   = "<!-- end:benchmarks -->"
)

// UpdateReadme replaces the content between the benchmark markers with
// rendered, leaving every other line untouched. Trailing whitespace on
// existing lines is trimmed, matching how the block was maintained before.
func UpdateReadme(path, rendered string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	var out []string
	active := false
	closed := true
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if !active {
			out = append(out, line)
			if strings.TrimSpace(line) == startMarker {
				active = true
				closed = false
			}
			continue
		}
		if strings.TrimSpace(line) == endMarker {
			out = append(out, strings.TrimRight(rendered, "\n"))
			out = append(out, line)
			active = false
			closed = true
		}
	}
	if !closed {
		return fmt.Errorf("%s: %q without matching %q", path, startMarker, endMarker)
	}
	return os.WriteFile(path, []byte(strings.Join(out, "\n")+"\n"), 0o644)
}
