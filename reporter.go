package vprop

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// WriteReportJSON writes a Report to a JSON file for CI consumers.
func WriteReportJSON(path string, rep Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteReportText writes a plain-text summary, one line per modified file.
func WriteReportText(path string, rep Report) error {
	var sb strings.Builder
	for _, f := range rep.Files {
		if f.Modified {
			fmt.Fprintf(&sb, "rewrote %s (%d directives)\n", f.Path, f.Directives)
		}
	}
	fmt.Fprintf(&sb, "scanned %d, modified %d in %s\n", rep.Scanned, rep.Modified, rep.TotalElapsed)
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// WriteReport picks the reporter function by format.
func WriteReport(format, path string, rep Report) error {
	switch strings.ToLower(format) {
	case "json", "":
		return WriteReportJSON(path, rep)
	case "text":
		return WriteReportText(path, rep)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}
