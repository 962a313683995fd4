// Package gitstate answers the one version-control question the CLI needs:
// does the working tree carry uncommitted changes? The propagation engine
// itself never talks to git.
package gitstate

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// IsRepo reports whether dir is inside a git working tree.
func IsRepo(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	out, err := cmd.Output()
	return err == nil && bytes.HasPrefix(bytes.TrimSpace(out), []byte("true"))
}

// Dirty reports whether the working tree at dir has uncommitted modifications.
func Dirty(ctx context.Context, dir string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}
