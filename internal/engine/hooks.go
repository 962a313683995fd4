package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"pkt.systems/pslog"
)

// runPreCmd invokes the pre-run executable before any file is processed,
// e.g. a code generator whose output the run should pick up.
func (p *propagator) runPreCmd(ctx context.Context, cmd []string, root string, logger pslog.Base) error {
	env := []string{"VPROP_ROOT=" + root}
	return p.runHookCmd(ctx, "pre", cmd, root, env, logger)
}

// runPostCmd invokes the post-run executable once after a run that modified
// files, e.g. to re-format the tree.
func (p *propagator) runPostCmd(ctx context.Context, cmd []string, root string, summary Report, logger pslog.Base) error {
	env := []string{
		fmt.Sprintf("VPROP_MODIFIED_COUNT=%d", summary.Modified),
		"VPROP_MODIFIED=" + strings.Join(summary.ModifiedPaths(), ","),
	}
	return p.runHookCmd(ctx, "post", cmd, root, env, logger)
}

// runHookCmd runs one external hook command with stdout/stderr streamed into
// the log, line by line.
func (p *propagator) runHookCmd(ctx context.Context, phase string, cmd []string, root string, env []string, logger pslog.Base) error {
	command := exec.CommandContext(ctx, cmd[0], cmd[1:]...)
	command.Dir = root
	command.Env = append(os.Environ(), env...)

	stdout, _ := command.StdoutPipe()
	stderr, _ := command.StderrPipe()

	if err := command.Start(); err != nil {
		return fmt.Errorf("%s-run start: %w", phase, err)
	}

	var wg sync.WaitGroup
	logStream := func(stream string, rdr io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(rdr)
		for scanner.Scan() {
			logger.Info("hook", "phase", phase, "cmd", cmd[0], "stream", stream, "msg", scanner.Text())
		}
	}
	if stdout != nil {
		wg.Add(1)
		go logStream("stdout", stdout)
	}
	if stderr != nil {
		wg.Add(1)
		go logStream("stderr", stderr)
	}

	wg.Wait()
	if err := command.Wait(); err != nil {
		return fmt.Errorf("%s-run failed: %w", phase, err)
	}
	return nil
}
