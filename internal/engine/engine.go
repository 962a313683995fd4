package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"
	"pkt.systems/vprop/internal/directive"
)

// propagator implements Propagator.
type propagator struct {
	logger       pslog.Base
	workers      int
	verifyScript string
}

type propagatorConfig struct {
	logger       pslog.Base
	workers      int
	verifyScript string
}

// New constructs a Propagator instance with optional configuration.
func New(ctx context.Context, opts ...Option) (Propagator, error) {
	if ctx == nil {
		return nil, errors.New("nil context")
	}
	cfg := propagatorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = pslog.New(os.Stdout)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}
	return &propagator{
		logger:       cfg.logger,
		workers:      cfg.workers,
		verifyScript: cfg.verifyScript,
	}, nil
}

// PropagateTree discovers candidate files under root and rewrites every file
// whose directives produce different content. The run stops at the first
// error; files rewritten before that point stay rewritten.
func (p *propagator) PropagateTree(ctx context.Context, root string, opts Options) (Report, error) {
	start := time.Now()
	logger := p.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	if len(opts.PreRunCmd) > 0 && !opts.DryRun {
		if err := p.runPreCmd(ctx, opts.PreRunCmd, root, logger); err != nil {
			return Report{}, err
		}
	}

	paths, err := discoverFiles(root, opts.Extensions, opts.ExcludeDirs)
	if err != nil {
		return Report{}, err
	}
	sort.Strings(paths)

	results := make([]FileResult, len(paths))
	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers)
		for i, path := range paths {
			g.Go(func() error {
				res, err := p.propagateOne(gctx, path, opts, logger)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Report{}, err
		}
	} else {
		for i, path := range paths {
			res, err := p.propagateOne(ctx, path, opts, logger)
			if err != nil {
				return Report{}, err
			}
			results[i] = res
		}
	}

	summary := Report{Files: results, Scanned: len(results)}
	for _, res := range results {
		if res.Modified {
			summary.Modified++
		}
	}
	summary.TotalElapsed = time.Since(start)

	if summary.Modified > 0 && len(opts.PostRunCmd) > 0 && !opts.DryRun {
		if err := p.runPostCmd(ctx, opts.PostRunCmd, root, summary, logger); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// PropagateFile rewrites a single file in place. The file is read once,
// transformed in memory and written back at most once.
func (p *propagator) PropagateFile(ctx context.Context, path string, opts Options) (FileResult, error) {
	logger := p.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	return p.propagateOne(ctx, path, opts, logger)
}

func (p *propagator) propagateOne(ctx context.Context, path string, opts Options, logger pslog.Base) (FileResult, error) {
	select {
	case <-ctx.Done():
		return FileResult{}, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	// Fast-path guard: without the marker the file is never rewritten, not
	// even as a no-op, so unrelated files keep their exact bytes.
	if !bytes.Contains(data, []byte(directive.Marker)) {
		return FileResult{Path: path}, nil
	}

	content := string(data)
	terminator := "\n"
	if strings.Contains(content, "\r\n") {
		terminator = "\r\n"
	}
	trailing := strings.HasSuffix(content, terminator)
	body := content
	if trailing {
		body = strings.TrimSuffix(content, terminator)
	}
	lines := strings.Split(body, terminator)

	out, directives, err := directive.Reconcile(path, lines, opts.Vars)
	if err != nil {
		return FileResult{}, err
	}

	rendered := strings.Join(out, terminator)
	if trailing {
		rendered += terminator
	}
	res := FileResult{Path: path, Modified: rendered != content, Directives: directives}
	if !res.Modified {
		logger.Debug("unchanged", "path", path, "directives", directives)
		return res, nil
	}

	if p.verifyScript != "" {
		if err := runVerifyScript(p.verifyScript, path, content, rendered, opts.Vars, logger); err != nil {
			return FileResult{}, err
		}
	}
	if opts.DryRun {
		logger.Info("would rewrite", "path", path, "directives", directives)
		return res, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := writeFileAtomic(path, []byte(rendered), info.Mode().Perm()); err != nil {
		return FileResult{}, fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("rewrite", "path", path, "directives", directives)
	return res, nil
}
