package engine

import (
	"context"
	"time"

	"pkt.systems/pslog"
)

// Propagator is the public interface exposed by this module. It is safe to
// hold and use concurrently from multiple goroutines; the substitution context
// is only ever read during a run.
type Propagator interface {
	PropagateTree(ctx context.Context, root string, opts Options) (Report, error)
	PropagateFile(ctx context.Context, path string, opts Options) (FileResult, error)
}

// Options controls one propagation run.
type Options struct {
	// Vars is the substitution context: placeholder name to replacement text,
	// fixed for the whole run.
	Vars map[string]string
	// Extensions filters candidate files (e.g. ".rs", ".toml"). Empty means
	// every regular file under the root.
	Extensions []string
	// ExcludeDirs are directory names skipped during discovery (.git is always
	// skipped).
	ExcludeDirs []string
	// Parallel processes files on worker goroutines. Files share no mutable
	// state, so ordering of writes is irrelevant; the report stays sorted.
	Parallel bool
	// DryRun reports what would change without writing anything back.
	DryRun bool
	// PreRunCmd is an executable (with args) invoked before any file is
	// processed, e.g. a generator whose output the run should pick up. A
	// failure aborts the run with no file touched.
	PreRunCmd []string
	// PostRunCmd is an executable (with args) invoked once after a run that
	// modified at least one file, e.g. a formatter.
	PostRunCmd []string
	Logger     pslog.Base
}

// FileResult captures the outcome for a single candidate file.
type FileResult struct {
	Path string
	// Modified is true when the rewritten content differs from the original.
	Modified bool
	// Directives counts matched directive lines in the file.
	Directives int
}

// Report aggregates per-file results from a tree run. Files are sorted by
// path regardless of processing order.
type Report struct {
	Files        []FileResult
	Scanned      int
	Modified     int
	TotalElapsed time.Duration
}

// ModifiedPaths lists the paths rewritten during the run, in path order.
func (r Report) ModifiedPaths() []string {
	var out []string
	for _, f := range r.Files {
		if f.Modified {
			out = append(out, f.Path)
		}
	}
	return out
}

// Option modifies a Propagator at construction time.
type Option func(*propagatorConfig)

// WithLogger overrides the default logger (pslog console).
func WithLogger(logger pslog.Base) Option {
	return func(pc *propagatorConfig) { pc.logger = logger }
}

// WithWorkers caps the number of parallel file workers (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(pc *propagatorConfig) { pc.workers = n }
}

// WithVerifyScript registers a JS file evaluated once per modified file before
// its rewrite is committed. The script sees file.path, file.before, file.after
// and the vars map; throwing aborts the run with that file untouched.
func WithVerifyScript(path string) Option {
	return func(pc *propagatorConfig) { pc.verifyScript = path }
}
