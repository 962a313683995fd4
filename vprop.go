package vprop

import (
	"context"

	"pkt.systems/version"
	"pkt.systems/vprop/internal/engine"
)

// Public type aliases to engine package

// Propagator exposes methods to propagate a substitution context through a
// file or a file tree.
type (
	Propagator = engine.Propagator
	// Options configure a single propagation run.
	Options = engine.Options
	// FileResult captures the outcome for a single candidate file.
	FileResult = engine.FileResult
	// Report aggregates file results from a tree run.
	Report = engine.Report
)

// Option tweaks propagator construction.
type Option = engine.Option

var (
	// WithLogger supplies a custom pslog logger.
	WithLogger = engine.WithLogger
	// WithWorkers caps the number of parallel file workers.
	WithWorkers = engine.WithWorkers
	// WithVerifyScript registers a JS hook evaluated per modified file before
	// the rewrite is committed.
	WithVerifyScript = engine.WithVerifyScript
)

// New constructs a Propagator instance.
func New(ctx context.Context, opts ...Option) (Propagator, error) {
	return engine.New(ctx, opts...)
}

// Version returns the current module version (best effort).
func Version() string {
	return moduleVersion(modulePath)
}

const modulePath = "pkt.systems/vprop"

var moduleVersion = version.ModuleVersion
