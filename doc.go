// Package vprop propagates a parameter value (typically a version identifier)
// through a source tree by expanding machine-readable directives embedded in
// ordinary comments.
//
// A directive is a comment line of the form
//
//	// arrow-version:insert: "arrow-{version}",
//	# arrow-version:replace: arrow-{version}
//
// insert keeps the following original line, replace drops exactly one. Files
// without the marker token are never touched.
//
// Quick start:
//
//	ctx := context.Background()
//	p, _ := vprop.New(ctx)
//	rep, _ := p.PropagateTree(ctx, "serde_arrow", vprop.Options{
//		Vars:       map[string]string{"version": "56"},
//		Extensions: []string{".rs", ".toml"},
//	})
//	for _, path := range rep.ModifiedPaths() {
//		fmt.Println("rewrote", path)
//	}
//
// Rewrite a single file:
//
//	res, _ := p.PropagateFile(ctx, "Cargo.toml", vprop.Options{
//		Vars: map[string]string{"version": "56"},
//	})
//
// Parallel runs and post-processing:
//
//	rep, _ := p.PropagateTree(ctx, ".", vprop.Options{
//		Vars:       map[string]string{"version": "56"},
//		Parallel:   true,
//		PostRunCmd: []string{"cargo", "fmt"},
//	})
//
// A JS verify hook can veto individual rewrites:
//
//	p, _ := vprop.New(ctx, vprop.WithVerifyScript("verify.js"))
//
// The SDK keeps concrete types unexported; interaction happens through the
// Propagator interface plus Options and the report structs defined in this
// package.
package vprop
