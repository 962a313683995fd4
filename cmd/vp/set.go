package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
	"pkt.systems/vprop"
	"pkt.systems/vprop/internal/config"
	"pkt.systems/vprop/internal/gitstate"
)

func newSetCmd() *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set key=value [key=value...] [dir]",
		Short: "Propagate new values through directive-carrying files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  setE,
	}

	addLoggingFlags(setCmd.Flags())
	setCmd.Flags().StringSlice("ext", nil, "File extensions to consider (default from config, else .rs,.toml)")
	setCmd.Flags().StringSlice("exclude-dir", nil, "Directory names to skip (default from config, else target)")
	setCmd.Flags().Bool("parallel", false, "Process files on parallel workers")
	setCmd.Flags().Int("workers", 0, "Worker count for --parallel (default GOMAXPROCS)")
	setCmd.Flags().Bool("dry-run", false, "Report changes without writing files")
	setCmd.Flags().Bool("allow-dirty", false, "Run even when the git tree has uncommitted changes")
	setCmd.Flags().String("verify-script", "", "JS file evaluated per modified file before the rewrite is committed")
	setCmd.Flags().String("run-pre", "", "Executable (with args) to run before the propagation starts, e.g. a generator")
	setCmd.Flags().String("run-post", "", "Executable (with args) to run after a modifying run, e.g. a formatter")
	setCmd.Flags().StringP("output", "o", "", "Write report to file (see --format)")
	setCmd.Flags().StringP("format", "f", "json", "Report format: json|text")
	setCmd.Flags().String("reporter-json", "", "Write JSON report to path")

	return setCmd
}

func newLogger(structured bool, level string, flagSet bool, caller bool, w io.Writer) (pslog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	var logger pslog.Logger
	opts := pslog.Options{CallerKeyval: caller}
	if structured {
		opts.Mode = pslog.ModeStructured
	}
	logger = pslog.NewWithOptions(w, opts)

	logger = logger.LogLevel(pslog.InfoLevel)

	if flagSet {
		if lvl, ok := pslog.ParseLevel(level); ok {
			return logger.LogLevel(lvl), nil
		}
		return nil, fmt.Errorf("unknown level %q", level)
	}

	if lvl, ok := pslog.LevelFromEnv("LOG_LEVEL"); ok {
		return logger.LogLevel(lvl), nil
	}
	if lvl, ok := pslog.ParseLevel(level); ok {
		return logger.LogLevel(lvl), nil
	}
	return logger, nil
}

func setE(cmd *cobra.Command, args []string) error {
	vars := map[string]string{}
	target := "."
	dirSet := false
	for _, arg := range args {
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			if parts[0] == "" {
				return fmt.Errorf("invalid assignment %q", arg)
			}
			vars[parts[0]] = parts[1]
			continue
		}
		if dirSet {
			return fmt.Errorf("multiple directories given: %q and %q", target, arg)
		}
		target = arg
		dirSet = true
	}
	if len(vars) == 0 {
		return fmt.Errorf("at least one key=value assignment is required")
	}

	exts, _ := cmd.Flags().GetStringSlice("ext")
	excludeDirs, _ := cmd.Flags().GetStringSlice("exclude-dir")
	parallel, _ := cmd.Flags().GetBool("parallel")
	workers, _ := cmd.Flags().GetInt("workers")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	allowDirty, _ := cmd.Flags().GetBool("allow-dirty")
	verifyScript, _ := cmd.Flags().GetString("verify-script")
	preCmd, _ := cmd.Flags().GetString("run-pre")
	postCmd, _ := cmd.Flags().GetString("run-post")
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	reportJSON, _ := cmd.Flags().GetString("reporter-json")

	logger := loggerFromCmd(cmd)

	info, err := os.Stat(target)
	if err != nil {
		logger.Fatal("stat", "path", target, "err", err)
		return nil
	}

	cfg := &config.Config{}
	if info.IsDir() {
		cfg, err = config.LoadDir(target)
		if err != nil {
			logger.Fatal("config", "err", err)
			return nil
		}
	}
	if len(exts) == 0 {
		exts = cfg.Extensions
	}
	if len(excludeDirs) == 0 {
		excludeDirs = cfg.ExcludeDirs
	}
	pre := splitCmd(preCmd)
	if len(pre) == 0 {
		pre = cfg.PreRun
	}
	post := splitCmd(postCmd)
	if len(post) == 0 {
		post = cfg.PostRun
	}

	// The engine trusts its caller to have done this check.
	if !dryRun && !allowDirty && gitstate.IsRepo(cmd.Context(), target) {
		dirty, err := gitstate.Dirty(cmd.Context(), target)
		if err != nil {
			logger.Fatal("git", "err", err)
			return nil
		}
		if dirty {
			logger.Fatal("uncommitted changes in tree; commit first or pass --allow-dirty", "path", target)
			return nil
		}
	}

	engineOpts := []vprop.Option{vprop.WithLogger(logger)}
	if workers > 0 {
		engineOpts = append(engineOpts, vprop.WithWorkers(workers))
	}
	if verifyScript != "" {
		engineOpts = append(engineOpts, vprop.WithVerifyScript(verifyScript))
	}
	p, err := vprop.New(cmd.Context(), engineOpts...)
	if err != nil {
		logger.Fatal("init", "err", err)
		return nil
	}

	opts := vprop.Options{
		Vars:        vars,
		Extensions:  exts,
		ExcludeDirs: excludeDirs,
		Parallel:    parallel,
		DryRun:      dryRun,
		PreRunCmd:   pre,
		PostRunCmd:  post,
		Logger:      logger,
	}

	var rep vprop.Report
	if info.IsDir() {
		rep, err = p.PropagateTree(cmd.Context(), target, opts)
	} else {
		var res vprop.FileResult
		res, err = p.PropagateFile(cmd.Context(), target, opts)
		rep = vprop.Report{Files: []vprop.FileResult{res}, Scanned: 1}
		if res.Modified {
			rep.Modified = 1
		}
	}
	if err != nil {
		logger.Fatal("propagate", "err", err)
		return nil
	}

	if output != "" {
		if err := vprop.WriteReport(format, output, rep); err != nil {
			logger.Fatal("report", "err", err)
			return nil
		}
	}
	if reportJSON != "" {
		if err := vprop.WriteReportJSON(reportJSON, rep); err != nil {
			logger.Fatal("report", "err", err)
			return nil
		}
	}

	logger.Info("summary", "scanned", rep.Scanned, "modified", rep.Modified, "elapsed", rep.TotalElapsed.String())
	return nil
}

func splitCmd(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
