package main

import (
	"github.com/spf13/cobra"
	"pkt.systems/vprop/internal/config"
	"pkt.systems/vprop/internal/workflow"
)

func newWorkflowCmd() *cobra.Command {
	wfCmd := &cobra.Command{
		Use:   "workflow [--out dir]",
		Short: "Generate the CI workflow descriptor from the feature matrix",
		Args:  cobra.NoArgs,
		RunE:  workflowE,
	}

	addLoggingFlags(wfCmd.Flags())
	wfCmd.Flags().String("out", ".", "Project directory; config is read there and .github/workflows written under it")
	return wfCmd
}

func workflowE(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		dir = "."
	}
	logger := loggerFromCmd(cmd)

	cfg, err := config.LoadDir(dir)
	if err != nil {
		logger.Fatal("config", "err", err)
		return nil
	}
	path, err := workflow.Write(dir, cfg)
	if err != nil {
		logger.Fatal("workflow", "err", err)
		return nil
	}
	logger.Info("workflow written", "path", path, "jobs", max(len(cfg.Features), 1))
	return nil
}
