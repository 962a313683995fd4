package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"pkt.systems/vprop/internal/bench"
	"pkt.systems/vprop/internal/config"
)

func newBenchCmd() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench [criterion-root]",
		Short: "Summarize criterion benchmark samples into markdown tables",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchE,
	}

	addLoggingFlags(benchCmd.Flags())
	benchCmd.Flags().Bool("update", false, "Rewrite the benchmark block in the readme")
	benchCmd.Flags().String("readme", "", "Readme path for --update (default from config)")

	return benchCmd
}

func benchE(cmd *cobra.Command, args []string) error {
	root := filepath.Join("target", "criterion")
	if len(args) > 0 {
		root = args[0]
	}
	update, _ := cmd.Flags().GetBool("update")
	readme, _ := cmd.Flags().GetString("readme")

	logger := loggerFromCmd(cmd)

	grouped, err := bench.LoadTimes(root)
	if err != nil {
		logger.Fatal("load samples", "root", root, "err", err)
		return nil
	}
	if len(grouped) == 0 {
		logger.Fatal("no samples found", "root", root)
		return nil
	}

	rendered := bench.FormatMarkdown(bench.Means(grouped))
	fmt.Fprint(cmd.OutOrStdout(), rendered)

	if update {
		if readme == "" {
			cfg, err := config.LoadDir(".")
			if err != nil {
				logger.Fatal("config", "err", err)
				return nil
			}
			readme = cfg.Readme
		}
		if err := bench.UpdateReadme(readme, rendered); err != nil {
			logger.Fatal("update readme", "err", err)
			return nil
		}
		logger.Info("readme updated", "path", readme)
	}
	return nil
}
