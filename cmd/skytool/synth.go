package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/skyground/internal/logger"
	"github.com/Faultbox/skyground/internal/synth"
)

func newSynthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "synth <file>",
		Short: "Write a small synthetic dataset",
		Long: `Write a two-point-per-axis dataset with closed-form radiance covering
320-400 nm. It is meant for trying the tools without the fitted dataset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := synth.Default().WriteFile(args[0]); err != nil {
				return err
			}
			logger.Info("synthetic dataset written", zap.String("path", args[0]))
			fmt.Fprintln(cmd.OutOrStdout(), args[0])
			return nil
		},
	}
}
