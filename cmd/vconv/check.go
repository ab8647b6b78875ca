package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kasm/vconv/internal/check"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "check",
		Short:        "Verify ffmpeg/ffprobe and the encoders the presets need",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !check.Run(cmd.OutOrStdout()) {
				return errors.New("system check failed")
			}
			return nil
		},
	}
}
