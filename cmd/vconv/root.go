package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kasm/vconv/internal/config"
	"github.com/kasm/vconv/internal/logging"
	"github.com/kasm/vconv/internal/pipeline"
	"github.com/kasm/vconv/internal/preset"
)

func newRootCommand() *cobra.Command {
	var (
		configPath string
		inputDir   string
		outputDir  string
		logDir     string
		timeout    int
		jobs       int
		colorMode  string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "vconv <preset>",
		Short:         "Batch video converter driven by named ffmpeg presets",
		Long:          longHelp(),
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// No preset requested: print usage and the preset table
				// without creating the log file or touching directories.
				return cmd.Help()
			}

			cfg, _, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags override the file only when actually set, so file
			// values survive unrelated invocations.
			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.InputDir = inputDir
			}
			if flags.Changed("output") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("log-dir") {
				cfg.LogDir = logDir
			}
			if flags.Changed("timeout") {
				cfg.TimeoutSeconds = timeout
			}
			if flags.Changed("jobs") {
				cfg.Jobs = jobs
			}
			if flags.Changed("color") {
				cfg.ColorMode = config.ColorMode(colorMode)
			}
			if flags.Changed("verbose") {
				cfg.Verbose = verbose
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Computed once per process; the path holds even if the date
			// rolls over during a long batch.
			cfg.LogFilePath = filepath.Join(cfg.LogDir, logging.FileName(time.Now()))
			if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
				return fmt.Errorf("create log directory: %w", err)
			}

			log := logging.New(cfg.LogFilePath, os.Stdout, os.Stderr)
			defer log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stats, err := pipeline.New(&cfg, log).Run(ctx, args[0])
			if err != nil {
				if errors.Is(err, pipeline.ErrUnknownPreset) {
					// Already reported through the run logger.
					return errRunFailed
				}
				return err
			}
			if stats.Failed > 0 {
				return errRunFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "Configuration file (default: ./"+config.DefaultFileName+" if present)")
	f.StringVarP(&inputDir, "input", "i", "", "Input directory (default: input)")
	f.StringVarP(&outputDir, "output", "o", "", "Output directory (default: output)")
	f.StringVar(&logDir, "log-dir", "", "Directory for the per-day log file (default: .)")
	f.IntVarP(&timeout, "timeout", "t", 0, "Per-file engine timeout in seconds (0 = none)")
	f.IntVarP(&jobs, "jobs", "j", 1, "Concurrent conversions (1 = sequential, the default)")
	f.StringVar(&colorMode, "color", "auto", "Color output: auto | always | never")
	f.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(newCheckCommand())
	return cmd
}

// longHelp builds the help text, including the preset table so a bare
// `vconv` invocation shows every available preset name.
func longHelp() string {
	var b strings.Builder
	b.WriteString("vconv converts every video file in the input directory using a named\n")
	b.WriteString("ffmpeg preset, writing results to the output directory and logging the\n")
	b.WriteString("run to a per-day process log.\n\nPresets:\n")
	for _, p := range preset.All() {
		fmt.Fprintf(&b, "  %-15s %s\n", p.Name, p.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
