// Package pipeline orchestrates one conversion run: preset resolution, file
// discovery, sequential per-file processing, and the end-of-run summary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/kasm/vconv/internal/config"
	"github.com/kasm/vconv/internal/display"
	"github.com/kasm/vconv/internal/ffmpeg"
	"github.com/kasm/vconv/internal/logging"
	"github.com/kasm/vconv/internal/preset"
	"github.com/kasm/vconv/internal/probe"
)

// lockFileName is the flock target inside the output directory; it keeps two
// simultaneous runs from interleaving output files.
const lockFileName = ".vconv.lock"

// ErrUnknownPreset is returned when the requested preset name is not
// registered. The run aborts before touching the input or output directories.
var ErrUnknownPreset = errors.New("unknown preset")

// DirectoryError reports that the input or output directory could not be
// created or listed. Fatal for the run.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string { return fmt.Sprintf("directory %s: %v", e.Dir, e.Err) }
func (e *DirectoryError) Unwrap() error { return e.Err }

// Prober abstracts the metadata probe so tests can substitute a fake.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.FileStats, error)
}

// Transcoder abstracts the external engine invocation.
type Transcoder interface {
	Transcode(ctx context.Context, req ffmpeg.Request, ev ffmpeg.Events) error
}

type ffprobeProber struct{}

func (ffprobeProber) Probe(ctx context.Context, path string) (*probe.FileStats, error) {
	return probe.Probe(ctx, path)
}

type ffmpegTranscoder struct{}

func (ffmpegTranscoder) Transcode(ctx context.Context, req ffmpeg.Request, ev ffmpeg.Events) error {
	return ffmpeg.Run(ctx, req, ev)
}

// Runner executes conversion runs against a fixed config and logger.
type Runner struct {
	cfg    *config.Config
	log    *logging.RunLogger
	prober Prober
	engine Transcoder

	liveProgress bool
	color        bool
}

// New returns a Runner backed by the real ffprobe/ffmpeg binaries. The live
// progress line is only rendered in sequential mode; with concurrent jobs
// there is no single current file to report.
func New(cfg *config.Config, log *logging.RunLogger) *Runner {
	return &Runner{
		cfg:          cfg,
		log:          log,
		prober:       ffprobeProber{},
		engine:       ffmpegTranscoder{},
		liveProgress: cfg.Jobs == 1,
		color:        cfg.ColorEnabled(),
	}
}

// Run processes every candidate file in the input directory with the named
// preset. Per-file failures are logged and counted, never propagated; only
// an unknown preset, an unusable directory, or a lock conflict abort the run.
func (r *Runner) Run(ctx context.Context, presetName string) (RunStats, error) {
	var stats RunStats

	p, ok := preset.Lookup(presetName)
	if !ok {
		r.log.Log("Unknown preset %q. Available presets: %s",
			presetName, strings.Join(preset.Names(), ", "))
		return stats, ErrUnknownPreset
	}

	for _, dir := range []string{r.cfg.InputDir, r.cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			r.log.Log("Cannot create directory %s: %v", dir, err)
			return stats, &DirectoryError{Dir: dir, Err: err}
		}
	}

	lock := flock.New(filepath.Join(r.cfg.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		r.log.Log("Cannot acquire run lock in %s: %v", r.cfg.OutputDir, err)
		return stats, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		r.log.Log("Another conversion run is already writing to %s", r.cfg.OutputDir)
		return stats, errors.New("output directory locked by another run")
	}
	defer func() { _ = lock.Unlock() }()

	files, err := Discover(r.cfg.InputDir)
	if err != nil {
		r.log.Log("Cannot list input directory %s: %v", r.cfg.InputDir, err)
		return stats, &DirectoryError{Dir: r.cfg.InputDir, Err: err}
	}

	if len(files) == 0 {
		r.log.Log("No video files found in %s", r.cfg.InputDir)
		return stats, nil
	}

	stats.Candidates = len(files)
	r.log.Log("Starting session %s: preset %q, %d file(s)", uuid.NewString(), p.Name, len(files))
	if r.cfg.Verbose {
		r.log.Log("Input: %s, output: %s, timeout: %ds, jobs: %d",
			r.cfg.InputDir, r.cfg.OutputDir, r.cfg.TimeoutSeconds, r.cfg.Jobs)
	}

	jobs := make([]*Job, len(files))
	for i, name := range files {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		jobs[i] = &Job{
			FileName:   name,
			InputPath:  filepath.Join(r.cfg.InputDir, name),
			OutputPath: filepath.Join(r.cfg.OutputDir, stem+p.OutputExt),
		}
	}

	if r.cfg.Jobs > 1 {
		r.runConcurrent(ctx, p, jobs)
	} else {
		for _, job := range jobs {
			if ctx.Err() != nil {
				break
			}
			r.processJob(ctx, p, job)
		}
	}

	for _, j := range jobs {
		switch j.Outcome {
		case OutcomeSuccess:
			stats.Succeeded++
		case OutcomeProbeFailed, OutcomeConversionFailed:
			stats.Failed++
		}
	}
	if processed := stats.Succeeded + stats.Failed; processed < len(jobs) {
		r.log.Log("Interrupted: %d file(s) not processed", len(jobs)-processed)
	}

	r.logSummary(stats, jobs)
	return stats, nil
}

// runConcurrent dispatches jobs through a bounded errgroup. Each job keeps
// the full per-file outcome and logging contract; the logger serializes
// appends, so lines from different jobs interleave whole, never partially.
func (r *Runner) runConcurrent(ctx context.Context, p preset.Preset, jobs []*Job) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Jobs)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			r.processJob(gctx, p, job)
			return nil
		})
	}
	_ = g.Wait()
}

// processJob handles one file: probe source → convert → probe target → log
// outcome. Every failure path resolves the job's outcome locally so the run
// loop can simply move to the next file.
func (r *Runner) processJob(ctx context.Context, p preset.Preset, job *Job) {
	r.log.Log("Processing %s", job.FileName)

	src, err := r.prober.Probe(ctx, job.InputPath)
	if err != nil {
		r.log.Log("Probe failed for %s: %v", job.FileName, err)
		job.Outcome = OutcomeProbeFailed
		job.Err = err
		return
	}
	job.Source = src
	r.log.Log("  Source: %s (%s bytes), duration %s, video %s, audio %s",
		display.FormatBytes(src.Size), humanize.Comma(src.Size),
		display.FormatDuration(src.Duration),
		streamLabel(src.Video), streamLabel(src.Audio))

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if t := r.cfg.FileTimeout(); t > 0 {
		runCtx, cancel = context.WithTimeout(ctx, t)
	}
	defer cancel()

	ev := ffmpeg.Events{
		OnStart: func(command string) { r.log.Console("  $ %s", command) },
	}
	var bar *progressbar.ProgressBar
	if r.liveProgress {
		bar = progressbar.NewOptions(100,
			progressbar.OptionSetDescription(job.FileName),
			progressbar.OptionSetWriter(os.Stdout),
			progressbar.OptionEnableColorCodes(r.color),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
		ev.OnProgress = func(pct float64) { _ = bar.Set(int(pct)) }
	}

	job.Started = time.Now()
	err = r.engine.Transcode(runCtx, ffmpeg.Request{
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
		Args:       p.Args,
		Duration:   src.Duration,
	}, ev)
	job.Finished = time.Now()
	if bar != nil {
		_ = bar.Clear()
	}

	r.log.Log("  Finished in %s", display.FormatSeconds(job.Elapsed()))

	if err != nil {
		r.log.Log("  Conversion failed for %s: %v", job.FileName, err)
		var cerr *ffmpeg.ConversionError
		if errors.As(err, &cerr) && cerr.Detail != "" {
			for _, line := range strings.Split(cerr.Detail, "\n") {
				r.log.Log("    %s", line)
			}
		}
		_ = os.Remove(job.OutputPath)
		job.Outcome = OutcomeConversionFailed
		job.Err = err
		return
	}

	// The job is successful regardless of whether the target probe works;
	// output stats are diagnostic only.
	job.Outcome = OutcomeSuccess

	tgt, err := r.prober.Probe(ctx, job.OutputPath)
	if err != nil {
		r.log.Log("  Converted %s but output stats unavailable: %v", job.FileName, err)
		return
	}
	job.Target = tgt
	r.log.Log("  Target: %s (%s bytes), video %s, audio %s, size change %s",
		display.FormatBytes(tgt.Size), humanize.Comma(tgt.Size),
		streamLabel(tgt.Video), streamLabel(tgt.Audio),
		display.FormatSizeChange(src.Size, tgt.Size))
}

// streamLabel renders "codec @ rate" for a stream, or "N/A" when the file
// has no stream of that type.
func streamLabel(s *probe.StreamStats) string {
	if s == nil {
		return "N/A"
	}
	codec := s.Codec
	if codec == "" {
		codec = "unknown"
	}
	return codec + " @ " + display.FormatBitrate(s.BitRate)
}

func (r *Runner) logSummary(stats RunStats, jobs []*Job) {
	r.log.Log("Done: %d succeeded, %d failed", stats.Succeeded, stats.Failed)
	if r.log.Path() != "" {
		r.log.Log("Log file: %s", r.log.Path())
	}

	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		elapsed := ""
		if d := j.Elapsed(); d > 0 {
			elapsed = display.FormatSeconds(d)
		}
		delta := ""
		if j.Source != nil && j.Target != nil {
			delta = display.FormatSizeChange(j.Source.Size, j.Target.Size)
		}
		rows = append(rows, []string{j.FileName, j.Outcome.String(), elapsed, delta})
	}
	r.log.Console("%s", display.RenderTable(
		[]string{"File", "Result", "Time", "Size change"},
		rows,
		[]bool{false, false, true, true},
	))
}
