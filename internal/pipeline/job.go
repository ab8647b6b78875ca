package pipeline

import (
	"time"

	"github.com/kasm/vconv/internal/probe"
)

// Outcome is the terminal state of one conversion job.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSuccess
	OutcomeProbeFailed
	OutcomeConversionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeProbeFailed:
		return "probe failed"
	case OutcomeConversionFailed:
		return "conversion failed"
	default:
		return "pending"
	}
}

// Job is one file's complete processing lifecycle within a run. The output
// path's extension comes from the active preset, never from the input file.
type Job struct {
	FileName   string
	InputPath  string
	OutputPath string

	Outcome Outcome
	Err     error

	Source *probe.FileStats
	Target *probe.FileStats // nil when the job failed or the target probe did

	Started  time.Time
	Finished time.Time
}

// Elapsed returns the engine invocation wall time, or zero if the job never
// reached the engine.
func (j *Job) Elapsed() time.Duration {
	if j.Started.IsZero() || j.Finished.IsZero() {
		return 0
	}
	return j.Finished.Sub(j.Started)
}

// RunStats accumulates job outcomes across one run. For a completed run,
// Succeeded+Failed equals Candidates.
type RunStats struct {
	Candidates int
	Succeeded  int
	Failed     int
}
