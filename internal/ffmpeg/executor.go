// Package ffmpeg builds and executes ffmpeg transcode commands, reporting
// start, progress, and terminal outcomes through callbacks.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Request describes one transcode invocation. Args is the preset's output
// argument list, placed between the input and output paths in order.
// Duration is the source duration in seconds; zero disables percentage
// progress (the total is unknown).
type Request struct {
	InputPath  string
	OutputPath string
	Args       []string
	Duration   float64
}

// Events carries optional callbacks fired during a run. Nil callbacks are
// skipped. OnStart receives the full command line; OnProgress receives the
// completion percentage in [0, 100].
type Events struct {
	OnStart    func(command string)
	OnProgress func(percent float64)
}

// Run executes ffmpeg for the request and blocks until the process
// terminates. Progress is parsed from ffmpeg's machine-readable progress
// stream on stdout. A non-zero exit is returned as *ConversionError with the
// tail of stderr attached.
func Run(ctx context.Context, req Request, ev Events) error {
	args := BuildArgs(req)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &ConversionError{Msg: fmt.Sprintf("open progress pipe: %v", err)}
	}

	if ev.OnStart != nil {
		ev.OnStart("ffmpeg " + strings.Join(args, " "))
	}

	if err := cmd.Start(); err != nil {
		return &ConversionError{Msg: fmt.Sprintf("start ffmpeg: %v", err)}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		readProgress(stdout, req.Duration, ev.OnProgress)
	}()

	// All pipe reads must finish before Wait, which closes the pipe.
	<-done
	err = cmd.Wait()

	if err != nil {
		msg := err.Error()
		if ctx.Err() != nil {
			// Deadline or cancellation killed the process; the exit error
			// ("signal: killed") is less useful than the cause.
			msg = ctx.Err().Error()
		}
		return &ConversionError{Msg: msg, Detail: Tail(stderrBuf.String(), 20)}
	}
	return nil
}

// BuildArgs assembles the full ffmpeg argument list: fixed skeleton, input,
// preset arguments, output. -y overwrites existing output silently;
// -progress pipe:1 emits the key=value progress stream on stdout.
func BuildArgs(req Request) []string {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-v", "error",
		"-progress", "pipe:1",
		"-i", req.InputPath,
	}
	args = append(args, req.Args...)
	args = append(args, req.OutputPath)
	return args
}
