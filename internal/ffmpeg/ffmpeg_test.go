package ffmpeg

import (
	"strings"
	"testing"
)

func TestBuildArgs_Order(t *testing.T) {
	req := Request{
		InputPath:  "input/clip.mp4",
		OutputPath: "output/clip.mp3",
		Args:       []string{"-vn", "-c:a", "libmp3lame", "-q:a", "2"},
	}
	args := BuildArgs(req)

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-i input/clip.mp4 -vn -c:a libmp3lame -q:a 2 output/clip.mp3") {
		t.Errorf("argument order wrong: %s", joined)
	}
	if args[len(args)-1] != "output/clip.mp3" {
		t.Errorf("output path must be last, got %q", args[len(args)-1])
	}
	if !strings.Contains(joined, "-y ") {
		t.Error("missing -y (silent overwrite)")
	}
	if !strings.Contains(joined, "-progress pipe:1") {
		t.Error("missing -progress pipe:1")
	}
}

func TestReadProgress(t *testing.T) {
	stream := strings.Join([]string{
		"frame=100",
		"out_time_us=30000000",
		"progress=continue",
		"out_time_us=60000000",
		"progress=continue",
		"out_time_us=120000000",
		"progress=end",
	}, "\n")

	var got []float64
	readProgress(strings.NewReader(stream), 120, func(p float64) {
		got = append(got, p)
	})

	want := []float64{25, 50, 100}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("progress[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadProgress_OutTimeOnlyAdvancesEveryBatch(t *testing.T) {
	// Some builds emit only the clock form; each batch must still move.
	stream := strings.Join([]string{
		"out_time=00:00:30.000000",
		"progress=continue",
		"out_time=00:01:00.000000",
		"progress=continue",
		"out_time=00:01:30.000000",
		"progress=continue",
		"progress=end",
	}, "\n")

	var got []float64
	readProgress(strings.NewReader(stream), 120, func(p float64) {
		got = append(got, p)
	})

	want := []float64{25, 50, 75, 100}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("progress[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadProgress_ClampsOvershoot(t *testing.T) {
	stream := "out_time_us=150000000\nprogress=continue\n"
	var got []float64
	readProgress(strings.NewReader(stream), 120, func(p float64) {
		got = append(got, p)
	})
	if len(got) != 1 || got[0] != 100 {
		t.Errorf("got %v, want [100]", got)
	}
}

func TestReadProgress_UnknownDurationSkipsPercent(t *testing.T) {
	stream := "out_time_us=30000000\nprogress=continue\nprogress=end\n"
	var got []float64
	readProgress(strings.NewReader(stream), 0, func(p float64) {
		got = append(got, p)
	})
	// Only the terminal 100 fires when the total is unknown.
	if len(got) != 1 || got[0] != 100 {
		t.Errorf("got %v, want [100]", got)
	}
}

func TestParseOutTime(t *testing.T) {
	us, ok := parseOutTime("00:02:00.500000")
	if !ok || us != 120500000 {
		t.Errorf("parseOutTime = %d, %v", us, ok)
	}
	if _, ok := parseOutTime("bogus"); ok {
		t.Error("expected parse failure")
	}
}

func TestTail(t *testing.T) {
	in := "a\nb\nc\nd"
	if got := Tail(in, 2); got != "c\nd" {
		t.Errorf("Tail = %q", got)
	}
	if got := Tail("", 2); got != "" {
		t.Errorf("Tail(empty) = %q", got)
	}
	if got := Tail("only", 5); got != "only" {
		t.Errorf("Tail(short) = %q", got)
	}
}
