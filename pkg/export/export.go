package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/video-cutter/deps"
	"github.com/user/video-cutter/pkg/timeutil"
)

const (
	// StatusSaved is shown when ffmpeg exits with status 0.
	StatusSaved = "Saved"
	// StatusFailed is shown for any other outcome.
	StatusFailed = "Failed"
)

// unsafeChars matches characters not safe for filenames: / \ : * ? < > | and spaces
var unsafeChars = regexp.MustCompile(`[/\\:*?<>|\s]`)

// sanitize replaces unsafe filename characters with underscores.
func sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// BuildClipPath returns the suggested output path for a clip.
// Format: {dir}/{videoFilenameNoExt}-{hhmmss start}-{hhmmss end}{ext}
// An empty dir means the directory of the input video.
func BuildClipPath(videoPath, dir string, start, end float64, preset Preset) string {
	if dir == "" {
		dir = filepath.Dir(videoPath)
	}
	base := sanitize(strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath)))
	name := fmt.Sprintf("%s-%s-%s%s", base, timeutil.FormatCompact(start), timeutil.FormatCompact(end), preset.Extension)
	return filepath.Join(dir, name)
}

// Request is one export job.
type Request struct {
	JobID    string
	Input    string
	Start    float64
	Duration float64
	Output   string
	Preset   Preset
}

// NewRequest builds a Request for the clip [start, end) with a fresh job ID.
func NewRequest(input string, start, end float64, output string, preset Preset) Request {
	return Request{
		JobID:    uuid.NewString(),
		Input:    input,
		Start:    start,
		Duration: end - start,
		Output:   output,
		Preset:   preset,
	}
}

// Result is the outcome of running a Request.
type Result struct {
	Request Request
	Err     error
}

// OK reports whether the encoder exited with status 0.
func (r Result) OK() bool {
	return r.Err == nil
}

// Status is the user-facing outcome.
func (r Result) Status() string {
	if r.OK() {
		return StatusSaved
	}
	return StatusFailed
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// BuildArgs returns the ffmpeg arguments for req: seek before the input,
// then the clip duration, the preset's codec, quality and scale settings,
// with audio, subtitles, chapters and metadata dropped.
func BuildArgs(req Request) []string {
	p := req.Preset
	return ffmpeg.Input(req.Input, ffmpeg.KwArgs{
		"ss": formatFloat(req.Start),
	}).Output(req.Output, ffmpeg.KwArgs{
		"t":            formatFloat(req.Duration),
		"c:v":          p.VideoCodec,
		"an":           "",
		"sn":           "",
		"map_chapters": "-1",
		"map_metadata": "-1",
		"crf":          strconv.Itoa(p.CRF),
		"pix_fmt":      p.PixelFormat,
		"vf":           p.ScaleFilter(),
		"preset":       p.Speed,
	}).OverWriteOutput().GetArgs()
}

// Runner executes an external command and reports only whether it succeeded.
type Runner interface {
	Run(ctx context.Context, name string, args []string) error
}

// ExecRunner runs commands with os/exec. Stdin is left unset (so ffmpeg
// reads /dev/null and cannot steal the terminal), output is captured and
// only returned inside the error.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args []string) error {
	if err := deps.Check(deps.Ffmpeg, name); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\n%s", err, tail(output, 2048))
	}
	return nil
}

// tail keeps the last n bytes of ffmpeg's output, where the error usually is.
func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}

// ensureDir creates the output directory of path.
func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
