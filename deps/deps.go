package deps

import (
	"fmt"
	"os/exec"
)

// Tool is an external program video-cutter shells out to.
type Tool struct {
	Name       string
	InstallURL string
}

var (
	Mpv     = Tool{Name: "mpv", InstallURL: "https://mpv.io/installation/"}
	Ffmpeg  = Tool{Name: "ffmpeg", InstallURL: "https://ffmpeg.org/download.html"}
	Ffprobe = Tool{Name: "ffprobe", InstallURL: "https://ffmpeg.org/download.html"}
)

// All lists every tool checked by the doctor command.
var All = []Tool{Mpv, Ffmpeg, Ffprobe}

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	Binary     string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.Binary != "" && e.Binary != e.Name {
		return fmt.Sprintf("%s not found (looked for %q). Install from: %s", e.Name, e.Binary, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Check verifies that binary (a name on PATH or a path) can run as tool.
// An empty binary means the tool's own name.
func Check(tool Tool, binary string) error {
	if binary == "" {
		binary = tool.Name
	}
	if _, err := lookPath(binary); err != nil {
		return &DependencyError{
			Name:       tool.Name,
			Binary:     binary,
			InstallURL: tool.InstallURL,
		}
	}
	return nil
}

// CheckAll checks the given tools by their default names and returns one
// error per missing tool.
func CheckAll(tools ...Tool) []error {
	var errs []error
	for _, t := range tools {
		if err := Check(t, ""); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
