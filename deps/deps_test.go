package deps

import (
	"errors"
	"strings"
	"testing"
)

func stubLookPath(t *testing.T, present ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(file string) (string, error) {
		for _, p := range present {
			if p == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestCheckFound(t *testing.T) {
	stubLookPath(t, "mpv")
	if err := Check(Mpv, ""); err != nil {
		t.Fatalf("expected mpv to be found, got %v", err)
	}
}

func TestCheckMissingCustomBinary(t *testing.T) {
	stubLookPath(t, "ffmpeg")
	err := Check(Ffmpeg, "/opt/ffmpeg/bin/ffmpeg")
	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected *DependencyError, got %v", err)
	}
	if !strings.Contains(err.Error(), "/opt/ffmpeg/bin/ffmpeg") {
		t.Errorf("error should name the binary, got %q", err.Error())
	}
}

func TestCheckAll(t *testing.T) {
	stubLookPath(t, "ffmpeg")
	errs := CheckAll(All...)
	if len(errs) != 2 {
		t.Fatalf("expected 2 missing tools, got %d: %v", len(errs), errs)
	}
}
