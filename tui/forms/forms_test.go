package forms

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveInputPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mkv")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if got, err := ResolveInputPath("  " + file + " "); err != nil || got != file {
		t.Errorf("ResolveInputPath(file) = %q, %v", got, err)
	}
	for _, bad := range []string{"", dir, filepath.Join(dir, "missing.mkv")} {
		if _, err := ResolveInputPath(bad); err == nil {
			t.Errorf("ResolveInputPath(%q) should fail", bad)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/v/a.mkv"); got != filepath.Join(home, "v", "a.mkv") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/~x"); got != "/abs/~x" {
		t.Errorf("ExpandHome changed an absolute path: %q", got)
	}
}

func TestNewSaveFormPrefillsSuggestion(t *testing.T) {
	var res SaveResult
	form := NewSaveForm("MP4", "/clips/a.mp4", &res)
	if form == nil {
		t.Fatal("nil form")
	}
	if res.Path != "/clips/a.mp4" || !res.Overwrite {
		t.Errorf("result = %+v", res)
	}
}
