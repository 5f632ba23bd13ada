package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/video-cutter/pkg/export"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
seek_step = 2.5
output_dir = "/clips"

[webm]
crf = 30
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SeekStep != 2.5 || cfg.OutputDir != "/clips" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.MpvPath != "mpv" || cfg.MP4.CRF != 22 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.WebM.CRF != 30 || cfg.WebM.Preset != "slow" {
		t.Errorf("webm = %+v", cfg.WebM)
	}

	presets := cfg.Presets()
	if presets[export.FormatWebM].CRF != 30 || presets[export.FormatMP4].CRF != 22 {
		t.Errorf("presets = %+v", presets)
	}
	if export.Presets[export.FormatWebM].CRF != 22 {
		t.Error("Presets modified the built-in table")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"syntax":   "seek_step = = 1",
		"crf":      "[mp4]\ncrf = 99",
		"negative": "seek_step = -1",
	} {
		path := filepath.Join(dir, name+".toml")
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if err == nil {
			t.Errorf("%s: expected error", name)
		}
		if cfg != DefaultConfig() {
			t.Errorf("%s: expected defaults on error", name)
		}
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.WID = 4242
	cfg.MP4.Preset = "veryfast"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}
