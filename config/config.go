// Package config loads and saves the TOML settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/user/video-cutter/pkg/export"
)

const (
	// LocalFile is checked in the working directory before the user config.
	LocalFile = "video-cutter.toml"
	appDir    = "video-cutter"
)

// PresetConfig overrides the quality of one export preset. Zero values keep
// the built-in setting.
type PresetConfig struct {
	CRF    int    `toml:"crf"`
	Preset string `toml:"preset"`
}

// Config holds the user settings.
type Config struct {
	// External binaries
	MpvPath    string `toml:"mpv_path"`
	FfmpegPath string `toml:"ffmpeg_path"`

	// Player
	SocketPath string  `toml:"socket_path"`
	WID        int64   `toml:"wid"`
	SeekStep   float64 `toml:"seek_step"`

	// Files
	OutputDir string `toml:"output_dir"`
	LogFile   string `toml:"log_file"`
	DBPath    string `toml:"db_path"`

	MP4  PresetConfig `toml:"mp4"`
	WebM PresetConfig `toml:"webm"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		MpvPath:    "mpv",
		FfmpegPath: "ffmpeg",
		SocketPath: "/tmp/video-cutter-mpv.sock",
		SeekStep:   5,
		MP4:        PresetConfig{CRF: 22, Preset: "slow"},
		WebM:       PresetConfig{CRF: 22, Preset: "slow"},
	}
}

// LoadConfig loads configuration from a TOML file. Keys missing from the
// file keep their defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, creating the directory.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	return f.Close()
}

// GetConfigPath returns ./video-cutter.toml if it exists, otherwise
// ~/.config/video-cutter/config.toml.
func GetConfigPath() string {
	if _, err := os.Stat(LocalFile); err == nil {
		return "./" + LocalFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./" + LocalFile
	}
	return filepath.Join(home, ".config", appDir, "config.toml")
}

// Validate rejects settings that cannot work.
func (c Config) Validate() error {
	if c.SeekStep < 0 {
		return fmt.Errorf("seek_step must not be negative, got %v", c.SeekStep)
	}
	for name, p := range map[string]PresetConfig{"mp4": c.MP4, "webm": c.WebM} {
		if p.CRF < 0 || p.CRF > 63 {
			return fmt.Errorf("%s.crf must be between 0 and 63, got %d", name, p.CRF)
		}
	}
	return nil
}

// Presets returns the export presets with this config's overrides applied.
func (c Config) Presets() map[export.Format]export.Preset {
	overrides := map[export.Format]PresetConfig{
		export.FormatMP4:  c.MP4,
		export.FormatWebM: c.WebM,
	}
	presets := make(map[export.Format]export.Preset, len(export.Presets))
	for f, p := range export.Presets {
		o := overrides[f]
		presets[f] = p.WithOverrides(o.CRF, o.Preset)
	}
	return presets
}
