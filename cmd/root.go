package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/video-cutter/bridge"
	"github.com/user/video-cutter/config"
	"github.com/user/video-cutter/cutter"
	"github.com/user/video-cutter/db"
	"github.com/user/video-cutter/logging"
	"github.com/user/video-cutter/mpv"
	"github.com/user/video-cutter/pkg/export"
	"github.com/user/video-cutter/tui"
)

var Version = "0.1.0"

// Persistent flags.
var (
	cfgFile string
	debug   bool
	logFile string
)

const (
	connectAttempts = 50
	connectInterval = 100 * time.Millisecond
)

var rootCmd = &cobra.Command{
	Use:   "video-cutter [video-file]",
	Short: "Cut clips out of videos with mpv and ffmpeg",
	Long: `video-cutter plays a video in mpv and lets you mark a clip range from the
terminal, then exports the clip with ffmpeg.

Features:
  - Seek, frame step and mark clip start and end while watching
  - Export the clip as MP4 (H.264) or WebM (VP9), one export per format at a time
  - Export history stored in SQLite
  - Headless export for scripts`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlayer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("video-cutter version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./video-cutter.toml or ~/.config/video-cutter/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (default ~/.local/share/video-cutter/video-cutter.log)")

	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configPath is the --config flag or the default lookup.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.GetConfigPath()
}

// loadSettings reads the config file and builds the logger.
func loadSettings() (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath())
	if err != nil {
		return cfg, nil, err
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if cfg.LogFile == "" {
		if p, err := logging.DefaultPath(); err == nil {
			cfg.LogFile = p
		}
	}
	logger, err := logging.New(cfg.LogFile, debug)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

// resolveVideo checks that path names an existing file and makes it absolute.
func resolveVideo(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", absPath)
	}
	return absPath, nil
}

// openHistory opens the export history and fails leftover running rows.
// History is optional: on error the exports still run, unrecorded.
func openHistory(cfg config.Config, logger *zap.Logger) (*db.History, func()) {
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("export history disabled", zap.Error(err))
		return nil, func() {}
	}
	if n, err := db.MarkStaleExports(conn, time.Now()); err != nil {
		logger.Warn("marking stale exports", zap.Error(err))
	} else if n > 0 {
		logger.Info("marked stale exports as failed", zap.Int64("count", n))
	}
	return db.NewHistory(conn), func() { conn.Close() }
}

func newInvoker(cfg config.Config, logger *zap.Logger) (*export.Invoker, func()) {
	inv := export.NewInvoker(cfg.FfmpegPath, nil, logger.Named("export"))
	history, closeHistory := openHistory(cfg, logger)
	if history != nil {
		inv.SetRecorder(history)
	}
	return inv, closeHistory
}

func runPlayer(cmd *cobra.Command, args []string) error {
	var videoPath string
	if len(args) == 1 {
		p, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		videoPath = p
	}

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer logger.Sync()

	process, err := mpv.LaunchMpv(mpv.LaunchOptions{
		Binary:     cfg.MpvPath,
		SocketPath: cfg.SocketPath,
		WID:        cfg.WID,
	})
	if err != nil {
		return fmt.Errorf("failed to launch mpv: %w", err)
	}
	logger.Info("mpv started", zap.Int("pid", process.Process.Pid), zap.String("socket", cfg.SocketPath))

	wakeup := bridge.NewWakeup()
	client := mpv.NewClient(cfg.SocketPath)
	client.SetLogger(logger.Named("mpv"))
	client.SetWakeupCallback(wakeup.Notify)

	if err := client.ConnectWithRetry(connectAttempts, connectInterval); err != nil {
		process.Process.Kill()
		return fmt.Errorf("failed to connect to mpv: %w", err)
	}
	for _, name := range cutter.Properties {
		if err := client.ObserveProperty(name); err != nil {
			client.Terminate()
			process.Process.Kill()
			return fmt.Errorf("failed to observe %s: %w", name, err)
		}
	}

	inv, closeHistory := newInvoker(cfg, logger)
	defer closeHistory()

	c := cutter.New(cutter.NewHandle(client), cutter.Options{
		SeekStep: cfg.SeekStep,
		Presets:  cfg.Presets(),
		Guard:    inv,
		Logger:   logger.Named("cutter"),
	})

	err = tui.Run(tui.Options{
		Cutter:      c,
		Wakeup:      wakeup,
		Invoker:     inv,
		Config:      cfg,
		ConfigPath:  configPath(),
		InitialFile: videoPath,
		Logger:      logger.Named("tui"),
	})

	// The UI sent quit; kill mpv if it does not exit.
	done := make(chan struct{})
	go func() {
		process.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		process.Process.Kill()
	}
	return err
}
