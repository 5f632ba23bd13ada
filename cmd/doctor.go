package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/video-cutter/config"
	"github.com/user/video-cutter/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long: `Check that the external programs (mpv, ffmpeg, ffprobe) are installed
and available. mpv and ffmpeg are looked up as configured.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath())
		if err != nil {
			fmt.Printf("✗ config: %v\n", err)
		}

		fmt.Println("Checking dependencies...")
		fmt.Println()

		binaries := map[string]string{
			deps.Mpv.Name:    cfg.MpvPath,
			deps.Ffmpeg.Name: cfg.FfmpegPath,
		}

		allGood := err == nil
		for _, tool := range deps.All {
			if err := deps.Check(tool, binaries[tool.Name]); err != nil {
				var depErr *deps.DependencyError
				fmt.Printf("✗ %s: NOT FOUND\n", tool.Name)
				if errors.As(err, &depErr) {
					fmt.Printf("  Install from: %s\n", depErr.InstallURL)
				}
				allGood = false
				continue
			}
			fmt.Printf("✓ %s: OK\n", tool.Name)
		}

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
