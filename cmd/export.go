package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/video-cutter/cutter"
	"github.com/user/video-cutter/deps"
	"github.com/user/video-cutter/pkg/export"
	"github.com/user/video-cutter/pkg/timeutil"
)

var (
	exportStart  string
	exportEnd    string
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <video-file>",
	Short: "Export a clip without opening the player",
	Long: `Export the clip between --start and --end with ffmpeg. Times accept
HH:MM:SS, MM:SS or seconds. The clip is checked against the duration reported
by ffprobe. Without --output the clip is written next to the video (or to
output_dir from the config) as <name>-<start>-<end>.<ext>.`,
	Example: `  video-cutter export match.mkv --start 1:30 --end 1:45
  video-cutter export match.mkv --start 90 --end 105 --format webm -o try.webm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		start, err := timeutil.ParseTimeToSeconds(exportStart)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		end, err := timeutil.ParseTimeToSeconds(exportEnd)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}
		preset, err := export.Lookup(exportFormat)
		if err != nil {
			return err
		}

		cfg, logger, err := loadSettings()
		if err != nil {
			return err
		}
		defer logger.Sync()
		preset = cfg.Presets()[preset.Format]

		if err := deps.Check(deps.Ffprobe, ""); err != nil {
			return err
		}
		duration, err := export.ProbeDuration(input)
		if err != nil {
			return err
		}
		clip := cutter.ClipRange{Start: start, End: end}
		if err := clip.Validate(duration); err != nil {
			return fmt.Errorf("%w: %s to %s of %s", err,
				timeutil.FormatTime(start), timeutil.FormatTime(end), timeutil.FormatTime(duration))
		}

		output := exportOutput
		if output == "" {
			output = export.BuildClipPath(input, cfg.OutputDir, start, end, preset)
		}

		inv, closeHistory := newInvoker(cfg, logger)
		defer closeHistory()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Printf("Exporting %s %s +%ss to %s\n", preset.Label,
			timeutil.FormatTime(start), timeutil.FormatSeconds(clip.Length()), output)
		res, err := inv.Export(ctx, export.NewRequest(input, start, end, output, preset))
		if err != nil {
			return err
		}
		if !res.OK() {
			logger.Error("headless export failed", zap.String("output", output), zap.Error(res.Err))
			return fmt.Errorf("%s: %w", res.Status(), res.Err)
		}
		fmt.Println(res.Status())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportStart, "start", "", "clip start (required)")
	exportCmd.Flags().StringVar(&exportEnd, "end", "", "clip end (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatMP4), "export format: mp4 or webm")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file")
	exportCmd.MarkFlagRequired("start")
	exportCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(exportCmd)
}
