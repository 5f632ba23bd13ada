package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/video-cutter/db"
	"github.com/user/video-cutter/pkg/timeutil"
)

var (
	historyLimit int
	historyInput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past exports",
	Long:  `List recent exports with their outcome, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openHistoryDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		input := historyInput
		if input != "" {
			if abs, err := filepath.Abs(input); err == nil {
				input = abs
			}
		}

		exports, err := db.ListExports(conn, input, historyLimit)
		if err != nil {
			return err
		}
		if len(exports) == 0 {
			fmt.Println("No exports recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tFORMAT\tCLIP\tSTATUS\tOUTPUT")
		fmt.Fprintln(w, "-------\t------\t----\t------\t------")
		for _, e := range exports {
			clip := fmt.Sprintf("%s-%s", timeutil.FormatTime(e.Start), timeutil.FormatTime(e.End()))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.StartedAt.Local().Format("2006-01-02 15:04"),
				e.Format,
				clip,
				e.Status,
				e.OutputPath,
			)
		}
		return w.Flush()
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the export history",
	Long:  `Delete every recorded export. Exported files are not touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openHistoryDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		n, err := db.ClearExports(conn)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d export(s)\n", n)
		return nil
	},
}

func openHistoryDB() (*sql.DB, error) {
	cfg, _, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return db.Open(cfg.DBPath)
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", db.DefaultHistoryLimit, "maximum number of exports to list")
	historyCmd.Flags().StringVar(&historyInput, "input", "", "only list clips of this video")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
