package cmd

import (
	"fmt"
	"time"

	"chirper/internal/schedule"

	"github.com/spf13/cobra"
)

// scheduleCmd groups schedule-related subcommands.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule utilities",
}

var previewDays int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print sample fire times for the configured window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		s := schedule.New(cfg.Chirper.EarliestHour, cfg.Chirper.LatestHour, cfg.CatchUp())
		if err := s.Validate(); err != nil {
			return err
		}
		now := time.Now()
		target := s.Today(now)
		out := cmd.OutOrStdout()
		switch {
		case target.After(now):
			fmt.Fprintln(out, target.Format(time.DateTime))
		case s.CatchUpToday:
			fmt.Fprintf(out, "%s (now, today's slot %s passed)\n", now.Format(time.DateTime), target.Format(time.TimeOnly))
		}
		for i := 1; i < previewDays; i++ {
			target = s.NextTarget(target)
			fmt.Fprintln(out, target.Format(time.DateTime))
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVarP(&previewDays, "days", "d", 7, "number of days to preview")
	scheduleCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scheduleCmd)
}
