package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishSchedule [week_start]",
		Short: "Write a week's saved schedule to a spreadsheet tab",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			week := nextWeekStart(time.Now())
			if len(args) > 0 {
				week = args[0]
			}

			app.Logger.Debug("publishSchedule command", zap.String("week", week), zap.String("out", out))

			tab, err := services.PublishSchedule(app.Ctx, app.Database, app.Logger, app.BusinessID, week, out)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Published week starting %s to %s (tab %q)\n\n", week, out, tab)
			return nil
		},
	}

	cmd.Flags().String("out", "schedule.xlsx", "Workbook to write (created if missing)")

	return cmd
}
