package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/services"
)

// ViewShiftsCmd creates the viewShifts command
func ViewShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewShifts [week_start]",
		Short: "Show the saved schedule for a week (defaults to next week)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := nextWeekStart(time.Now())
			if len(args) > 0 {
				week = args[0]
			}

			app.Logger.Debug("viewShifts command", zap.String("week", week))

			view, err := services.ViewShifts(app.Ctx, app.Database, app.Logger, app.BusinessID, week)
			if err != nil {
				return err
			}

			if view.ShiftCount() == 0 {
				fmt.Printf("\nNo shifts saved for week starting %s\n\n", week)
				return nil
			}

			fmt.Printf("\nSchedule for week starting %s (%d shifts)\n", week, view.ShiftCount())
			for _, day := range view.Days {
				fmt.Printf("\n%s %s\n", day.Day.Long(), day.Date.Format("Jan 02"))
				if len(day.Shifts) == 0 {
					fmt.Printf("  %s(no shifts)%s\n", colorDim, colorReset)
					continue
				}
				for _, shift := range day.Shifts {
					fmt.Printf("  %-12s %-24s %s\n", shiftTimes(shift.StartTime, shift.EndTime), shift.DisplayName, shift.Tier)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

// DeleteShiftsCmd creates the deleteShifts command
func DeleteShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteShifts <week_start>",
		Short: "Delete the saved schedule for a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := args[0]
			app.Logger.Debug("deleteShifts command", zap.String("week", week))

			deleted, err := services.DeleteShifts(app.Ctx, app.Database, app.Logger, app.BusinessID, week)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Deleted %d shifts for week starting %s\n\n", deleted, week)
			return nil
		},
	}
}
