package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule",
		Short: "Generate and save the schedule for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, _ := cmd.Flags().GetString("week")
			strategy, _ := cmd.Flags().GetString("strategy")
			preferences, _ := cmd.Flags().GetString("preferences")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if week == "" {
				week = nextWeekStart(time.Now())
			}

			app.Logger.Debug("generateSchedule command",
				zap.String("week", week),
				zap.String("strategy", strategy),
				zap.Bool("dry_run", dryRun))

			result, err := services.GenerateSchedule(app.Ctx, app.Database, app.Strategies, app.Cfg, app.Logger, services.GenerateScheduleRequest{
				BusinessID:  app.BusinessID,
				WeekStart:   week,
				Strategy:    strategy,
				Preferences: preferences,
				DryRun:      dryRun,
			})
			if err != nil {
				return err
			}

			employees, err := app.Database.ListEmployees(app.Ctx, app.BusinessID)
			if err != nil {
				return fmt.Errorf("failed to fetch employees: %w", err)
			}
			names := employeeNames(employees)

			if dryRun {
				fmt.Printf("\n%sDRY RUN: schedule not saved%s\n", colorDim, colorReset)
			} else {
				fmt.Printf("\n✓ Schedule saved for week starting %s\n", week)
			}
			fmt.Printf("Strategy: %s\n", result.StrategyUsed)
			if dryRun {
				fmt.Printf("Planned:  %d shifts\n\n", len(result.Shifts))
			} else {
				fmt.Printf("Saved:    %d shifts\n\n", result.ShiftsCreated)
			}

			shifts := append([]model.Shift(nil), result.Shifts...)
			sort.SliceStable(shifts, func(i, j int) bool {
				if shifts[i].Day != shifts[j].Day {
					return shifts[i].Day.Index() < shifts[j].Day.Index()
				}
				return shifts[i].StartTime < shifts[j].StartTime
			})
			for _, shift := range shifts {
				name := names[shift.EmployeeID]
				if name == "" {
					name = shift.EmployeeID
				}
				fmt.Printf("  %-10s %-12s %s\n", shift.Day.Long(), shiftTimes(shift.StartTime, shift.EndTime), name)
			}

			if len(result.Coverage) > 0 {
				fmt.Println("\nCoverage:")
				for _, day := range result.Coverage {
					color := coverageColor(day.CoveragePct, colorGreen, colorYellow, colorRed)
					fmt.Printf("  %-10s %d/%d %s%5.1f%%%s\n", day.Day.Long(), day.Scheduled, day.Required, color, day.CoveragePct, colorReset)
				}
			}

			if len(result.Warnings) > 0 {
				fmt.Printf("\n⚠️  %d warnings:\n", len(result.Warnings))
				for _, warning := range result.Warnings {
					fmt.Printf("  %s%s%s\n", colorYellow, warning, colorReset)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("week", "", "Week start date YYYY-MM-DD (defaults to next Monday)")
	cmd.Flags().String("strategy", "", "deterministic or generative (defaults to the configured strategy)")
	cmd.Flags().String("preferences", "", "Free-text scheduling preferences passed to the generative strategy")
	cmd.Flags().Bool("dry-run", false, "Generate without saving to the database")

	return cmd
}
