package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/core/services"
)

// SetAvailabilityCmd creates the setAvailability command
func SetAvailabilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setAvailability <employee_id> <week_start> <day[=off|=HH:MM-HH:MM]>...",
		Short: "Record an employee's availability for days of a week",
		Long: `Record an employee's availability for days of a week.

Each day argument is one of:
  mon               available all day
  mon=off           not available
  mon=09:00-15:00   available within the window

Days not listed are left unchanged.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, week := args[0], args[1]

			days := make([]services.DayAvailability, 0, len(args)-2)
			for _, arg := range args[2:] {
				day, err := parseAvailabilityArg(arg)
				if err != nil {
					return err
				}
				days = append(days, day)
			}

			app.Logger.Debug("setAvailability command",
				zap.String("employee_id", employeeID),
				zap.String("week", week),
				zap.Int("day_count", len(days)))

			entries, err := services.SetAvailability(app.Ctx, app.Database, app.Logger, app.BusinessID, employeeID, week, days)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Saved availability for %s:\n", employeeID)
			for _, entry := range entries {
				status := colorGreen + "available" + colorReset
				if !entry.Available {
					status = colorRed + "unavailable" + colorReset
				} else if entry.StartTime != "" {
					status = fmt.Sprintf("%s%s-%s%s", colorGreen, entry.StartTime, entry.EndTime, colorReset)
				}
				fmt.Printf("  %s  %s\n", entry.Date, status)
			}
			fmt.Println()
			return nil
		},
	}
}

// SetStoreHoursCmd creates the setStoreHours command
func SetStoreHoursCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setStoreHours [day=HH:MM-HH:MM|day=closed]...",
		Short: "Set opening hours for weekdays (shows current hours when no days are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var hours model.StoreHours
			var err error

			if len(args) == 0 {
				hours, err = services.GetStoreHours(app.Ctx, app.Database, app.BusinessID)
			} else {
				changes := make(model.StoreHours, len(args))
				for _, arg := range args {
					day, dayHours, err := parseHoursArg(arg)
					if err != nil {
						return err
					}
					changes[day] = dayHours
				}
				hours, err = services.SetStoreHours(app.Ctx, app.Database, app.Logger, app.BusinessID, changes)
			}
			if err != nil {
				return err
			}

			fmt.Println("\nStore hours:")
			for _, day := range model.Weekdays {
				h, ok := hours[day]
				switch {
				case !ok || h.Closed:
					fmt.Printf("  %-10s %sclosed%s\n", day.Long(), colorDim, colorReset)
				default:
					fmt.Printf("  %-10s %s-%s\n", day.Long(), h.Open, h.Close)
				}
			}
			fmt.Println()
			return nil
		},
	}
}
