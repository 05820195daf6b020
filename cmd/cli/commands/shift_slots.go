package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/core/services"
)

// ShiftSlotsCmd creates the shiftSlots command group
func ShiftSlotsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shiftSlots",
		Short: "Manage the business's shift slots",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List shift slots ordered by day and start time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := services.ListShiftSlots(app.Ctx, app.Database, app.BusinessID)
			if err != nil {
				return err
			}

			if len(slots) == 0 {
				fmt.Println("\nNo shift slots defined - daily staffing rules are used instead.")
				return nil
			}

			fmt.Printf("\nFound %d shift slots:\n\n", len(slots))
			for _, slot := range slots {
				fmt.Printf("  %-10s %-12s need %d  %s(%s)%s\n",
					slot.Day.Long(),
					shiftTimes(slot.StartTime, slot.EndTime),
					slot.RequiredCount,
					colorDim, slot.ID, colorReset,
				)
			}
			fmt.Println()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <day> <start> <end> <required_count>",
		Short: "Add a shift slot",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := slotFromArgs(app.BusinessID, args)
			if err != nil {
				return err
			}

			created, err := services.CreateShiftSlot(app.Ctx, app.Database, app.Logger, slot)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Added %s %s slot (id %s)\n\n", created.Day.Long(), shiftTimes(created.StartTime, created.EndTime), created.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <slot_id> <day> <start> <end> <required_count>",
		Short: "Replace a shift slot's day, times and headcount",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := slotFromArgs(app.BusinessID, args[1:])
			if err != nil {
				return err
			}
			slot.ID = args[0]

			updated, err := services.UpdateShiftSlot(app.Ctx, app.Database, app.Logger, slot)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Updated slot %s: %s %s need %d\n\n", updated.ID, updated.Day.Long(), shiftTimes(updated.StartTime, updated.EndTime), updated.RequiredCount)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <slot_id>",
		Short: "Remove a shift slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteShiftSlot(app.Ctx, app.Database, app.Logger, app.BusinessID, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Removed slot %s\n\n", args[0])
			return nil
		},
	})

	return cmd
}

// slotFromArgs builds a slot from <day> <start> <end> <required_count>
func slotFromArgs(businessID string, args []string) (model.ShiftSlot, error) {
	day, err := model.ParseWeekday(args[0])
	if err != nil {
		return model.ShiftSlot{}, err
	}
	count, err := strconv.Atoi(args[3])
	if err != nil {
		return model.ShiftSlot{}, fmt.Errorf("required_count must be a number: %w", err)
	}
	return model.ShiftSlot{
		BusinessID:    businessID,
		Day:           day,
		StartTime:     args[1],
		EndTime:       args[2],
		RequiredCount: count,
	}, nil
}
