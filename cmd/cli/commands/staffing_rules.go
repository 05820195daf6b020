package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/core/services"
)

// StaffingRulesCmd creates the staffingRules command group
func StaffingRulesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staffingRules",
		Short: "Manage daily headcount rules (used when no shift slots are defined)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List staffing rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := services.ListStaffingRules(app.Ctx, app.Database, app.BusinessID)
			if err != nil {
				return err
			}

			if len(rules) == 0 {
				fmt.Println("\nNo staffing rules defined.")
				return nil
			}

			fmt.Println()
			for _, rule := range rules {
				fmt.Printf("  %-10s need %d\n", rule.Day.Long(), rule.RequiredCount)
			}
			fmt.Println()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <day> <required_count>",
		Short: "Set the headcount required on a weekday",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := model.ParseWeekday(args[0])
			if err != nil {
				return err
			}
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("required_count must be a number: %w", err)
			}

			rule, err := services.SetStaffingRule(app.Ctx, app.Database, app.Logger, app.BusinessID, day, count)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s now needs %d\n\n", rule.Day.Long(), rule.RequiredCount)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <day>",
		Short: "Remove the rule for a weekday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := model.ParseWeekday(args[0])
			if err != nil {
				return err
			}
			if err := services.DeleteStaffingRule(app.Ctx, app.Database, app.Logger, app.BusinessID, day); err != nil {
				return err
			}
			fmt.Printf("\n✓ Removed rule for %s\n\n", day.Long())
			return nil
		},
	})

	return cmd
}
