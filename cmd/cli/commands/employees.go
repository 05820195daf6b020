package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/core/services"
)

// EmployeesCmd creates the employees command group
func EmployeesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Manage employees",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Database.ListEmployees(app.Ctx, app.BusinessID)
			if err != nil {
				return fmt.Errorf("failed to list employees: %w", err)
			}

			fmt.Printf("\nFound %d employees:\n\n", len(employees))
			for _, emp := range employees {
				flags := ""
				if emp.IsAdmin {
					flags += " [admin]"
				}
				if !emp.Active {
					flags += " [inactive]"
				}
				fmt.Printf("- %s (%s) - %s%s\n", emp.DisplayName, emp.ID, emp.Tier, flags)
			}
			fmt.Println()
			return nil
		},
	})

	add := &cobra.Command{
		Use:   "add <display_name>",
		Short: "Add an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, _ := cmd.Flags().GetString("tier")
			admin, _ := cmd.Flags().GetBool("admin")
			inactive, _ := cmd.Flags().GetBool("inactive")

			parsed, err := model.ParseSkillTier(tier)
			if err != nil {
				return err
			}

			emp, err := services.AddEmployee(app.Ctx, app.Database, app.Logger, model.Employee{
				BusinessID:  app.BusinessID,
				DisplayName: args[0],
				Tier:        parsed,
				Active:      !inactive,
				IsAdmin:     admin,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Added %s (id %s, %s)\n\n", emp.DisplayName, emp.ID, emp.Tier)
			return nil
		},
	}
	add.Flags().String("tier", string(model.TierNormal), "Skill tier: lead, normal or new")
	add.Flags().Bool("admin", false, "Administrator (never scheduled)")
	add.Flags().Bool("inactive", false, "Add as inactive")
	cmd.AddCommand(add)

	update := &cobra.Command{
		Use:   "update <employee_id>",
		Short: "Update an employee's name, tier or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emp, err := app.Database.GetEmployee(app.Ctx, app.BusinessID, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch employee %s: %w", args[0], err)
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				emp.DisplayName, _ = flags.GetString("name")
			}
			if flags.Changed("tier") {
				tier, _ := flags.GetString("tier")
				if emp.Tier, err = model.ParseSkillTier(tier); err != nil {
					return err
				}
			}
			if flags.Changed("admin") {
				emp.IsAdmin, _ = flags.GetBool("admin")
			}
			if flags.Changed("active") {
				emp.Active, _ = flags.GetBool("active")
			}

			updated, err := services.UpdateEmployee(app.Ctx, app.Database, app.Logger, *emp)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Updated %s (%s, active=%t, admin=%t)\n\n", updated.DisplayName, updated.Tier, updated.Active, updated.IsAdmin)
			return nil
		},
	}
	update.Flags().String("name", "", "Display name")
	update.Flags().String("tier", "", "Skill tier: lead, normal or new")
	update.Flags().Bool("admin", false, "Administrator (never scheduled)")
	update.Flags().Bool("active", true, "Whether the employee can be scheduled")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <employee_id>",
		Short: "Remove an employee with their shifts and availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveEmployee(app.Ctx, app.Database, app.Logger, app.BusinessID, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Removed employee %s\n\n", args[0])
			return nil
		},
	})

	return cmd
}
