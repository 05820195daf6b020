package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// AddEmployee validates and saves a new employee
func AddEmployee(ctx context.Context, store db.EmployeeStore, logger *zap.Logger, employee model.Employee) (*model.Employee, error) {
	if err := normaliseEmployee(&employee); err != nil {
		return nil, err
	}

	if err := store.InsertEmployee(ctx, &employee); err != nil {
		return nil, fmt.Errorf("failed to add employee: %w", err)
	}

	logger.Debug("Added employee",
		zap.String("id", employee.ID),
		zap.String("name", employee.DisplayName),
		zap.String("tier", string(employee.Tier)))
	return &employee, nil
}

// UpdateEmployee validates and overwrites an existing employee
func UpdateEmployee(ctx context.Context, store db.EmployeeStore, logger *zap.Logger, employee model.Employee) (*model.Employee, error) {
	if employee.ID == "" {
		return nil, fmt.Errorf("employee id is required")
	}
	if err := normaliseEmployee(&employee); err != nil {
		return nil, err
	}

	if err := store.UpdateEmployee(ctx, &employee); err != nil {
		return nil, fmt.Errorf("failed to update employee %s: %w", employee.ID, err)
	}

	logger.Debug("Updated employee", zap.String("id", employee.ID))
	return &employee, nil
}

// RemoveEmployee deletes an employee along with their shifts and availability
func RemoveEmployee(ctx context.Context, store db.EmployeeStore, logger *zap.Logger, businessID, employeeID string) error {
	if err := store.DeleteEmployee(ctx, businessID, employeeID); err != nil {
		return fmt.Errorf("failed to remove employee %s: %w", employeeID, err)
	}
	logger.Debug("Removed employee", zap.String("id", employeeID))
	return nil
}

func normaliseEmployee(employee *model.Employee) error {
	if employee.BusinessID == "" {
		return fmt.Errorf("business id is required")
	}
	employee.DisplayName = strings.TrimSpace(employee.DisplayName)
	if employee.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	tier, err := model.ParseSkillTier(string(employee.Tier))
	if err != nil {
		return err
	}
	employee.Tier = tier
	return nil
}
