package api

import (
	"context"
	"time"

	"github.com/warp/leave-engine/leave"
)

// Seed loads a small set of sample employees for local development.
// Duplicate-email conflicts (database already seeded) are ignored so the
// server can restart against the same file.
func Seed(ctx context.Context, directory *leave.Directory) error {
	samples := []struct {
		name, email, department string
		joined                  leave.Date
	}{
		{"John Doe", "john.doe@company.com", "Engineering", leave.NewDate(2023, time.January, 15)},
		{"Jane Smith", "jane.smith@company.com", "HR", leave.NewDate(2022, time.June, 10)},
		{"Mike Johnson", "mike.johnson@company.com", "Marketing", leave.NewDate(2024, time.March, 1)},
	}

	for _, s := range samples {
		if _, err := directory.AddEmployee(ctx, s.name, s.email, s.department, s.joined); err != nil {
			if leave.IsClientError(err) {
				continue
			}
			return err
		}
	}
	return nil
}
