/*
entitlement.go - Initial leave entitlement pro-ration

PURPOSE:
  Computes the TotalLeaveBalance granted at onboarding. Employees get a
  fixed annual entitlement; a hire part-way through the current year is
  pro-rated by the months remaining, including the joining month.

PRORATION:
  - Joined in a prior year:  full 24 days
  - Joined this year:        24 * remainingMonths / 12, truncated
    (remainingMonths = 12 - joiningMonth + 1)

  Examples (current year 2024):
    joined 2024-01-01 -> 24      joined 2024-07-15 -> 12
    joined 2024-12-01 -> 2       joined 2023-06-01 -> 24

  The division runs on decimal.Decimal and truncates toward zero, so a
  December hire gets 2 days, never 2 rounded up to 3.

SEE ALSO:
  - directory.go: Calls InitialEntitlement during onboarding
*/
package leave

import "github.com/shopspring/decimal"

// AnnualEntitlementDays is the full-year leave grant.
const AnnualEntitlementDays = 24

var (
	annualEntitlement = decimal.NewFromInt(AnnualEntitlementDays)
	monthsPerYear     = decimal.NewFromInt(12)
)

// InitialEntitlement returns the pro-rated leave balance for an employee
// joining on joiningDate, evaluated as of today.
func InitialEntitlement(joiningDate, today Date) int {
	if joiningDate.Year() < today.Year() {
		return AnnualEntitlementDays
	}

	remaining := decimal.NewFromInt(int64(12 - int(joiningDate.Month()) + 1))
	prorated := annualEntitlement.Mul(remaining).Div(monthsPerYear)
	return int(prorated.IntPart())
}
