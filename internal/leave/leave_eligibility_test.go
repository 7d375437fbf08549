package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/symtons/leavedesk/internal/leave"
	"github.com/symtons/leavedesk/internal/session"
)

func catalogFixture() []leave.LeaveType {
	return []leave.LeaveType{
		{ID: "lt-pto", Name: "Paid Time Off", IsPaidLeave: true, IsActive: true},
		{ID: "lt-unpaid", Name: "Unpaid Leave", IsPaidLeave: false, IsActive: true},
		{ID: "lt-sabbatical", Name: "Sabbatical", IsPaidLeave: true, IsActive: false},
		{ID: "lt-bereavement", Name: "Bereavement", IsPaidLeave: true, IsActive: true, RequiresFullTimeStatus: true},
	}
}

func TestEligibleTypes(t *testing.T) {
	t.Run("success admin staff sees every active type", func(t *testing.T) {
		emp := session.Employee{
			EmployeeID:     "emp-1",
			Classification: session.ClassificationAdminStaff,
			FullTime:       true,
		}

		got := leave.EligibleTypes(catalogFixture(), emp)

		assert.Len(t, got, 3)
		for _, lt := range got {
			assert.True(t, lt.IsEligible)
			assert.NotEqual(t, "lt-sabbatical", lt.ID, "inactive types never surface")
		}
	})

	t.Run("success field staff loses paid types", func(t *testing.T) {
		emp := session.Employee{
			EmployeeID:     "emp-2",
			Classification: session.ClassificationFieldStaff,
			FullTime:       true,
		}

		got := leave.EligibleTypes(catalogFixture(), emp)

		assert.Len(t, got, 1)
		assert.Equal(t, "lt-unpaid", got[0].ID)
	})

	t.Run("success part-time loses full-time-only types", func(t *testing.T) {
		emp := session.Employee{
			EmployeeID:     "emp-3",
			Classification: session.ClassificationAdminStaff,
			FullTime:       false,
		}

		got := leave.EligibleTypes(catalogFixture(), emp)

		ids := make([]string, 0, len(got))
		for _, lt := range got {
			ids = append(ids, lt.ID)
		}
		assert.ElementsMatch(t, []string{"lt-pto", "lt-unpaid"}, ids)
	})

	t.Run("success empty catalog yields empty non-nil slice", func(t *testing.T) {
		emp := session.Employee{Classification: session.ClassificationAdminStaff}

		got := leave.EligibleTypes(nil, emp)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("success original catalog is untouched", func(t *testing.T) {
		catalog := catalogFixture()
		emp := session.Employee{Classification: session.ClassificationAdminStaff, FullTime: true}

		leave.EligibleTypes(catalog, emp)

		for _, lt := range catalog {
			assert.False(t, lt.IsEligible)
		}
	})
}

func TestDeductsPTO(t *testing.T) {
	t.Run("success deducting names match case-insensitively", func(t *testing.T) {
		assert.True(t, leave.DeductsPTO("Paid Time Off"))
		assert.True(t, leave.DeductsPTO("VACATION"))
		assert.True(t, leave.DeductsPTO("  annual leave "))
	})

	t.Run("negative paid but non-deducting categories", func(t *testing.T) {
		assert.False(t, leave.DeductsPTO("Bereavement"))
		assert.False(t, leave.DeductsPTO("Jury Duty"))
		assert.False(t, leave.DeductsPTO(""))
	})
}
