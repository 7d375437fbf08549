package balance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/symtons/leavedesk/internal/balance"
	"github.com/symtons/leavedesk/internal/leave"
)

func snapshot(total, used, remaining int64) leave.PTOBalance {
	return leave.PTOBalance{
		TotalPTODays:     decimal.NewFromInt(total),
		UsedPTODays:      decimal.NewFromInt(used),
		RemainingPTODays: decimal.NewFromInt(remaining),
		Year:             2024,
		IsEligible:       true,
	}
}

func TestProject(t *testing.T) {
	t.Run("success pending request lowers the projection to low", func(t *testing.T) {
		p := balance.Project(snapshot(20, 15, 5), decimal.NewFromInt(3))

		assert.Equal(t, int64(75), p.UsedPct)
		assert.Equal(t, int64(25), p.RemainingPct)
		assert.True(t, p.ProjectedRemaining.Equal(decimal.NewFromInt(2)))
		assert.Equal(t, balance.StatusLow, p.Status)
		assert.False(t, p.OverBudget)
	})

	t.Run("success untouched balance is healthy", func(t *testing.T) {
		p := balance.Project(snapshot(20, 2, 18), decimal.Zero)

		assert.Equal(t, int64(10), p.UsedPct)
		assert.Equal(t, balance.StatusHealthy, p.Status)
	})

	t.Run("success moderate band between 20 and 50 percent", func(t *testing.T) {
		p := balance.Project(snapshot(20, 12, 8), decimal.Zero)

		assert.Equal(t, balance.StatusModerate, p.Status)
	})

	t.Run("success half-day projections keep fractional precision", func(t *testing.T) {
		p := balance.Project(snapshot(20, 15, 5), decimal.RequireFromString("0.5"))

		assert.True(t, p.ProjectedRemaining.Equal(decimal.RequireFromString("4.5")))
	})

	t.Run("success over-budget flags without erroring", func(t *testing.T) {
		p := balance.Project(snapshot(20, 18, 2), decimal.NewFromInt(5))

		assert.True(t, p.OverBudget)
		assert.True(t, p.ProjectedRemaining.Equal(decimal.NewFromInt(-3)))
		assert.Equal(t, balance.StatusLow, p.Status)
	})

	t.Run("success zero allotment avoids division and reads as low", func(t *testing.T) {
		p := balance.Project(snapshot(0, 0, 0), decimal.NewFromInt(1))

		assert.Equal(t, int64(0), p.UsedPct)
		assert.Equal(t, int64(100), p.RemainingPct)
		assert.Equal(t, balance.StatusLow, p.Status)
	})

	t.Run("success ineligible employee gets not-applicable", func(t *testing.T) {
		b := snapshot(20, 5, 15)
		b.IsEligible = false

		p := balance.Project(b, decimal.NewFromInt(3))

		assert.Equal(t, balance.StatusNotApplicable, p.Status)
		assert.True(t, p.ProjectedRemaining.IsZero())
		assert.False(t, p.OverBudget)
	})
}
