package balance

import (
	"github.com/shopspring/decimal"

	"github.com/symtons/leavedesk/internal/leave"
)

// Status is the display classification of a projected balance. The cut
// points are a product decision, not a technical invariant.
type Status string

const (
	StatusHealthy       Status = "healthy"
	StatusModerate      Status = "moderate"
	StatusLow           Status = "low"
	StatusNotApplicable Status = "not-applicable"
)

// Projection is what the balance card renders: how much is used, and what
// would remain if the pending request were approved.
type Projection struct {
	UsedPct            int64
	RemainingPct       int64
	ProjectedRemaining decimal.Decimal
	Status             Status

	// OverBudget flags a negative projected remainder. Surfaced as a
	// warning, never an error: over-budget submissions are allowed and need
	// special approval downstream.
	OverBudget bool
}

var hundred = decimal.NewFromInt(100)

// Project computes the hypothetical post-submission view of a balance
// snapshot. The snapshot itself is never recomputed or persisted.
func Project(b leave.PTOBalance, pendingDays decimal.Decimal) Projection {
	if !b.IsEligible {
		return Projection{
			ProjectedRemaining: decimal.Zero,
			Status:             StatusNotApplicable,
		}
	}

	projected := b.RemainingPTODays.Sub(pendingDays)
	p := Projection{
		ProjectedRemaining: projected,
		OverBudget:         projected.IsNegative(),
	}

	if b.TotalPTODays.IsZero() {
		p.RemainingPct = 100
		p.Status = classify(decimal.Zero, decimal.Zero)
		return p
	}

	p.UsedPct = b.UsedPTODays.Div(b.TotalPTODays).Mul(hundred).Round(0).IntPart()
	p.RemainingPct = 100 - p.UsedPct
	p.Status = classify(projected, b.TotalPTODays)
	return p
}

func classify(projectedRemaining, total decimal.Decimal) Status {
	if total.IsZero() {
		return StatusLow
	}
	pct := projectedRemaining.Div(total).Mul(hundred)
	switch {
	case pct.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return StatusHealthy
	case pct.GreaterThanOrEqual(decimal.NewFromInt(20)):
		return StatusModerate
	default:
		return StatusLow
	}
}
