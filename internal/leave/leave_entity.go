package leave

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a persisted leave request. Transitions
// are one-directional: Pending may move to any terminal state, terminal
// states never move again.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// CanTransition reports whether a request may move from one status to
// another. Only Pending requests move at all.
func CanTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected || to == StatusCancelled
}

// ParseStatus canonicalizes a raw status string case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, true
	case "approved":
		return StatusApproved, true
	case "rejected":
		return StatusRejected, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	}
	return "", false
}

// LeaveType is a catalog entry. Sourced read-only from the backend; never
// mutated client-side except for the per-requester IsEligible flag.
type LeaveType struct {
	ID          string
	Name        string
	Description string

	// IsPaidLeave means approval deducts PTO for eligible employees.
	IsPaidLeave      bool
	RequiresApproval bool
	MaxDaysPerYear   *int

	RequiresFullTimeStatus bool
	IsActive               bool

	// IsEligible is computed per requester, not part of the catalog.
	IsEligible bool
}

// LeaveRequest is the server-owned persisted entity.
type LeaveRequest struct {
	LeaveRequestID string
	EmployeeID     string
	EmployeeName   string
	LeaveType      string
	StartDate      time.Time
	EndDate        time.Time
	TotalDays      decimal.Decimal
	Reason         string
	Status         Status
	RequestedAt    time.Time

	// Set only when Approved.
	ApprovedBy string
	ApprovedAt *time.Time

	// Set only when Rejected, never empty.
	RejectionReason string

	// True only while Pending and owned by the requester.
	CanCancel bool
}

// PTOBalance is the backend's balance snapshot for the current employee.
// The client never recomputes it, only projects hypothetical values for
// display.
type PTOBalance struct {
	TotalPTODays     decimal.Decimal
	UsedPTODays      decimal.Decimal
	RemainingPTODays decimal.Decimal
	Year             int
	IsEligible       bool
	AccrualRate      *decimal.Decimal
}
