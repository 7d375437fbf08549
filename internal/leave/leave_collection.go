package leave

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Filter is the ephemeral view state of a request list. All criteria are
// conjunctive; empty criteria match everything.
type Filter struct {
	SearchTerm string
	Status     Status
	TypeName   string
	Employee   string

	// ActiveTab constrains by status exactly like Status does. When both are
	// set, both apply. The conjunction is the observed product behavior even
	// though it may have been intended as tab-or-dropdown.
	ActiveTab Status
}

// ApplyFilter returns the requests matching every criterion of f. The input
// slice is never mutated.
func ApplyFilter(requests []LeaveRequest, f Filter) []LeaveRequest {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	out := make([]LeaveRequest, 0, len(requests))
	for _, r := range requests {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.ActiveTab != "" && r.Status != f.ActiveTab {
			continue
		}
		if f.TypeName != "" && !strings.EqualFold(r.LeaveType, f.TypeName) {
			continue
		}
		if f.Employee != "" && r.EmployeeID != f.Employee {
			continue
		}
		if term != "" {
			inType := strings.Contains(strings.ToLower(r.LeaveType), term)
			inReason := strings.Contains(strings.ToLower(r.Reason), term)
			if !inType && !inReason {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

type SortField string

const (
	SortByRequestedAt SortField = "requestedAt"
	SortByStartDate   SortField = "startDate"
	SortByTotalDays   SortField = "totalDays"
	SortByStatus      SortField = "status"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortRequests returns a stably sorted copy. Zero values fall back to the
// default ordering: most recently requested first.
func SortRequests(requests []LeaveRequest, field SortField, direction SortDirection) []LeaveRequest {
	if field == "" {
		field = SortByRequestedAt
	}
	if direction == "" {
		direction = SortDesc
	}

	out := make([]LeaveRequest, len(requests))
	copy(out, requests)

	less := func(a, b LeaveRequest) bool {
		switch field {
		case SortByStartDate:
			return a.StartDate.Before(b.StartDate)
		case SortByTotalDays:
			return a.TotalDays.LessThan(b.TotalDays)
		case SortByStatus:
			return a.Status < b.Status
		default:
			return a.RequestedAt.Before(b.RequestedAt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if direction == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Stats is a single-pass reduction over a request list.
type Stats struct {
	Total     int
	Pending   int
	Approved  int
	Rejected  int
	Cancelled int

	// TotalDays sums only the requests matched by the caller's predicate.
	TotalDays decimal.Decimal
}

// ComputeStats reduces the list in one pass. countDays designates which
// status subset contributes to TotalDays; nil counts every request.
func ComputeStats(requests []LeaveRequest, countDays func(LeaveRequest) bool) Stats {
	stats := Stats{TotalDays: decimal.Zero}
	for _, r := range requests {
		stats.Total++
		switch r.Status {
		case StatusPending:
			stats.Pending++
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		case StatusCancelled:
			stats.Cancelled++
		}
		if countDays == nil || countDays(r) {
			stats.TotalDays = stats.TotalDays.Add(r.TotalDays)
		}
	}
	return stats
}
