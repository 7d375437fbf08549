package leave

import (
	"strings"

	"github.com/symtons/leavedesk/internal/session"
)

// ptoDeductingTypes maps leave-type display names to PTO consumption. This is
// deliberately independent of IsPaidLeave so paid-but-not-deducting
// categories (bereavement, jury duty) stay distinct.
var ptoDeductingTypes = map[string]struct{}{
	"paid time off":  {},
	"pto":            {},
	"vacation":       {},
	"annual leave":   {},
	"personal leave": {},
}

// DeductsPTO reports whether approving a request of the named type consumes
// the PTO balance.
func DeductsPTO(typeName string) bool {
	_, ok := ptoDeductingTypes[strings.ToLower(strings.TrimSpace(typeName))]
	return ok
}

// Eligible reports whether a single type may be requested by the employee.
func Eligible(t LeaveType, emp session.Employee) bool {
	if !t.IsActive {
		return false
	}
	if t.IsPaidLeave && !emp.PTOEligible() {
		return false
	}
	if t.RequiresFullTimeStatus && !emp.FullTime {
		return false
	}
	return true
}

// EligibleTypes filters the catalog down to what the employee may request,
// marking IsEligible on the survivors. An empty result is a valid outcome,
// not an error; callers render a distinct empty state.
func EligibleTypes(types []LeaveType, emp session.Employee) []LeaveType {
	out := make([]LeaveType, 0, len(types))
	for _, t := range types {
		if !Eligible(t, emp) {
			continue
		}
		t.IsEligible = true
		out = append(out, t)
	}
	return out
}
