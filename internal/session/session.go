package session

// Classification gates PTO eligibility. Field staff are paid hourly and do
// not accrue PTO.
type Classification string

const (
	ClassificationAdminStaff Classification = "Admin Staff"
	ClassificationFieldStaff Classification = "Field Staff"
)

// Employee is the identity of the signed-in user as far as the leave engine
// cares. It is injected explicitly; nothing reads ambient storage.
type Employee struct {
	EmployeeID     string
	FullName       string
	Classification Classification
	FullTime       bool
}

// PTOEligible reports whether this employee's classification accrues PTO.
func (e Employee) PTOEligible() bool {
	return e.Classification != ClassificationFieldStaff
}

// Session carries the current employee plus the bearer token the transport
// attaches to every call.
type Session struct {
	Employee Employee
	Token    string
}

// CurrentUser is the single capability components depend on instead of
// ambient session-storage lookups.
type CurrentUser interface {
	CurrentUser() Employee
}

func (s *Session) CurrentUser() Employee { return s.Employee }
