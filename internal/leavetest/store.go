package leavetest

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/symtons/leavedesk/internal/directory"
	"github.com/symtons/leavedesk/internal/leave"
)

// Store is the fake backend's in-memory state. It enforces the same
// invariants the real backend owns: one-directional status transitions and
// PTO deduction on approval of deducting types.
type Store struct {
	mu sync.Mutex

	tokens      map[string]string // bearer token -> employee id
	employees   map[string]directory.Employee
	departments []directory.Department
	types       []leave.LeaveType
	balances    map[string]leave.PTOBalance
	requests    map[string]*leave.LeaveRequest
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		tokens:    make(map[string]string),
		employees: make(map[string]directory.Employee),
		balances:  make(map[string]leave.PTOBalance),
		requests:  make(map[string]*leave.LeaveRequest),
		now:       time.Now,
	}
}

// SetNow overrides the store's clock, for deterministic requestedAt stamps.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) AddEmployee(token string, emp directory.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = emp.EmployeeID
	s.employees[emp.EmployeeID] = emp
}

func (s *Store) AddDepartment(d directory.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = append(s.departments, d)
}

func (s *Store) AddType(t leave.LeaveType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append(s.types, t)
}

func (s *Store) SetBalance(employeeID string, b leave.PTOBalance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[employeeID] = b
}

// AddRequest seeds a request directly, returning its id.
func (s *Store) AddRequest(r leave.LeaveRequest) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.LeaveRequestID == "" {
		r.LeaveRequestID = uuid.NewString()
	}
	if r.RequestedAt.IsZero() {
		r.RequestedAt = s.now()
	}
	s.requests[r.LeaveRequestID] = &r
	return r.LeaveRequestID
}

func (s *Store) employeeByToken(token string) (directory.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return directory.Employee{}, false
	}
	emp, ok := s.employees[id]
	return emp, ok
}

// Request returns a copy of a stored request, for assertions.
func (s *Store) Request(id string) (leave.LeaveRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, false
	}
	return *r, true
}

// Balance returns a copy of an employee's balance, for assertions.
func (s *Store) Balance(employeeID string) (leave.PTOBalance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[employeeID]
	return b, ok
}

func (s *Store) typeByID(id string) (leave.LeaveType, bool) {
	for _, t := range s.types {
		if t.ID == id {
			return t, true
		}
	}
	return leave.LeaveType{}, false
}

// deductPTO applies an approval's balance side effect.
func (s *Store) deductPTO(employeeID string, days decimal.Decimal) {
	b, ok := s.balances[employeeID]
	if !ok || !b.IsEligible {
		return
	}
	b.UsedPTODays = b.UsedPTODays.Add(days)
	b.RemainingPTODays = b.TotalPTODays.Sub(b.UsedPTODays)
	s.balances[employeeID] = b
}
