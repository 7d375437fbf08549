package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/symtons/leavedesk/internal/directory"
	"github.com/symtons/leavedesk/internal/leave"
	"github.com/symtons/leavedesk/internal/leavetest"
)

// newDemoServer seeds the in-memory backend with enough data to walk every
// flow. Tokens: demo-alice (admin staff), demo-bob (field staff),
// demo-carol (reviewer).
func newDemoServer() *leavetest.Server {
	store := leavetest.NewStore()

	store.AddEmployee("demo-alice", directory.Employee{
		EmployeeID:     "emp-001",
		FullName:       "Alice Mwangi",
		Classification: "Admin Staff",
	})
	store.AddEmployee("demo-bob", directory.Employee{
		EmployeeID:     "emp-002",
		FullName:       "Bob Carter",
		Classification: "Field Staff",
	})
	store.AddEmployee("demo-carol", directory.Employee{
		EmployeeID:     "emp-003",
		FullName:       "Carol Diaz",
		Classification: "Admin Staff",
	})
	store.AddDepartment(directory.Department{DepartmentID: "dep-01", Name: "Operations"})
	store.AddDepartment(directory.Department{DepartmentID: "dep-02", Name: "Field Services"})

	maxSick := 10
	store.AddType(leave.LeaveType{
		ID: "lt-pto", Name: "Paid Time Off",
		Description: "Accrued paid leave", IsPaidLeave: true,
		RequiresApproval: true, IsActive: true,
	})
	store.AddType(leave.LeaveType{
		ID: "lt-sick", Name: "Sick Leave",
		Description:      "Illness or medical appointments",
		RequiresApproval: true, IsActive: true, MaxDaysPerYear: &maxSick,
	})
	store.AddType(leave.LeaveType{
		ID: "lt-bereavement", Name: "Bereavement",
		Description: "Paid, does not deduct PTO", IsPaidLeave: true,
		RequiresApproval: true, IsActive: true, RequiresFullTimeStatus: true,
	})
	store.AddType(leave.LeaveType{
		ID: "lt-unpaid", Name: "Unpaid Leave",
		Description: "Leave without pay", RequiresApproval: true, IsActive: true,
	})
	store.AddType(leave.LeaveType{
		ID: "lt-retired", Name: "Sabbatical",
		Description: "No longer offered", IsActive: false,
	})

	store.SetBalance("emp-001", leave.PTOBalance{
		TotalPTODays:     decimal.NewFromInt(20),
		UsedPTODays:      decimal.NewFromInt(5),
		RemainingPTODays: decimal.NewFromInt(15),
		Year:             time.Now().Year(),
		IsEligible:       true,
	})
	store.SetBalance("emp-003", leave.PTOBalance{
		TotalPTODays:     decimal.NewFromInt(20),
		UsedPTODays:      decimal.NewFromInt(16),
		RemainingPTODays: decimal.NewFromInt(4),
		Year:             time.Now().Year(),
		IsEligible:       true,
	})

	today := time.Now().UTC().Truncate(24 * time.Hour)
	store.AddRequest(leave.LeaveRequest{
		EmployeeID:   "emp-001",
		EmployeeName: "Alice Mwangi",
		LeaveType:    "Paid Time Off",
		StartDate:    today.AddDate(0, 0, 14),
		EndDate:      today.AddDate(0, 0, 16),
		TotalDays:    decimal.NewFromInt(3),
		Reason:       "Family visit",
		Status:       leave.StatusPending,
	})
	store.AddRequest(leave.LeaveRequest{
		EmployeeID:   "emp-002",
		EmployeeName: "Bob Carter",
		LeaveType:    "Unpaid Leave",
		StartDate:    today.AddDate(0, 0, 7),
		EndDate:      today.AddDate(0, 0, 7),
		TotalDays:    decimal.NewFromInt(1),
		Reason:       "Personal errand",
		Status:       leave.StatusPending,
	})

	return leavetest.NewServer(store)
}
