package leavetest_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/symtons/leavedesk/internal/directory"
	"github.com/symtons/leavedesk/internal/leave"
	"github.com/symtons/leavedesk/internal/leavetest"
	"github.com/symtons/leavedesk/internal/shared/apperror"
	"github.com/symtons/leavedesk/internal/shared/backend"
)

type lifecycleTestDeps struct {
	store *leavetest.Store
	// alice is a PTO-eligible requester, carol a reviewer.
	alice leave.Client
	carol leave.Client
}

func setupLifecycleTest(t *testing.T) lifecycleTestDeps {
	t.Helper()

	store := leavetest.NewStore()
	store.SetNow(func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	store.AddEmployee("token-alice", directory.Employee{
		EmployeeID: "emp-alice", FullName: "Alice Hart", Classification: "Admin Staff",
	})
	store.AddEmployee("token-carol", directory.Employee{
		EmployeeID: "emp-carol", FullName: "Carol Mendez", Classification: "Admin Staff",
	})
	store.AddType(leave.LeaveType{ID: "lt-pto", Name: "Paid Time Off", IsPaidLeave: true, IsActive: true})
	store.AddType(leave.LeaveType{ID: "lt-sabbatical", Name: "Sabbatical", IsPaidLeave: true, IsActive: false})
	store.SetBalance("emp-alice", leave.PTOBalance{
		TotalPTODays:     decimal.NewFromInt(20),
		UsedPTODays:      decimal.NewFromInt(5),
		RemainingPTODays: decimal.NewFromInt(15),
		Year:             2024,
		IsEligible:       true,
	})

	srv := httptest.NewServer(leavetest.NewServer(store).Handler())
	t.Cleanup(srv.Close)

	as := func(token string) leave.Client {
		return leave.NewClient(backend.NewClient(backend.Config{BaseURL: srv.URL, Token: token}))
	}
	return lifecycleTestDeps{store: store, alice: as("token-alice"), carol: as("token-carol")}
}

func TestLeaveLifecycle(t *testing.T) {
	t.Run("success submit approve and deduct over real HTTP", func(t *testing.T) {
		deps := setupLifecycleTest(t)
		ctx := context.Background()

		receipt, err := deps.alice.Submit(ctx, leave.SubmitRequest{
			LeaveTypeID: "lt-pto",
			StartDate:   "2024-06-10",
			EndDate:     "2024-06-12",
			Reason:      "long weekend",
			TotalDays:   3,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, receipt.LeaveRequestID)

		mine, err := deps.alice.MyRequests(ctx)
		assert.NoError(t, err)
		if assert.Len(t, mine, 1) {
			assert.Equal(t, leave.StatusPending, mine[0].Status)
			assert.True(t, mine[0].CanCancel, "owner of a pending request may cancel")
			assert.True(t, mine[0].TotalDays.Equal(decimal.NewFromInt(3)))
		}

		queue, err := deps.carol.PendingApprovals(ctx)
		assert.NoError(t, err)
		if assert.Len(t, queue, 1) {
			assert.False(t, queue[0].CanCancel, "reviewers cannot cancel someone else's request")
		}

		_, err = deps.carol.Approve(ctx, receipt.LeaveRequestID, "enjoy")
		assert.NoError(t, err)

		stored, ok := deps.store.Request(receipt.LeaveRequestID)
		assert.True(t, ok)
		assert.Equal(t, leave.StatusApproved, stored.Status)
		assert.Equal(t, "Carol Mendez", stored.ApprovedBy)
		assert.NotNil(t, stored.ApprovedAt)

		b, err := deps.alice.MyBalance(ctx)
		assert.NoError(t, err)
		assert.True(t, b.UsedPTODays.Equal(decimal.NewFromInt(8)), "approval deducted 3 days")
		assert.True(t, b.RemainingPTODays.Equal(decimal.NewFromInt(12)))
	})

	t.Run("success cancel before review", func(t *testing.T) {
		deps := setupLifecycleTest(t)
		ctx := context.Background()

		receipt, err := deps.alice.Submit(ctx, leave.SubmitRequest{
			LeaveTypeID: "lt-pto", StartDate: "2024-07-01", EndDate: "2024-07-01", TotalDays: 1,
		})
		assert.NoError(t, err)

		_, err = deps.alice.Cancel(ctx, receipt.LeaveRequestID)
		assert.NoError(t, err)

		stored, _ := deps.store.Request(receipt.LeaveRequestID)
		assert.Equal(t, leave.StatusCancelled, stored.Status)

		b, _ := deps.store.Balance("emp-alice")
		assert.True(t, b.UsedPTODays.Equal(decimal.NewFromInt(5)), "cancellation never touches the balance")
	})

	t.Run("negative terminal requests never transition again", func(t *testing.T) {
		deps := setupLifecycleTest(t)
		ctx := context.Background()

		id := deps.store.AddRequest(leave.LeaveRequest{
			EmployeeID: "emp-alice", EmployeeName: "Alice Hart", LeaveType: "Paid Time Off",
			StartDate: mustDay("2024-06-10"), EndDate: mustDay("2024-06-10"),
			TotalDays: decimal.NewFromInt(1), Status: leave.StatusPending,
		})
		_, err := deps.carol.Approve(ctx, id, "")
		assert.NoError(t, err)

		_, err = deps.carol.Approve(ctx, id, "")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)

		_, err = deps.alice.Cancel(ctx, id)
		assert.Error(t, err, "approved requests cannot be cancelled")
	})

	t.Run("negative reject without a reason is refused by the server too", func(t *testing.T) {
		deps := setupLifecycleTest(t)
		ctx := context.Background()

		id := deps.store.AddRequest(leave.LeaveRequest{
			EmployeeID: "emp-alice", LeaveType: "Paid Time Off",
			StartDate: mustDay("2024-06-10"), EndDate: mustDay("2024-06-10"),
			TotalDays: decimal.NewFromInt(1), Status: leave.StatusPending,
		})

		_, err := deps.carol.Reject(ctx, id, "")
		assert.Error(t, err)

		_, err = deps.carol.Reject(ctx, id, "Insufficient coverage that week")
		assert.NoError(t, err)

		stored, _ := deps.store.Request(id)
		assert.Equal(t, leave.StatusRejected, stored.Status)
		assert.Equal(t, "Insufficient coverage that week", stored.RejectionReason)
	})

	t.Run("negative cancelling someone else's request is forbidden", func(t *testing.T) {
		deps := setupLifecycleTest(t)
		ctx := context.Background()

		id := deps.store.AddRequest(leave.LeaveRequest{
			EmployeeID: "emp-alice", LeaveType: "Paid Time Off",
			StartDate: mustDay("2024-06-10"), EndDate: mustDay("2024-06-10"),
			TotalDays: decimal.NewFromInt(1), Status: leave.StatusPending,
		})

		_, err := deps.carol.Cancel(ctx, id)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})

	t.Run("negative inactive type is refused at submission", func(t *testing.T) {
		deps := setupLifecycleTest(t)

		_, err := deps.alice.Submit(context.Background(), leave.SubmitRequest{
			LeaveTypeID: "lt-sabbatical", StartDate: "2024-06-10", EndDate: "2024-06-10", TotalDays: 1,
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("negative unknown token is unauthorized", func(t *testing.T) {
		deps := setupLifecycleTest(t)
		srv := httptest.NewServer(leavetest.NewServer(deps.store).Handler())
		defer srv.Close()

		stranger := leave.NewClient(backend.NewClient(backend.Config{BaseURL: srv.URL, Token: "bogus"}))
		_, err := stranger.MyRequests(context.Background())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})
}

func TestDirectoryLookups(t *testing.T) {
	t.Run("success employees and departments come back", func(t *testing.T) {
		deps := setupLifecycleTest(t)
		deps.store.AddDepartment(directory.Department{DepartmentID: "dep-1", Name: "Operations"})

		srv := httptest.NewServer(leavetest.NewServer(deps.store).Handler())
		defer srv.Close()
		api := backend.NewClient(backend.Config{BaseURL: srv.URL, Token: "token-carol"})

		lookups := directory.NewService(directory.NewClient(api)).Lookups(context.Background())

		assert.Len(t, lookups.Employees, 2)
		assert.Len(t, lookups.Departments, 1)
		assert.Equal(t, "Operations", lookups.Departments[0].Name)
	})

	t.Run("success lookup failure degrades to empty lists", func(t *testing.T) {
		deps := setupLifecycleTest(t)
		srv := httptest.NewServer(leavetest.NewServer(deps.store).Handler())
		srv.Close()

		api := backend.NewClient(backend.Config{BaseURL: srv.URL, Token: "token-carol"})
		lookups := directory.NewService(directory.NewClient(api)).Lookups(context.Background())

		assert.Empty(t, lookups.Employees)
		assert.Empty(t, lookups.Departments)
	})
}

func mustDay(v string) time.Time {
	t, err := leave.ParseDay(v)
	if err != nil {
		panic(err)
	}
	return t
}
