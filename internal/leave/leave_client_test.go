package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/symtons/leavedesk/internal/leave"
	"github.com/symtons/leavedesk/internal/shared/backend"
)

func newClientAgainst(t *testing.T, handler http.HandlerFunc) leave.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return leave.NewClient(backend.NewClient(backend.Config{BaseURL: srv.URL, Token: "t"}))
}

func TestClientNormalization(t *testing.T) {
	t.Run("success PascalCase and typeName payloads normalize to one shape", func(t *testing.T) {
		// Two records from the same endpoint under different historical
		// casings and field names. Both must come out canonical.
		c := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/Leave/MyRequests", r.URL.Path)
			w.Write([]byte(`[
				{
					"LeaveRequestId": "req-1",
					"EmployeeId": "emp-1",
					"LeaveType": "Paid Time Off",
					"StartDate": "2024-06-10",
					"EndDate": "2024-06-14",
					"TotalDays": 5,
					"Status": "PENDING",
					"CanCancel": true
				},
				{
					"leaveRequestId": "req-2",
					"employeeId": "emp-1",
					"typeName": "Sick Leave",
					"startDate": "2024-04-02",
					"endDate": "2024-04-02",
					"totalDays": 0.5,
					"status": "approved"
				}
			]`))
		})

		got, err := c.MyRequests(context.Background())

		assert.NoError(t, err)
		assert.Len(t, got, 2)

		assert.Equal(t, "req-1", got[0].LeaveRequestID)
		assert.Equal(t, "Paid Time Off", got[0].LeaveType)
		assert.Equal(t, leave.StatusPending, got[0].Status)
		assert.True(t, got[0].CanCancel)
		assert.True(t, got[0].TotalDays.Equal(decimal.NewFromInt(5)))

		assert.Equal(t, "Sick Leave", got[1].LeaveType, "typeName fills in for leaveType")
		assert.Equal(t, leave.StatusApproved, got[1].Status)
		assert.True(t, got[1].TotalDays.Equal(decimal.RequireFromString("0.5")))
	})

	t.Run("success leaveTypeId fills in for a missing catalog id", func(t *testing.T) {
		c := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"id": "lt-1", "name": "Paid Time Off", "isPaidLeave": true, "isActive": true},
				{"leaveTypeId": "lt-2", "Name": "Unpaid Leave", "IsActive": true}
			]`))
		})

		got, err := c.Types(context.Background())

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "lt-1", got[0].ID)
		assert.Equal(t, "lt-2", got[1].ID)
		assert.False(t, got[0].IsEligible, "eligibility is never part of the wire payload")
	})

	t.Run("success balance decimals survive the float payload", func(t *testing.T) {
		c := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"totalPTODays": 20, "usedPTODays": 15, "remainingPTODays": 5, "year": 2024, "isEligible": true, "accrualRate": 1.25}`))
		})

		got, err := c.MyBalance(context.Background())

		assert.NoError(t, err)
		assert.True(t, got.TotalPTODays.Equal(decimal.NewFromInt(20)))
		assert.True(t, got.RemainingPTODays.Equal(decimal.NewFromInt(5)))
		if assert.NotNil(t, got.AccrualRate) {
			assert.True(t, got.AccrualRate.Equal(decimal.RequireFromString("1.25")))
		}
	})

	t.Run("negative malformed date in a record fails the whole fetch", func(t *testing.T) {
		c := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"leaveRequestId": "req-1", "startDate": "06/10/2024", "endDate": "2024-06-14"}]`))
		})

		got, err := c.MyRequests(context.Background())

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
