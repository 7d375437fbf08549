package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raw backend payloads. The backend emits fields under more than one casing
// and occasionally more than one name; encoding/json's case-insensitive
// field matching absorbs the casings, the normalization functions below
// absorb the rest. Nothing outside this package interprets a raw payload.

type leaveRequestPayload struct {
	LeaveRequestID  string  `json:"leaveRequestId"`
	EmployeeID      string  `json:"employeeId"`
	EmployeeName    string  `json:"employeeName"`
	LeaveType       string  `json:"leaveType"`
	TypeName        string  `json:"typeName"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	TotalDays       float64 `json:"totalDays"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RequestedAt     string  `json:"requestedAt"`
	ApprovedBy      *string `json:"approvedBy"`
	ApprovedAt      *string `json:"approvedAt"`
	RejectionReason *string `json:"rejectionReason"`
	CanCancel       bool    `json:"canCancel"`
}

func (p leaveRequestPayload) toEntity() (LeaveRequest, error) {
	start, err := ParseDay(p.StartDate)
	if err != nil {
		return LeaveRequest{}, err
	}
	end, err := ParseDay(p.EndDate)
	if err != nil {
		return LeaveRequest{}, err
	}

	typeName := p.LeaveType
	if typeName == "" {
		typeName = p.TypeName
	}

	status, ok := ParseStatus(p.Status)
	if !ok {
		status = StatusPending
	}

	r := LeaveRequest{
		LeaveRequestID: p.LeaveRequestID,
		EmployeeID:     p.EmployeeID,
		EmployeeName:   p.EmployeeName,
		LeaveType:      typeName,
		StartDate:      start,
		EndDate:        end,
		TotalDays:      decimal.NewFromFloat(p.TotalDays),
		Reason:         p.Reason,
		Status:         status,
		CanCancel:      p.CanCancel,
	}

	if p.RequestedAt != "" {
		if ts, err := time.Parse(time.RFC3339, p.RequestedAt); err == nil {
			r.RequestedAt = ts
		}
	}
	if p.ApprovedBy != nil {
		r.ApprovedBy = *p.ApprovedBy
	}
	if p.ApprovedAt != nil && *p.ApprovedAt != "" {
		if ts, err := time.Parse(time.RFC3339, *p.ApprovedAt); err == nil {
			r.ApprovedAt = &ts
		}
	}
	if p.RejectionReason != nil {
		r.RejectionReason = *p.RejectionReason
	}
	return r, nil
}

func toRequestEntities(payloads []leaveRequestPayload) ([]LeaveRequest, error) {
	out := make([]LeaveRequest, 0, len(payloads))
	for _, p := range payloads {
		r, err := p.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type leaveTypePayload struct {
	ID                     string `json:"id"`
	LeaveTypeID            string `json:"leaveTypeId"`
	Name                   string `json:"name"`
	Description            string `json:"description"`
	IsPaidLeave            bool   `json:"isPaidLeave"`
	RequiresApproval       bool   `json:"requiresApproval"`
	MaxDaysPerYear         *int   `json:"maxDaysPerYear"`
	RequiresFullTimeStatus bool   `json:"requiresFullTimeStatus"`
	IsActive               bool   `json:"isActive"`
}

func (p leaveTypePayload) toEntity() LeaveType {
	id := p.ID
	if id == "" {
		id = p.LeaveTypeID
	}
	return LeaveType{
		ID:                     id,
		Name:                   p.Name,
		Description:            p.Description,
		IsPaidLeave:            p.IsPaidLeave,
		RequiresApproval:       p.RequiresApproval,
		MaxDaysPerYear:         p.MaxDaysPerYear,
		RequiresFullTimeStatus: p.RequiresFullTimeStatus,
		IsActive:               p.IsActive,
	}
}

type ptoBalancePayload struct {
	TotalPTODays     float64  `json:"totalPTODays"`
	UsedPTODays      float64  `json:"usedPTODays"`
	RemainingPTODays float64  `json:"remainingPTODays"`
	Year             int      `json:"year"`
	IsEligible       bool     `json:"isEligible"`
	AccrualRate      *float64 `json:"accrualRate"`
}

func (p ptoBalancePayload) toEntity() PTOBalance {
	b := PTOBalance{
		TotalPTODays:     decimal.NewFromFloat(p.TotalPTODays),
		UsedPTODays:      decimal.NewFromFloat(p.UsedPTODays),
		RemainingPTODays: decimal.NewFromFloat(p.RemainingPTODays),
		Year:             p.Year,
		IsEligible:       p.IsEligible,
	}
	if p.AccrualRate != nil {
		rate := decimal.NewFromFloat(*p.AccrualRate)
		b.AccrualRate = &rate
	}
	return b
}

// SubmitRequest is the exact payload posted to the backend. The wizard passes
// its validated draft through unchanged; nothing mutates it between
// validation and dispatch.
type SubmitRequest struct {
	LeaveTypeID string  `json:"leaveTypeId" validate:"required"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	Reason      string  `json:"reason"`
	TotalDays   float64 `json:"totalDays" validate:"required,gt=0"`
}

// SubmitReceipt is the server's confirmation for a created request.
type SubmitReceipt struct {
	Message        string `json:"message"`
	LeaveRequestID string `json:"leaveRequestId"`
}

type messagePayload struct {
	Message string `json:"message"`
}

type approvePayload struct {
	ApprovalNotes string `json:"approvalNotes"`
}

type rejectPayload struct {
	RejectionReason string `json:"rejectionReason"`
}
