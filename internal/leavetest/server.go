package leavetest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/symtons/leavedesk/internal/directory"
	"github.com/symtons/leavedesk/internal/leave"
)

// Server is an in-memory stand-in for the leave backend. It speaks the exact
// wire contract the client consumes, including `{message}` error bodies, so
// integration tests and the demo mode run against real HTTP.
type Server struct {
	store  *Store
	engine *gin.Engine
}

func NewServer(store *Store) *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{store: store, engine: gin.New()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() {
	r := s.engine
	r.Use(s.authenticate)

	r.GET("/Leave/MyRequests", s.myRequests)
	r.GET("/Leave/Types", s.listTypes)
	r.POST("/Leave/Request", s.submit)
	r.DELETE("/Leave/Cancel/:id", s.cancel)
	r.GET("/Leave/MyBalance", s.myBalance)
	r.GET("/Leave/PendingApprovals", s.pendingApprovals)
	r.PUT("/Leave/Approve/:id", s.approve)
	r.PUT("/Leave/Reject/:id", s.reject)

	r.GET("/Employee/All", s.listEmployees)
	r.GET("/Department/All", s.listDepartments)
}

func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication is required"})
		return
	}
	emp, ok := s.store.employeeByToken(token)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}
	c.Set("employee", emp)
	c.Next()
}

func currentEmployee(c *gin.Context) directory.Employee {
	return c.MustGet("employee").(directory.Employee)
}

func requestJSON(r leave.LeaveRequest, viewer string) gin.H {
	out := gin.H{
		"leaveRequestId": r.LeaveRequestID,
		"employeeId":     r.EmployeeID,
		"employeeName":   r.EmployeeName,
		"leaveType":      r.LeaveType,
		"startDate":      leave.FormatDay(r.StartDate),
		"endDate":        leave.FormatDay(r.EndDate),
		"totalDays":      r.TotalDays.InexactFloat64(),
		"reason":         r.Reason,
		"status":         string(r.Status),
		"requestedAt":    r.RequestedAt.UTC().Format(time.RFC3339),
		"canCancel":      r.Status == leave.StatusPending && r.EmployeeID == viewer,
	}
	if r.ApprovedBy != "" {
		out["approvedBy"] = r.ApprovedBy
	}
	if r.ApprovedAt != nil {
		out["approvedAt"] = r.ApprovedAt.UTC().Format(time.RFC3339)
	}
	if r.RejectionReason != "" {
		out["rejectionReason"] = r.RejectionReason
	}
	return out
}

func (s *Server) myRequests(c *gin.Context) {
	emp := currentEmployee(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]gin.H, 0)
	for _, r := range s.store.requests {
		if r.EmployeeID == emp.EmployeeID {
			out = append(out, requestJSON(*r, emp.EmployeeID))
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listTypes(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]gin.H, 0, len(s.store.types))
	for _, t := range s.store.types {
		entry := gin.H{
			"id":                     t.ID,
			"name":                   t.Name,
			"description":            t.Description,
			"isPaidLeave":            t.IsPaidLeave,
			"requiresApproval":       t.RequiresApproval,
			"requiresFullTimeStatus": t.RequiresFullTimeStatus,
			"isActive":               t.IsActive,
		}
		if t.MaxDaysPerYear != nil {
			entry["maxDaysPerYear"] = *t.MaxDaysPerYear
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

type submitBody struct {
	LeaveTypeID string  `json:"leaveTypeId" binding:"required"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     string  `json:"endDate" binding:"required"`
	Reason      string  `json:"reason"`
	TotalDays   float64 `json:"totalDays" binding:"required"`
}

func (s *Server) submit(c *gin.Context) {
	emp := currentEmployee(c)

	var body submitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid leave request payload"})
		return
	}

	start, err := leave.ParseDay(body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format, expected YYYY-MM-DD"})
		return
	}
	end, err := leave.ParseDay(body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format, expected YYYY-MM-DD"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "End date cannot be before start date"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	t, ok := s.store.typeByID(body.LeaveTypeID)
	if !ok || !t.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown or inactive leave type"})
		return
	}

	r := &leave.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		EmployeeID:     emp.EmployeeID,
		EmployeeName:   emp.FullName,
		LeaveType:      t.Name,
		StartDate:      start,
		EndDate:        end,
		TotalDays:      decimal.NewFromFloat(body.TotalDays),
		Reason:         body.Reason,
		Status:         leave.StatusPending,
		RequestedAt:    s.store.now(),
	}
	s.store.requests[r.LeaveRequestID] = r

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Leave request submitted successfully",
		"leaveRequestId": r.LeaveRequestID,
	})
}

func (s *Server) cancel(c *gin.Context) {
	emp := currentEmployee(c)
	id := c.Param("id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	r, ok := s.store.requests[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Leave request not found"})
		return
	}
	if r.EmployeeID != emp.EmployeeID {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only cancel your own requests"})
		return
	}
	if !leave.CanTransition(r.Status, leave.StatusCancelled) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only pending requests can be cancelled"})
		return
	}
	r.Status = leave.StatusCancelled
	c.JSON(http.StatusOK, gin.H{"message": "Leave request cancelled"})
}

func (s *Server) myBalance(c *gin.Context) {
	emp := currentEmployee(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b, ok := s.store.balances[emp.EmployeeID]
	if !ok {
		c.JSON(http.StatusOK, gin.H{"isEligible": false})
		return
	}
	out := gin.H{
		"totalPTODays":     b.TotalPTODays.InexactFloat64(),
		"usedPTODays":      b.UsedPTODays.InexactFloat64(),
		"remainingPTODays": b.RemainingPTODays.InexactFloat64(),
		"year":             b.Year,
		"isEligible":       b.IsEligible,
	}
	if b.AccrualRate != nil {
		out["accrualRate"] = b.AccrualRate.InexactFloat64()
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) pendingApprovals(c *gin.Context) {
	emp := currentEmployee(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]gin.H, 0)
	for _, r := range s.store.requests {
		if r.Status == leave.StatusPending {
			out = append(out, requestJSON(*r, emp.EmployeeID))
		}
	}
	c.JSON(http.StatusOK, out)
}

type approveBody struct {
	ApprovalNotes string `json:"approvalNotes"`
}

func (s *Server) approve(c *gin.Context) {
	emp := currentEmployee(c)
	id := c.Param("id")

	var body approveBody
	_ = c.ShouldBindJSON(&body)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	r, ok := s.store.requests[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Leave request not found"})
		return
	}
	if !leave.CanTransition(r.Status, leave.StatusApproved) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Request is not pending approval"})
		return
	}

	now := s.store.now()
	r.Status = leave.StatusApproved
	r.ApprovedBy = emp.FullName
	r.ApprovedAt = &now
	r.RejectionReason = ""

	if leave.DeductsPTO(r.LeaveType) {
		s.store.deductPTO(r.EmployeeID, r.TotalDays)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Leave request approved"})
}

type rejectBody struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
}

func (s *Server) reject(c *gin.Context) {
	id := c.Param("id")

	var body rejectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Rejection reason is required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	r, ok := s.store.requests[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Leave request not found"})
		return
	}
	if !leave.CanTransition(r.Status, leave.StatusRejected) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Request is not pending approval"})
		return
	}
	r.Status = leave.StatusRejected
	r.RejectionReason = body.RejectionReason
	c.JSON(http.StatusOK, gin.H{"message": "Leave request rejected"})
}

func (s *Server) listEmployees(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]directory.Employee, 0, len(s.store.employees))
	for _, emp := range s.store.employees {
		out = append(out, emp)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listDepartments(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, s.store.departments)
}
