package leave

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	leaveerrors "github.com/symtons/leavedesk/internal/leave/errors"
	"github.com/symtons/leavedesk/internal/session"
	"github.com/symtons/leavedesk/internal/shared/apperror"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Requests(ctx context.Context) ([]LeaveRequest, error)
	Types(ctx context.Context) ([]LeaveType, error)
	EligibleTypes(ctx context.Context) ([]LeaveType, error)
	Balance(ctx context.Context) (PTOBalance, error)
	Submit(ctx context.Context, req SubmitRequest) (SubmitReceipt, error)
	Cancel(ctx context.Context, r LeaveRequest) (string, error)
}

type service struct {
	client   Client
	current  session.CurrentUser
	sf       *singleflight.Group
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(client Client, current session.CurrentUser, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	v := validator.New()
	apperror.RegisterTagNames(v)
	return &service{
		client:   client,
		current:  current,
		sf:       &singleflight.Group{},
		validate: v,
		logger:   l,
	}
}

func (s *service) Requests(ctx context.Context) ([]LeaveRequest, error) {
	requests, err := s.client.MyRequests(ctx)
	if err != nil {
		s.logger.Error("fetch my requests failed", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

// Types returns the catalog with IsEligible computed for the current user.
// Concurrent callers share a single fetch.
func (s *service) Types(ctx context.Context) ([]LeaveType, error) {
	v, err, _ := s.sf.Do("types", func() (any, error) {
		return s.client.Types(ctx)
	})
	if err != nil {
		s.logger.Error("fetch leave types failed", zap.Error(err))
		return nil, err
	}

	emp := s.current.CurrentUser()
	types := v.([]LeaveType)
	out := make([]LeaveType, len(types))
	for i, t := range types {
		t.IsEligible = Eligible(t, emp)
		out[i] = t
	}
	return out, nil
}

func (s *service) EligibleTypes(ctx context.Context) ([]LeaveType, error) {
	types, err := s.Types(ctx)
	if err != nil {
		return nil, err
	}
	return EligibleTypes(types, s.current.CurrentUser()), nil
}

func (s *service) Balance(ctx context.Context) (PTOBalance, error) {
	v, err, _ := s.sf.Do("balance", func() (any, error) {
		return s.client.MyBalance(ctx)
	})
	if err != nil {
		s.logger.Error("fetch pto balance failed", zap.Error(err))
		return PTOBalance{}, err
	}
	return v.(PTOBalance), nil
}

// Submit posts a validated draft. The payload is forwarded exactly as
// received; validation here is a defensive repeat of the wizard's step
// checks.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (SubmitReceipt, error) {
	s.logger.Debug("submit leave request",
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Float64("total_days", req.TotalDays),
	)

	if err := s.validate.Struct(req); err != nil {
		mapped := apperror.MapValidationError(err)
		s.logger.Warn("submit leave validation failed", zap.Error(mapped))
		return SubmitReceipt{}, mapped
	}
	start, err := ParseDay(req.StartDate)
	if err != nil {
		return SubmitReceipt{}, err
	}
	end, err := ParseDay(req.EndDate)
	if err != nil {
		return SubmitReceipt{}, err
	}
	if end.Before(start) {
		s.logger.Warn("submit leave date order invalid",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return SubmitReceipt{}, leaveerrors.ErrEndBeforeStart
	}

	receipt, err := s.client.Submit(ctx, req)
	if err != nil {
		s.logger.Error("submit leave failed", zap.Error(err))
		return SubmitReceipt{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("leave_request_id", receipt.LeaveRequestID),
	)
	return receipt, nil
}

// Cancel tears down a pending request. The CanCancel gate is enforced
// locally before any network call; the server remains the authority.
func (s *service) Cancel(ctx context.Context, r LeaveRequest) (string, error) {
	if !r.CanCancel {
		s.logger.Warn("cancel refused locally",
			zap.String("leave_request_id", r.LeaveRequestID),
			zap.String("status", string(r.Status)),
		)
		return "", leaveerrors.ErrNotCancellable
	}
	msg, err := s.client.Cancel(ctx, r.LeaveRequestID)
	if err != nil {
		s.logger.Error("cancel leave failed",
			zap.String("leave_request_id", r.LeaveRequestID),
			zap.Error(err),
		)
		return "", err
	}
	s.logger.Info("cancel leave success",
		zap.String("leave_request_id", r.LeaveRequestID),
	)
	return msg, nil
}
