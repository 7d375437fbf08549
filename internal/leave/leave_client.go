package leave

import (
	"context"

	"github.com/symtons/leavedesk/internal/shared/backend"
)

//go:generate mockgen -source=leave_client.go -destination=mock/leave_client_mock.go -package=mock
type Client interface {
	MyRequests(ctx context.Context) ([]LeaveRequest, error)
	Types(ctx context.Context) ([]LeaveType, error)
	Submit(ctx context.Context, req SubmitRequest) (SubmitReceipt, error)
	Cancel(ctx context.Context, id string) (string, error)
	MyBalance(ctx context.Context) (PTOBalance, error)
	PendingApprovals(ctx context.Context) ([]LeaveRequest, error)
	Approve(ctx context.Context, id, approvalNotes string) (string, error)
	Reject(ctx context.Context, id, rejectionReason string) (string, error)
}

type client struct {
	api *backend.Client
}

// NewClient wraps the shared transport with the leave endpoints. This is the
// normalization boundary: raw payloads come in, canonical entities go out.
func NewClient(api *backend.Client) Client {
	return &client{api: api}
}

func (c *client) MyRequests(ctx context.Context) ([]LeaveRequest, error) {
	var payloads []leaveRequestPayload
	if err := c.api.Get(ctx, "/Leave/MyRequests", &payloads); err != nil {
		return nil, err
	}
	return toRequestEntities(payloads)
}

func (c *client) Types(ctx context.Context) ([]LeaveType, error) {
	var payloads []leaveTypePayload
	if err := c.api.Get(ctx, "/Leave/Types", &payloads); err != nil {
		return nil, err
	}
	out := make([]LeaveType, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toEntity())
	}
	return out, nil
}

func (c *client) Submit(ctx context.Context, req SubmitRequest) (SubmitReceipt, error) {
	var receipt SubmitReceipt
	if err := c.api.Post(ctx, "/Leave/Request", req, &receipt); err != nil {
		return SubmitReceipt{}, err
	}
	return receipt, nil
}

func (c *client) Cancel(ctx context.Context, id string) (string, error) {
	var msg messagePayload
	if err := c.api.Delete(ctx, "/Leave/Cancel/"+id, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

func (c *client) MyBalance(ctx context.Context) (PTOBalance, error) {
	var payload ptoBalancePayload
	if err := c.api.Get(ctx, "/Leave/MyBalance", &payload); err != nil {
		return PTOBalance{}, err
	}
	return payload.toEntity(), nil
}

func (c *client) PendingApprovals(ctx context.Context) ([]LeaveRequest, error) {
	var payloads []leaveRequestPayload
	if err := c.api.Get(ctx, "/Leave/PendingApprovals", &payloads); err != nil {
		return nil, err
	}
	return toRequestEntities(payloads)
}

func (c *client) Approve(ctx context.Context, id, approvalNotes string) (string, error) {
	var msg messagePayload
	if err := c.api.Put(ctx, "/Leave/Approve/"+id, approvePayload{ApprovalNotes: approvalNotes}, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

func (c *client) Reject(ctx context.Context, id, rejectionReason string) (string, error) {
	var msg messagePayload
	if err := c.api.Put(ctx, "/Leave/Reject/"+id, rejectPayload{RejectionReason: rejectionReason}, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}
