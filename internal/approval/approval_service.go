package approval

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	approvalerrors "github.com/symtons/leavedesk/internal/approval/errors"
	"github.com/symtons/leavedesk/internal/leave"
)

// MinRejectReasonLength is the hard client-side gate on rejection reasons.
// Below it the action is refused before any network call happens.
const MinRejectReasonLength = 10

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Confirmation is explicit modal state: the dialog a reviewer must accept
// before an approve/reject reaches the network, carrying a human-readable
// summary of the consequences.
type Confirmation struct {
	Action  Action
	Request leave.LeaveRequest
	Summary string
}

// Workflow owns the reviewer's pending collection. Mutations are
// optimistic-refresh: nothing flips status locally; every successful action
// re-fetches the authoritative list.
type Workflow struct {
	client leave.Client
	logger *zap.Logger

	mu       sync.Mutex
	pending  []leave.LeaveRequest
	inFlight map[string]bool
	closed   bool

	// Refresh generations. A slow fetch that started before a newer one
	// completed must never overwrite the newer result.
	fetchSeq uint64
	applied  uint64
}

func NewWorkflow(client leave.Client, logger ...*zap.Logger) *Workflow {
	l := zap.L().Named("approval.workflow")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.workflow")
	}
	return &Workflow{
		client:   client,
		logger:   l,
		inFlight: make(map[string]bool),
	}
}

// Refresh re-fetches the pending list. Stale completions (older generation,
// or arriving after Close) are discarded, not applied.
func (w *Workflow) Refresh(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.fetchSeq++
	seq := w.fetchSeq
	w.mu.Unlock()

	list, err := w.client.PendingApprovals(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	if err != nil {
		w.logger.Error("refresh pending approvals failed", zap.Error(err))
		return err
	}
	if seq <= w.applied {
		w.logger.Debug("discarding stale refresh", zap.Uint64("seq", seq), zap.Uint64("applied", w.applied))
		return nil
	}
	w.applied = seq
	w.pending = leave.SortRequests(list, leave.SortByRequestedAt, leave.SortDesc)
	return nil
}

// Pending returns a copy of the owned collection.
func (w *Workflow) Pending() []leave.LeaveRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]leave.LeaveRequest, len(w.pending))
	copy(out, w.pending)
	return out
}

// InFlight reports whether an action on the given request has not resolved
// yet; the view disables the triggering control while it is true.
func (w *Workflow) InFlight(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight[id]
}

// BeginApprove opens the mandatory confirmation dialog for an approval.
func (w *Workflow) BeginApprove(id string) (Confirmation, error) {
	return w.begin(ActionApprove, id)
}

// BeginReject opens the mandatory confirmation dialog for a rejection.
func (w *Workflow) BeginReject(id string) (Confirmation, error) {
	return w.begin(ActionReject, id)
}

func (w *Workflow) begin(action Action, id string) (Confirmation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[id] {
		return Confirmation{}, approvalerrors.ErrActionInFlight
	}
	for _, r := range w.pending {
		if r.LeaveRequestID == id {
			return Confirmation{
				Action:  action,
				Request: r,
				Summary: summarize(action, r),
			}, nil
		}
	}
	return Confirmation{}, approvalerrors.ErrRequestNotFound
}

func summarize(action Action, r leave.LeaveRequest) string {
	name := r.EmployeeName
	if name == "" {
		name = "the employee"
	}
	if action == ActionReject {
		return fmt.Sprintf("Rejecting returns this request to %s. No balance change occurs.", name)
	}
	if leave.DeductsPTO(r.LeaveType) {
		return fmt.Sprintf("Approving will deduct %s days from %s's PTO balance.", r.TotalDays.String(), name)
	}
	return fmt.Sprintf("Approving will not affect %s's PTO balance.", name)
}

// Approve issues the approval and, on success, triggers a full re-fetch
// rather than patching the item in place.
func (w *Workflow) Approve(ctx context.Context, id, comments string) error {
	return w.act(ctx, ActionApprove, id, comments)
}

// Reject refuses locally unless the trimmed reason meets the minimum length;
// refusal never issues a network call.
func (w *Workflow) Reject(ctx context.Context, id, reason string) error {
	if len(strings.TrimSpace(reason)) < MinRejectReasonLength {
		w.logger.Warn("reject refused locally",
			zap.String("leave_request_id", id),
			zap.Int("reason_length", len(strings.TrimSpace(reason))),
		)
		return approvalerrors.ErrReasonTooShort
	}
	return w.act(ctx, ActionReject, id, reason)
}

func (w *Workflow) act(ctx context.Context, action Action, id, text string) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	if w.inFlight[id] {
		w.mu.Unlock()
		return approvalerrors.ErrActionInFlight
	}
	w.inFlight[id] = true
	w.mu.Unlock()

	var err error
	if action == ActionApprove {
		_, err = w.client.Approve(ctx, id, text)
	} else {
		_, err = w.client.Reject(ctx, id, text)
	}

	w.mu.Lock()
	delete(w.inFlight, id)
	closed := w.closed
	w.mu.Unlock()

	if closed {
		// Late arrival after unmount: discard, act on nothing.
		return nil
	}
	if err != nil {
		// The item stays Pending locally; the server decides whether the
		// transition already happened, so a manual retry is safe.
		w.logger.Error("approval action failed",
			zap.String("action", string(action)),
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return err
	}

	w.logger.Info("approval action succeeded",
		zap.String("action", string(action)),
		zap.String("leave_request_id", id),
	)
	return w.Refresh(ctx)
}

// Close marks the owning view as gone; responses that arrive afterwards are
// discarded.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}
