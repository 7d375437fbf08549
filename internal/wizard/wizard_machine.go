package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/symtons/leavedesk/internal/balance"
	"github.com/symtons/leavedesk/internal/leave"
	leaveerrors "github.com/symtons/leavedesk/internal/leave/errors"
	"github.com/symtons/leavedesk/internal/shared/clock"
)

// Step is the wizard's position. Forward navigation is gated by step-local
// validation; backward navigation never is.
type Step int

const (
	StepSelectType Step = iota
	StepChooseDates
	StepReview
)

// Phase tracks the submission outcome on top of the step position.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseSubmitted
	PhaseFailed
)

// NavigateDelay is how long the confirmation stays on screen before the
// scheduled navigation away fires.
const NavigateDelay = 2 * time.Second

// Draft is the in-progress user input. It survives a failed submission so
// nothing has to be retyped.
type Draft struct {
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	IsHalfDay   bool
}

// Wizard drives the three-step request form. It is single-threaded by
// contract: every mutation happens on a user event or on completion of the
// one in-flight submit.
type Wizard struct {
	service  leave.Service
	clock    clock.Clock
	navigate func()
	logger   *zap.Logger

	step  Step
	phase Phase
	draft Draft

	totalDays decimal.Decimal
	dateErr   error
	stepErr   error

	types        []leave.LeaveType
	ptoBalance   *leave.PTOBalance
	confirmation string
}

// New builds a wizard with the draft pre-populated: today for both dates, so
// a single-day request needs no date clicks at all.
func New(service leave.Service, c clock.Clock, onNavigate func(), logger ...*zap.Logger) *Wizard {
	l := zap.L().Named("wizard")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("wizard")
	}
	today := clock.Today(c)
	w := &Wizard{
		service:  service,
		clock:    c,
		navigate: onNavigate,
		logger:   l,
		draft: Draft{
			StartDate: today,
			EndDate:   today,
		},
	}
	w.recompute()
	return w
}

// Load fetches the data the wizard renders: the eligible type catalog
// (blocking, it is the primary data of step one) and the PTO balance
// (fail-soft, it only feeds the review warning).
func (w *Wizard) Load(ctx context.Context) error {
	types, err := w.service.EligibleTypes(ctx)
	if err != nil {
		return err
	}
	w.types = types

	b, err := w.service.Balance(ctx)
	if err != nil {
		w.logger.Warn("balance lookup failed, review warning disabled", zap.Error(err))
		w.ptoBalance = nil
		return nil
	}
	w.ptoBalance = &b
	return nil
}

func (w *Wizard) Step() Step                       { return w.step }
func (w *Wizard) Phase() Phase                     { return w.phase }
func (w *Wizard) Draft() Draft                     { return w.draft }
func (w *Wizard) TotalDays() decimal.Decimal       { return w.totalDays }
func (w *Wizard) DateError() error                 { return w.dateErr }
func (w *Wizard) StepError() error                 { return w.stepErr }
func (w *Wizard) Confirmation() string             { return w.confirmation }
func (w *Wizard) EligibleTypes() []leave.LeaveType { return w.types }

func (w *Wizard) editable() bool {
	return w.phase == PhaseEditing || w.phase == PhaseFailed
}

func (w *Wizard) SetType(leaveTypeID string) {
	if !w.editable() {
		return
	}
	w.draft.LeaveTypeID = leaveTypeID
}

// SetStartDate records the start date. With no end date chosen yet the end
// date snaps to the same day, saving a click on single-day requests.
func (w *Wizard) SetStartDate(t time.Time) {
	if !w.editable() {
		return
	}
	w.draft.StartDate = t
	if w.draft.EndDate.IsZero() {
		w.draft.EndDate = t
	}
	w.recompute()
}

func (w *Wizard) SetEndDate(t time.Time) {
	if !w.editable() {
		return
	}
	w.draft.EndDate = t
	w.recompute()
}

func (w *Wizard) SetHalfDay(halfDay bool) {
	if !w.editable() {
		return
	}
	w.draft.IsHalfDay = halfDay
	w.recompute()
}

func (w *Wizard) SetReason(reason string) {
	if !w.editable() {
		return
	}
	w.draft.Reason = reason
}

// recompute runs whenever dates or the half-day flag change.
func (w *Wizard) recompute() {
	if w.draft.StartDate.IsZero() || w.draft.EndDate.IsZero() {
		w.totalDays = decimal.Zero
		w.dateErr = nil
		return
	}
	w.totalDays, w.dateErr = leave.ComputeTotalDays(w.draft.StartDate, w.draft.EndDate, w.draft.IsHalfDay)
}

// Next advances one step if the current step validates; otherwise it records
// a step-scoped error and stays put. Review is terminal for navigation.
func (w *Wizard) Next() error {
	if !w.editable() || w.step >= StepReview {
		return nil
	}
	if err := w.validateStep(w.step); err != nil {
		w.stepErr = err
		return err
	}
	w.stepErr = nil
	w.step++
	return nil
}

// Back is always permitted and clears errors; nothing is validated on the
// way backward.
func (w *Wizard) Back() {
	if !w.editable() || w.step == StepSelectType {
		return
	}
	w.stepErr = nil
	w.step--
}

func (w *Wizard) validateStep(step Step) error {
	switch step {
	case StepSelectType:
		if w.draft.LeaveTypeID == "" {
			return leaveerrors.ErrLeaveTypeRequired
		}
	case StepChooseDates:
		if w.draft.StartDate.IsZero() || w.draft.EndDate.IsZero() {
			return leaveerrors.ErrDatesRequired
		}
		if w.dateErr != nil {
			return w.dateErr
		}
	}
	return nil
}

// Warnings are surfaced on the review step without blocking submission:
// over-budget requests route to special approval downstream.
func (w *Wizard) Warnings() []string {
	var out []string
	t, ok := w.selectedType()
	if !ok {
		return out
	}
	if t.MaxDaysPerYear != nil {
		annualCap := decimal.NewFromInt(int64(*t.MaxDaysPerYear))
		if w.totalDays.GreaterThan(annualCap) {
			out = append(out, fmt.Sprintf("This request exceeds the annual cap of %d days for %s.", *t.MaxDaysPerYear, t.Name))
		}
	}
	if w.ptoBalance != nil && w.ptoBalance.IsEligible && leave.DeductsPTO(t.Name) {
		p := balance.Project(*w.ptoBalance, w.totalDays)
		if p.OverBudget {
			out = append(out, fmt.Sprintf("This request exceeds your remaining PTO balance by %s days.", p.ProjectedRemaining.Neg().String()))
		}
	}
	return out
}

func (w *Wizard) selectedType() (leave.LeaveType, bool) {
	for _, t := range w.types {
		if t.ID == w.draft.LeaveTypeID {
			return t, true
		}
	}
	return leave.LeaveType{}, false
}

// Payload freezes the draft into the exact wire payload. What validation saw
// is what the collaborator receives.
func (w *Wizard) Payload() leave.SubmitRequest {
	return leave.SubmitRequest{
		LeaveTypeID: w.draft.LeaveTypeID,
		StartDate:   leave.FormatDay(w.draft.StartDate),
		EndDate:     leave.FormatDay(w.draft.EndDate),
		Reason:      w.draft.Reason,
		TotalDays:   w.totalDays.InexactFloat64(),
	}
}

// Submit is the only forward action from Review. All step checks run once
// more defensively, then the draft is dispatched unchanged. On success the
// server confirmation is held on screen and navigation away is scheduled
// after NavigateDelay; on failure editing resumes on Review with the draft
// intact.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.phase == PhaseSubmitting || w.phase == PhaseSubmitted {
		return nil
	}
	for _, step := range []Step{StepSelectType, StepChooseDates} {
		if err := w.validateStep(step); err != nil {
			w.stepErr = err
			return err
		}
	}

	w.phase = PhaseSubmitting
	receipt, err := w.service.Submit(ctx, w.Payload())
	if err != nil {
		w.phase = PhaseFailed
		w.step = StepReview
		w.stepErr = err
		return err
	}

	w.phase = PhaseSubmitted
	w.stepErr = nil
	w.confirmation = receipt.Message
	if w.navigate != nil {
		w.clock.AfterFunc(NavigateDelay, w.navigate)
	}
	return nil
}
