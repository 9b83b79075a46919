package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/campverse/camp-booking/internal/availability"
	"github.com/campverse/camp-booking/internal/model"
	"github.com/campverse/camp-booking/internal/pricing"
	"github.com/campverse/camp-booking/internal/store"
	"github.com/google/uuid"
)

// workflow is one registration session's state. Each session is driven
// by a single caller; the mutex only guards against misbehaving clients
// replaying requests in parallel.
type workflow struct {
	mu         sync.Mutex
	id         string
	unitID     string
	campID     string
	step       Step
	session    model.RegistrationSession
	record     *model.ConfirmationRecord
	token      model.ReservationToken
	failReason string
}

// Status is the externally visible view of a session.
type Status struct {
	SessionID  string                    `json:"session_id"`
	UnitID     string                    `json:"unit_id"`
	CampID     string                    `json:"camp_id"`
	Step       Step                      `json:"step"`
	Session    model.RegistrationSession `json:"session"`
	FailReason string                    `json:"fail_reason,omitempty"`
}

// Service owns the registration sessions and implements the booking
// interface: start, submit a step, go back, confirm, abandon. The seat
// counter is only ever touched at Confirm; data entry holds nothing.
type Service struct {
	catalog store.Catalog
	ledger  store.Ledger
	policy  availability.Policy

	mu       sync.RWMutex
	sessions map[string]*workflow
}

// NewService constructs a Service with the default availability policy.
func NewService(catalog store.Catalog, ledger store.Ledger) *Service {
	return &Service{
		catalog:  catalog,
		ledger:   ledger,
		policy:   availability.DefaultPolicy,
		sessions: make(map[string]*workflow),
	}
}

// Start opens a registration session against a unit. Units already
// classified sold_out are rejected up front, before any step is shown.
func (s *Service) Start(ctx context.Context, unitID string) (*Status, error) {
	unit, err := s.catalog.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	status, err := s.policy.ClassifyUnit(unit)
	if err != nil {
		return nil, err
	}
	if status == availability.StatusSoldOut {
		return nil, model.ErrSoldOut
	}

	w := &workflow{
		id:     uuid.New().String(),
		unitID: unit.ID,
		campID: unit.CampID,
		step:   StepChildDetails,
		session: model.RegistrationSession{
			Medical: model.NewMedicalProfile(),
		},
	}

	s.mu.Lock()
	s.sessions[w.id] = w
	s.mu.Unlock()

	return w.status(), nil
}

// SubmitStep validates the payload for the named step and advances the
// workflow. The payload must target the session's current step; on a
// validation failure the session stays where it is.
func (s *Service) SubmitStep(ctx context.Context, sessionID string, step Step, payload json.RawMessage) (*Status, error) {
	if !step.Valid() {
		return nil, model.NewValidationError("step", fmt.Sprintf("unknown step %q", step))
	}

	w, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.open(); err != nil {
		return nil, err
	}
	if step != w.step {
		return nil, fmt.Errorf("%w: session is at %q, got %q", model.ErrWrongStep, w.step, step)
	}

	switch step {
	case StepChildDetails:
		var in ChildDetailsInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		unit, err := s.catalog.GetUnit(ctx, w.unitID)
		if err != nil {
			return nil, err
		}
		child, err := validateChild(in, unit)
		if err != nil {
			return nil, err
		}
		w.session.Child = child
		w.step = StepParentDetails

	case StepParentDetails:
		var in ParentDetailsInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		parent, emergency, err := validateParent(in)
		if err != nil {
			return nil, err
		}
		w.session.Parent = parent
		w.session.Emergency = emergency
		w.step = StepMedicalInfo

	case StepMedicalInfo:
		var in MedicalInfoInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		medical, err := validateMedical(in)
		if err != nil {
			return nil, err
		}
		w.session.Medical = medical
		w.step = StepReview

	case StepReview:
		var in ReviewInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		w.session.Consent = in.TermsAccepted
		// Stays in review; Confirm performs the final transition.
	}

	return w.status(), nil
}

// GoBack moves the session one step backward without validation.
func (s *Service) GoBack(ctx context.Context, sessionID string) (*Status, error) {
	w, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.open(); err != nil {
		return nil, err
	}
	w.step = w.step.previous()
	return w.status(), nil
}

// Confirm performs the review → confirmed transition: the quote is
// recomputed against current unit pricing, exactly one seat is
// reserved, and the confirmation record is materialized. On ErrSoldOut
// the session parks in booking_failed with its data intact so the
// caller can pick another unit without re-entering anything. On
// ErrInventoryUnavailable the session stays in review and the confirm
// may be retried.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*model.ConfirmationRecord, error) {
	w, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepConfirmed:
		return nil, model.ErrAlreadyConfirmed
	case StepAbandoned, StepBookingFailed:
		return nil, model.ErrSessionClosed
	case StepReview:
		// fall through to the commit
	default:
		return nil, fmt.Errorf("%w: session is at %q, confirm requires %q",
			model.ErrWrongStep, w.step, StepReview)
	}

	if !w.session.Consent {
		return nil, model.NewValidationError("terms_accepted", "terms must be accepted before confirming")
	}

	unit, err := s.catalog.GetUnit(ctx, w.unitID)
	if err != nil {
		return nil, err
	}
	camp, err := s.catalog.GetCamp(ctx, unit.CampID)
	if err != nil {
		return nil, err
	}
	quote, err := pricing.Quote(unit, camp.TaxRate)
	if err != nil {
		return nil, err
	}

	token, err := s.ledger.Reserve(ctx, w.unitID)
	if err != nil {
		if errors.Is(err, model.ErrSoldOut) {
			w.step = StepBookingFailed
			w.failReason = "the selected batch sold out before confirmation"
			return nil, err
		}
		// Infrastructure and integrity failures leave the session in
		// review; no seat was taken.
		return nil, err
	}

	now := time.Now().UTC()
	w.token = token
	w.record = &model.ConfirmationRecord{
		RegistrationID: newRegistrationID(now),
		PaymentRef:     newPaymentRef(),
		UnitID:         unit.ID,
		CampID:         camp.ID,
		Session:        w.session,
		Quote:          quote,
		ConfirmedAt:    now,
	}
	w.step = StepConfirmed
	return w.record, nil
}

// Abandon closes a session before confirmation. No compensating action
// is needed: data entry never held a seat. Confirmed sessions cannot
// be abandoned.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	w, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepConfirmed {
		return model.ErrAlreadyConfirmed
	}
	w.step = StepAbandoned

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// Get returns the session's current status.
func (s *Service) Get(sessionID string) (*Status, error) {
	w, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status(), nil
}

func (s *Service) lookup(sessionID string) (*workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.sessions[sessionID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return w, nil
}

// open fails when the workflow has reached a terminal state. Callers
// must hold w.mu.
func (w *workflow) open() error {
	switch w.step {
	case StepConfirmed:
		return model.ErrAlreadyConfirmed
	case StepAbandoned, StepBookingFailed:
		return model.ErrSessionClosed
	}
	return nil
}

func (w *workflow) status() *Status {
	return &Status{
		SessionID:  w.id,
		UnitID:     w.unitID,
		CampID:     w.campID,
		Step:       w.step,
		Session:    w.session,
		FailReason: w.failReason,
	}
}

func decode(payload json.RawMessage, dst any) error {
	if len(payload) == 0 {
		return model.NewValidationError("payload", "request body is required")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return model.NewValidationError("payload", "malformed step payload")
	}
	return nil
}

// newRegistrationID mints the short reference shown on the success
// page, derived from the confirmation timestamp.
func newRegistrationID(now time.Time) string {
	return fmt.Sprintf("REG-%08d", now.UnixMilli()%100_000_000)
}

func newPaymentRef() string {
	return "PAY-" + strings.ToUpper(uuid.New().String()[:8])
}
