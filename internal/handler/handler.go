// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the registration and catalog layers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/campverse/camp-booking/internal/availability"
	"github.com/campverse/camp-booking/internal/model"
	"github.com/campverse/camp-booking/internal/registration"
	"github.com/campverse/camp-booking/internal/store"
	"github.com/go-chi/chi/v5"
)

// BookingHandler holds all HTTP handlers for the camp booking API.
type BookingHandler struct {
	catalog store.Catalog
	svc     *registration.Service
	policy  availability.Policy
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(catalog store.Catalog, svc *registration.Service) *BookingHandler {
	return &BookingHandler{catalog: catalog, svc: svc, policy: availability.DefaultPolicy}
}

// Routes mounts the API onto a chi router.
func (h *BookingHandler) Routes(r chi.Router) {
	r.Route("/camps", func(r chi.Router) {
		r.Get("/{id}", h.GetCamp)
		r.Get("/{id}/units", h.ListUnits)
	})
	r.Route("/registrations", func(r chi.Router) {
		r.Post("/", h.StartRegistration)
		r.Get("/{id}", h.GetRegistration)
		r.Post("/{id}/steps/{step}", h.SubmitStep)
		r.Post("/{id}/back", h.GoBack)
		r.Post("/{id}/confirm", h.Confirm)
		r.Delete("/{id}", h.Abandon)
	})
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps the booking error taxonomy onto HTTP statuses.
// Data-integrity faults are logged and surfaced as a generic failure,
// never shown raw to the end user.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:  "validation failed",
			Field:  verr.Field,
			Reason: verr.Reason,
		})
	case errors.Is(err, model.ErrCampNotFound):
		writeError(w, http.StatusNotFound, "camp not found")
	case errors.Is(err, model.ErrUnitNotFound):
		writeError(w, http.StatusNotFound, "unit not found")
	case errors.Is(err, model.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "registration session not found")
	case errors.Is(err, model.ErrSoldOut):
		writeError(w, http.StatusConflict, "this batch is fully booked")
	case errors.Is(err, model.ErrAlreadyConfirmed):
		writeError(w, http.StatusConflict, "registration is already confirmed")
	case errors.Is(err, model.ErrSessionClosed):
		writeError(w, http.StatusConflict, "registration session is closed")
	case errors.Is(err, model.ErrWrongStep):
		writeError(w, http.StatusConflict, "request does not match the session's current step")
	case errors.Is(err, model.ErrInventoryUnavailable):
		writeError(w, http.StatusServiceUnavailable, "booking is temporarily unavailable, please retry")
	case errors.Is(err, model.ErrInvalidInventory), errors.Is(err, model.ErrInvalidUnit):
		log.Printf("catalog integrity fault: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to process booking")
	default:
		log.Printf("unhandled booking error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to process booking")
	}
}

// ─── Catalog handlers ─────────────────────────────────────────────────────────

// GetCamp handles GET /camps/{id}
func (h *BookingHandler) GetCamp(w http.ResponseWriter, r *http.Request) {
	camp, err := h.catalog.GetCamp(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camp)
}

// unitView decorates a unit with its derived availability data.
type unitView struct {
	model.Unit
	Status    availability.Status `json:"status"`
	SeatsLeft int                 `json:"seats_left"`
}

// ListUnits handles GET /camps/{id}/units
// Returns the camp's units with derived status and seats remaining.
func (h *BookingHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	campID := chi.URLParam(r, "id")
	if _, err := h.catalog.GetCamp(r.Context(), campID); err != nil {
		writeDomainError(w, err)
		return
	}

	units, err := h.catalog.ListUnits(r.Context(), campID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	views := make([]unitView, 0, len(units))
	for _, u := range units {
		status, err := h.policy.ClassifyUnit(&u)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		views = append(views, unitView{Unit: u, Status: status, SeatsLeft: u.SeatsLeft()})
	}
	writeJSON(w, http.StatusOK, views)
}

// ─── Registration handlers ────────────────────────────────────────────────────

// startRequest is the payload for opening a registration session.
type startRequest struct {
	UnitID string `json:"unit_id"`
}

// StartRegistration handles POST /registrations
// Opens a session against a unit unless it is already sold out.
func (h *BookingHandler) StartRegistration(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UnitID == "" {
		writeError(w, http.StatusBadRequest, "unit_id is required")
		return
	}

	st, err := h.svc.Start(r.Context(), req.UnitID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

// GetRegistration handles GET /registrations/{id}
func (h *BookingHandler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// SubmitStep handles POST /registrations/{id}/steps/{step}
// Validates the step payload and advances the workflow on success.
func (h *BookingHandler) SubmitStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	step := registration.Step(chi.URLParam(r, "step"))

	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	st, err := h.svc.SubmitStep(r.Context(), id, step, payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"next_step": st.Step, "session": st})
}

// GoBack handles POST /registrations/{id}/back
// Moves one step backward; never validates.
func (h *BookingHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.GoBack(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"step": st.Step})
}

// Confirm handles POST /registrations/{id}/confirm
// Commits the registration: quote, seat reservation, confirmation record.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// Abandon handles DELETE /registrations/{id}
func (h *BookingHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
