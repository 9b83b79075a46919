package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campverse/camp-booking/internal/model"
	"github.com/campverse/camp-booking/internal/registration"
	"github.com/campverse/camp-booking/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *store.MemoryStore) {
	t.Helper()
	m := store.NewMemoryStore()
	store.Seed(m)

	svc := registration.NewService(m, m)
	h := NewBookingHandler(m, svc)

	r := chi.NewRouter()
	r.Use(CORS)
	r.Get("/health", HealthCheck)
	h.Routes(r)
	return r, m
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCamp(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/camps/camp-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	camp := decodeBody[model.Camp](t, rec)
	assert.Equal(t, "Robotics & Coding Summer Camp", camp.Name)

	rec = doJSON(t, r, http.MethodGet, "/camps/camp-99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUnits_DerivedStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/camps/camp-1/units", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	units := decodeBody[[]map[string]any](t, rec)
	require.Len(t, units, 4)

	byID := map[string]map[string]any{}
	for _, u := range units {
		byID[u["id"].(string)] = u
	}
	assert.Equal(t, "available", byID["unit-1"]["status"])
	assert.Equal(t, "filling_fast", byID["unit-2"]["status"])
	assert.Equal(t, "few_seats", byID["unit-3"]["status"])
	assert.Equal(t, "sold_out", byID["unit-4"]["status"])
	assert.Equal(t, float64(2), byID["unit-3"]["seats_left"])
}

func TestStartRegistration_SoldOut(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/registrations", map[string]string{"unit_id": "unit-4"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStartRegistration_UnknownUnit(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/registrations", map[string]string{"unit_id": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegistrationFlow_EndToEnd(t *testing.T) {
	r, m := newTestRouter(t)

	// unit-3: 23/25 booked, ages 12-14, starts 8 June 2025.
	rec := doJSON(t, r, http.MethodPost, "/registrations", map[string]string{"unit_id": "unit-3"})
	require.Equal(t, http.StatusCreated, rec.Code)
	st := decodeBody[registration.Status](t, rec)
	require.Equal(t, registration.StepChildDetails, st.Step)
	id := st.SessionID

	steps := []struct {
		step registration.Step
		body any
		next registration.Step
	}{
		{registration.StepChildDetails, registration.ChildDetailsInput{
			ChildName:   "Aarav Sharma",
			ChildDOB:    "2012-05-01",
			ChildGender: "male",
			ChildGrade:  "7",
		}, registration.StepParentDetails},
		{registration.StepParentDetails, registration.ParentDetailsInput{
			ParentName:        "Priya Sharma",
			ParentEmail:       "priya@example.com",
			ParentPhone:       "9876543210",
			Address:           "14 Lake View Road",
			City:              "Bangalore",
			Pincode:           "560038",
			EmergencyName:     "Ravi Sharma",
			EmergencyPhone:    "9876500001",
			EmergencyRelation: "grandparent",
		}, registration.StepMedicalInfo},
		{registration.StepMedicalInfo, registration.MedicalInfoInput{
			Allergies:         "none",
			MedicalConditions: "none",
			Medications:       "none",
		}, registration.StepReview},
		{registration.StepReview, registration.ReviewInput{TermsAccepted: true}, registration.StepReview},
	}

	for _, s := range steps {
		rec := doJSON(t, r, http.MethodPost,
			fmt.Sprintf("/registrations/%s/steps/%s", id, s.step), s.body)
		require.Equal(t, http.StatusOK, rec.Code, "step %s: %s", s.step, rec.Body.String())
		resp := decodeBody[map[string]any](t, rec)
		assert.Equal(t, string(s.next), resp["next_step"])
	}

	rec = doJSON(t, r, http.MethodPost, "/registrations/"+id+"/confirm", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	record := decodeBody[model.ConfirmationRecord](t, rec)
	assert.Equal(t, "unit-3", record.UnitID)
	assert.Equal(t, int64(17699), record.Quote.TotalPrice)

	// Seat consumed; replayed confirm conflicts.
	u, err := m.GetUnit(context.Background(), "unit-3")
	require.NoError(t, err)
	assert.Equal(t, 24, u.SeatsBooked)

	rec = doJSON(t, r, http.MethodPost, "/registrations/"+id+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitStep_ValidationError(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/registrations", map[string]string{"unit_id": "unit-1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	st := decodeBody[registration.Status](t, rec)

	rec = doJSON(t, r, http.MethodPost,
		"/registrations/"+st.SessionID+"/steps/child_details",
		registration.ChildDetailsInput{ChildName: "", ChildDOB: "2016-01-01"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeBody[model.ErrorResponse](t, rec)
	assert.Equal(t, "child_name", resp.Field)
	assert.NotEmpty(t, resp.Reason)
}

func TestSubmitStep_WrongStep(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/registrations", map[string]string{"unit_id": "unit-1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	st := decodeBody[registration.Status](t, rec)

	rec = doJSON(t, r, http.MethodPost,
		"/registrations/"+st.SessionID+"/steps/medical_info",
		registration.MedicalInfoInput{Allergies: "none", MedicalConditions: "none", Medications: "none"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeBody[model.ErrorResponse](t, rec)
	assert.Equal(t, "request does not match the session's current step", resp.Error)
}

func TestGoBackAndAbandon(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/registrations", map[string]string{"unit_id": "unit-1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	st := decodeBody[registration.Status](t, rec)

	rec = doJSON(t, r, http.MethodPost, "/registrations/"+st.SessionID+"/back", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "child_details", resp["step"])

	rec = doJSON(t, r, http.MethodDelete, "/registrations/"+st.SessionID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/registrations/"+st.SessionID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/registrations", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
