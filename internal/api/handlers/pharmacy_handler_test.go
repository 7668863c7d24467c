package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-gateway/internal/application/services"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

type mockPharmacyAPI struct {
	mock.Mock
}

func (m *mockPharmacyAPI) ListPendingPrescriptions(ctx context.Context) ([]entities.OutcomeRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.OutcomeRecord), args.Error(1)
}

func (m *mockPharmacyAPI) UpdatePrescriptionStatus(ctx context.Context, outcomeID int64, status entities.PrescriptionStatus) error {
	args := m.Called(ctx, outcomeID, status)
	return args.Error(0)
}

func newPharmacyMux(api *mockPharmacyAPI) *http.ServeMux {
	handler := NewPharmacyHandler(services.NewPharmacyService(api))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/prescriptions/pending", handler.Pending)
	mux.HandleFunc("PUT /api/prescriptions/{id}/status", handler.UpdateStatus)
	return mux
}

func TestPendingPrescriptions(t *testing.T) {
	api := new(mockPharmacyAPI)
	api.On("ListPendingPrescriptions", mock.Anything).Return([]entities.OutcomeRecord{
		{ID: 1, Prescription: "Amoxicillin 500mg", PrescriptionStatus: entities.PrescriptionPending},
		{ID: 2, Prescription: "Ibuprofen 200mg", PrescriptionStatus: entities.PrescriptionPending},
	}, nil)

	rec := httptest.NewRecorder()
	newPharmacyMux(api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/prescriptions/pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Records []entities.OutcomeRecord `json:"records"`
		Count   int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Amoxicillin 500mg", body.Records[0].Prescription)
}

func TestUpdatePrescriptionStatusEchoesPatchedList(t *testing.T) {
	api := new(mockPharmacyAPI)
	api.On("ListPendingPrescriptions", mock.Anything).Return([]entities.OutcomeRecord{
		{ID: 1, PrescriptionStatus: entities.PrescriptionPending},
		{ID: 2, PrescriptionStatus: entities.PrescriptionPending},
	}, nil)
	api.On("UpdatePrescriptionStatus", mock.Anything, int64(2), entities.PrescriptionDispensed).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/prescriptions/2/status",
		strings.NewReader(`{"status":"DISPENSED"}`))
	rec := httptest.NewRecorder()
	newPharmacyMux(api).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Records []entities.OutcomeRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Records, 2)
	assert.Equal(t, entities.PrescriptionPending, body.Records[0].PrescriptionStatus)
	assert.Equal(t, entities.PrescriptionDispensed, body.Records[1].PrescriptionStatus)
	api.AssertExpectations(t)
}

func TestUpdatePrescriptionStatusRejectsUnknown(t *testing.T) {
	api := new(mockPharmacyAPI)
	api.On("ListPendingPrescriptions", mock.Anything).Return([]entities.OutcomeRecord{
		{ID: 1, PrescriptionStatus: entities.PrescriptionPending},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/prescriptions/1/status",
		strings.NewReader(`{"status":"SHIPPED"}`))
	rec := httptest.NewRecorder()
	newPharmacyMux(api).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	api.AssertNotCalled(t, "UpdatePrescriptionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePrescriptionStatusBadID(t *testing.T) {
	api := new(mockPharmacyAPI)

	req := httptest.NewRequest(http.MethodPut, "/api/prescriptions/abc/status",
		strings.NewReader(`{"status":"DISPENSED"}`))
	rec := httptest.NewRecorder()
	newPharmacyMux(api).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
