package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akshitarai30/MediCareAssistant/databases/mocks"
	"github.com/akshitarai30/MediCareAssistant/models"
)

func testMedicalReport(userID string) *models.MedicalReport {
	return &models.MedicalReport{
		ID: primitive.NewObjectID(),
		Report: models.MedicalReportDetails{
			Title:       "Blood work",
			FileName:    "blood-work.pdf",
			FileURL:     "https://res.cloudinary.com/demo/raw/upload/blood-work.pdf",
			PublicID:    "medical-reports/blood-work",
			ContentType: "application/pdf",
			UserID:      userID,
		},
	}
}

func TestGetMedicalReportsByUserIDHandler(t *testing.T) {
	mockDB := mocks.NewMedicalReportDatabase(t)
	mockDB.On("GetMedicalReportsByUserID", context.Background(), "test-user-id", int64(20), int64(0)).
		Return(&models.MedicalReportResponse{
			MedicalReports: []models.MedicalReport{*testMedicalReport("test-user-id")},
			Pagination: models.Pagination{
				TotalPages:   1,
				TotalRecords: 1,
				Limit:        20,
			},
		}, nil)

	handler := MedicalReport{DB: mockDB}

	req := httptest.NewRequest("GET", "/medical-reports/user/test-user-id", nil)
	req = mux.SetURLVars(req, map[string]string{"user_id": "test-user-id"})
	w := httptest.NewRecorder()

	handler.GetMedicalReportsByUserIDHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.MedicalReportResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.MedicalReports, 1)
	assert.Equal(t, "Blood work", resp.MedicalReports[0].Report.Title)
}

func TestGetMedicalReportByIDHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		report := testMedicalReport("test-user-id")
		mockDB := mocks.NewMedicalReportDatabase(t)
		mockDB.On("GetMedicalReportByID", context.Background(), report.ID.Hex()).Return(report, nil)

		handler := MedicalReport{DB: mockDB}

		req := httptest.NewRequest("GET", "/medical-report/"+report.ID.Hex(), nil)
		req = mux.SetURLVars(req, map[string]string{"id": report.ID.Hex()})
		w := httptest.NewRecorder()

		handler.GetMedicalReportByIDHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id := primitive.NewObjectID().Hex()
		mockDB := mocks.NewMedicalReportDatabase(t)
		mockDB.On("GetMedicalReportByID", context.Background(), id).Return(nil, assert.AnError)

		handler := MedicalReport{DB: mockDB}

		req := httptest.NewRequest("GET", "/medical-report/"+id, nil)
		req = mux.SetURLVars(req, map[string]string{"id": id})
		w := httptest.NewRecorder()

		handler.GetMedicalReportByIDHandler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteMedicalReportHandler(t *testing.T) {
	report := testMedicalReport("test-user-id")

	mockDB := mocks.NewMedicalReportDatabase(t)
	mockDB.On("GetMedicalReportByID", context.Background(), report.ID.Hex()).Return(report, nil)
	mockDB.On("DeleteMedicalReport", context.Background(), report.ID.Hex()).Return(nil)

	handler := MedicalReport{DB: mockDB}

	req := httptest.NewRequest("DELETE", "/medical-report/"+report.ID.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": report.ID.Hex()})
	w := httptest.NewRecorder()

	handler.DeleteMedicalReportHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateSignature(t *testing.T) {
	handler := MedicalReport{DB: mocks.NewMedicalReportDatabase(t)}

	req := httptest.NewRequest("POST", "/generate-signature", nil)
	w := httptest.NewRecorder()

	handler.GenerateSignature(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp["timestamp"])
	assert.NotEmpty(t, resp["signature"])
}
