package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akshitarai30/MediCareAssistant/api/scheduler"
	"github.com/akshitarai30/MediCareAssistant/databases/mocks"
	"github.com/akshitarai30/MediCareAssistant/models"
)

type stubNotifier struct{}

func (stubNotifier) NotifyDoseDue(med models.Medication)                   {}
func (stubNotifier) NotifyCaregivers(ctx context.Context, med models.Medication) {}

func upcomingMedication(userID string, timings []string) *models.Medication {
	next := time.Now().Add(time.Hour)
	dt := primitive.NewDateTimeFromTime(next)
	nextTime := scheduler.FormatDoseTime(next)
	return &models.Medication{
		ID: primitive.NewObjectID(),
		Medication: models.MedicationDetails{
			Name:         "Aspirin",
			Dosage:       "100mg",
			Timings:      timings,
			Status:       models.StatusUpcoming,
			NextDoseDate: &dt,
			NextDoseTime: &nextTime,
			UserID:       userID,
		},
	}
}

func TestGetMedicationsHandler(t *testing.T) {
	tests := []struct {
		name             string
		userID           string
		limit            string
		page             string
		expectedStatus   int
		expectedResponse *models.MedicationResponse
	}{
		{
			name:           "successful request with default pagination",
			userID:         "test-user-id",
			expectedStatus: http.StatusOK,
			expectedResponse: &models.MedicationResponse{
				Medications: []models.MedicationWithDetails{
					{
						ID:      primitive.NewObjectID(),
						Name:    "Aspirin",
						Dosage:  "100mg",
						Timings: []string{"08:00", "20:00"},
						Status:  models.StatusUpcoming,
						UserID:  "test-user-id",
					},
				},
				Pagination: models.Pagination{
					CurrentPage:  0,
					TotalPages:   1,
					TotalRecords: 1,
					Limit:        20,
				},
			},
		},
		{
			name:           "missing user_id",
			userID:         "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "custom pagination",
			userID:         "test-user-id",
			limit:          "10",
			page:           "1",
			expectedStatus: http.StatusOK,
			expectedResponse: &models.MedicationResponse{
				Medications: []models.MedicationWithDetails{},
				Pagination: models.Pagination{
					CurrentPage:  1,
					TotalPages:   0,
					TotalRecords: 0,
					Limit:        10,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := mocks.NewMedicationDatabase(t)

			if tt.expectedStatus == http.StatusOK {
				expectedLimit := int64(20)
				expectedPage := int64(0)
				if tt.limit == "10" {
					expectedLimit = 10
				}
				if tt.page == "1" {
					expectedPage = 1
				}
				mockDB.On("GetMedicationsByUserID", context.Background(), tt.userID, expectedLimit, expectedPage).Return(tt.expectedResponse, nil)
			}

			handler := Medication{DB: mockDB}

			req := httptest.NewRequest("GET", "/medications", nil)
			q := req.URL.Query()
			if tt.userID != "" {
				q.Add("user_id", tt.userID)
			}
			if tt.limit != "" {
				q.Add("limit", tt.limit)
			}
			if tt.page != "" {
				q.Add("page", tt.page)
			}
			req.URL.RawQuery = q.Encode()

			w := httptest.NewRecorder()
			handler.GetMedicationsHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK && tt.expectedResponse != nil {
				var response models.MedicationResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResponse.Pagination, response.Pagination)
				assert.Len(t, response.Medications, len(tt.expectedResponse.Medications))
			}
		})
	}
}

func TestGetMedicationByIDHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		expectedStatus int
		mockError      error
	}{
		{
			name:           "successful request",
			id:             "507f1f77bcf86cd799439011",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing id",
			id:             "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found",
			id:             "507f1f77bcf86cd799439011",
			expectedStatus: http.StatusNotFound,
			mockError:      assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := mocks.NewMedicationDatabase(t)

			if tt.expectedStatus == http.StatusOK {
				med := upcomingMedication("test-user-id", []string{"08:00"})
				mockDB.On("GetMedicationByID", context.Background(), tt.id).Return(med, nil)
			} else if tt.expectedStatus == http.StatusNotFound {
				mockDB.On("GetMedicationByID", context.Background(), tt.id).Return(nil, tt.mockError)
			}

			handler := Medication{DB: mockDB}

			req := httptest.NewRequest("GET", "/medication/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})
			w := httptest.NewRecorder()

			handler.GetMedicationByIDHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCreateMedicationHandler(t *testing.T) {
	t.Run("new medications start upcoming with a computed next dose", func(t *testing.T) {
		mockDB := mocks.NewMedicationDatabase(t)
		mockDB.On("CreateMedication", context.Background(), mock.MatchedBy(func(med *models.Medication) bool {
			return med.Medication.Status == models.StatusUpcoming &&
				med.Medication.NextDoseDate != nil &&
				med.Medication.NextDoseTime != nil
		})).Return(nil)

		handler := Medication{DB: mockDB}

		body, _ := json.Marshal(models.Medication{
			Medication: models.MedicationDetails{
				Name:    "Aspirin",
				Dosage:  "100mg",
				Timings: []string{"08:00", "20:00"},
				Status:  models.StatusMissed, // clients cannot pick a starting status
				UserID:  "test-user-id",
			},
		})

		req := httptest.NewRequest("POST", "/medication", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateMedicationHandler(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created models.Medication
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, models.StatusUpcoming, created.Medication.Status)
		assert.NotNil(t, created.Medication.NextDoseTime)
	})

	t.Run("rejects malformed timings", func(t *testing.T) {
		handler := Medication{DB: mocks.NewMedicationDatabase(t)}

		body, _ := json.Marshal(models.Medication{
			Medication: models.MedicationDetails{
				Name:    "Aspirin",
				Timings: []string{"8am"},
				UserID:  "test-user-id",
			},
		})

		req := httptest.NewRequest("POST", "/medication", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateMedicationHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing user", func(t *testing.T) {
		handler := Medication{DB: mocks.NewMedicationDatabase(t)}

		body, _ := json.Marshal(models.Medication{
			Medication: models.MedicationDetails{Name: "Aspirin"},
		})

		req := httptest.NewRequest("POST", "/medication", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateMedicationHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateMedicationStatusHandler(t *testing.T) {
	t.Run("taken reschedules through the engine", func(t *testing.T) {
		mockDB := mocks.NewMedicationDatabase(t)
		mockLogs := mocks.NewMedicationLogDatabase(t)
		engine := scheduler.NewEngine(mockDB, mockLogs, stubNotifier{})
		t.Cleanup(engine.Stop)

		med := upcomingMedication("test-user-id", []string{"08:00", "20:00"})
		id := med.ID.Hex()

		mockDB.On("GetMedicationByID", mock.Anything, id).Return(med, nil)
		mockDB.On("UpdateMedicationSchedule", mock.Anything, id, models.StatusUpcoming,
			mock.Anything, mock.Anything).Return(nil)
		mockLogs.On("CreateLog", mock.Anything, mock.MatchedBy(func(entry *models.MedicationLog) bool {
			return entry.Log.Status == models.StatusTaken
		})).Return(nil)

		handler := Medication{DB: mockDB, Engine: engine}

		body, _ := json.Marshal(medicationStatusRequest{Status: models.StatusTaken, UserID: "test-user-id"})
		req := httptest.NewRequest("PUT", "/medication/"+id+"/status", bytes.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"id": id})
		w := httptest.NewRecorder()

		handler.UpdateMedicationStatusHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var updated models.Medication
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Equal(t, models.StatusUpcoming, updated.Medication.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		mockDB := mocks.NewMedicationDatabase(t)
		med := upcomingMedication("test-user-id", []string{"08:00"})
		id := med.ID.Hex()
		mockDB.On("GetMedicationByID", mock.Anything, id).Return(med, nil)

		handler := Medication{DB: mockDB}

		body, _ := json.Marshal(medicationStatusRequest{Status: "Skipped", UserID: "test-user-id"})
		req := httptest.NewRequest("PUT", "/medication/"+id+"/status", bytes.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"id": id})
		w := httptest.NewRecorder()

		handler.UpdateMedicationStatusHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteMedicationHandler(t *testing.T) {
	mockDB := mocks.NewMedicationDatabase(t)
	id := primitive.NewObjectID().Hex()
	mockDB.On("DeleteMedication", context.Background(), id).Return(nil)

	handler := Medication{DB: mockDB}

	req := httptest.NewRequest("DELETE", "/medication/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	w := httptest.NewRecorder()

	handler.DeleteMedicationHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
