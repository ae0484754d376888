package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akshitarai30/MediCareAssistant/databases/mocks"
	"github.com/akshitarai30/MediCareAssistant/models"
)

func TestGetMedicationLogsByUserIDHandler(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		expectedStatus int
		mockError      error
	}{
		{
			name:           "successful request",
			userID:         "test-user-id",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing user id",
			userID:         "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "database error",
			userID:         "test-user-id",
			expectedStatus: http.StatusInternalServerError,
			mockError:      assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := mocks.NewMedicationLogDatabase(t)

			if tt.userID != "" {
				var response *models.MedicationLogResponse
				if tt.mockError == nil {
					response = &models.MedicationLogResponse{
						Logs: []models.MedicationLogWithDetails{
							{
								ID:             primitive.NewObjectID(),
								UserID:         tt.userID,
								MedicationID:   primitive.NewObjectID().Hex(),
								MedicationName: "Aspirin",
								Status:         models.StatusTaken,
								Timestamp:      primitive.NewDateTimeFromTime(time.Now()),
							},
						},
						Pagination: models.Pagination{
							CurrentPage:  0,
							TotalPages:   1,
							TotalRecords: 1,
							Limit:        50,
						},
					}
				}
				mockDB.On("GetLogsByUserID", context.Background(), tt.userID, int64(50), int64(0)).
					Return(response, tt.mockError)
			}

			handler := MedicationLog{DB: mockDB}

			req := httptest.NewRequest("GET", "/medication-logs/user/"+tt.userID, nil)
			req = mux.SetURLVars(req, map[string]string{"user_id": tt.userID})
			w := httptest.NewRecorder()

			handler.GetMedicationLogsByUserIDHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response models.MedicationLogResponse
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Len(t, response.Logs, 1)
				assert.Equal(t, models.StatusTaken, response.Logs[0].Status)
			}
		})
	}
}
