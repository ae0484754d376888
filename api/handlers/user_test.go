package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/akshitarai30/MediCareAssistant/databases/mocks"
	"github.com/akshitarai30/MediCareAssistant/models"
)

func testUser(role string, email string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	return &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Username: "test-user",
			Email:    email,
			Password: string(hash),
			Role:     role,
		},
	}
}

func TestUserCreateHandler(t *testing.T) {
	t.Run("creates a patient with a hashed password", func(t *testing.T) {
		mockDB := mocks.NewUserDatabase(t)
		mockDB.On("GetUserByEmail", context.Background(), "jane@example.com").Return(nil, assert.AnError)
		mockDB.On("CreateUser", context.Background(), mock.MatchedBy(func(user *models.User) bool {
			return user.Details.Role == models.RolePatient &&
				strings.HasPrefix(user.Details.Password, "$2a$")
		})).Return(nil)

		handler := User{DB: mockDB}

		body, _ := json.Marshal(models.UserDetails{
			Username: "jane",
			Email:    "Jane@Example.com",
			Password: "password123",
		})
		req := httptest.NewRequest("POST", "/user/create-user", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.UserCreateHandler(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		mockDB := mocks.NewUserDatabase(t)
		mockDB.On("GetUserByEmail", context.Background(), "jane@example.com").
			Return(testUser(models.RolePatient, "jane@example.com"), nil)

		handler := User{DB: mockDB}

		body, _ := json.Marshal(models.UserDetails{Email: "jane@example.com", Password: "password123"})
		req := httptest.NewRequest("POST", "/user/create-user", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.UserCreateHandler(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		handler := User{DB: mocks.NewUserDatabase(t)}

		body, _ := json.Marshal(models.UserDetails{
			Email:    "jane@example.com",
			Password: "password123",
			Role:     "doctor",
		})
		req := httptest.NewRequest("POST", "/user/create-user", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.UserCreateHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserLoginHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid credentials return a token", func(t *testing.T) {
		user := testUser(models.RolePatient, "jane@example.com")

		mockDB := mocks.NewUserDatabase(t)
		mockDB.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(user, nil)

		handler := User{DB: mockDB}

		body, _ := json.Marshal(loginRequest{Email: "jane@example.com", Password: "password123"})
		req := httptest.NewRequest("POST", "/user/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.UserLoginHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp loginResponse
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.ID.Hex(), resp.User.ID)
		assert.Equal(t, models.RolePatient, resp.User.Role)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		user := testUser(models.RolePatient, "jane@example.com")

		mockDB := mocks.NewUserDatabase(t)
		mockDB.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(user, nil)

		handler := User{DB: mockDB}

		body, _ := json.Marshal(loginRequest{Email: "jane@example.com", Password: "wrong"})
		req := httptest.NewRequest("POST", "/user/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.UserLoginHandler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetPatientsHandler(t *testing.T) {
	caregiver := testUser(models.RoleCaregiver, "carer@example.com")
	caregiver.Details.PatientEmails = []string{"jane@example.com"}
	patient := testUser(models.RolePatient, "jane@example.com")

	mockDB := mocks.NewUserDatabase(t)
	mockDB.On("GetUserByID", context.Background(), caregiver.ID.Hex()).Return(caregiver, nil)
	mockDB.On("GetUsersByEmails", context.Background(), []string{"jane@example.com"}).
		Return([]models.User{*patient}, nil)

	handler := User{DB: mockDB}

	req := httptest.NewRequest("GET", "/caregiver/"+caregiver.ID.Hex()+"/patients", nil)
	req = mux.SetURLVars(req, map[string]string{"caregiver_id": caregiver.ID.Hex()})
	w := httptest.NewRecorder()

	handler.GetPatientsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Patients []models.User `json:"patients"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Patients, 1)
	assert.Empty(t, resp.Patients[0].Details.Password)
}

func TestAddPatientHandler(t *testing.T) {
	t.Run("links an existing patient", func(t *testing.T) {
		caregiver := testUser(models.RoleCaregiver, "carer@example.com")
		patient := testUser(models.RolePatient, "jane@example.com")

		mockDB := mocks.NewUserDatabase(t)
		mockDB.On("GetUserByID", context.Background(), caregiver.ID.Hex()).Return(caregiver, nil)
		mockDB.On("GetUserByEmail", context.Background(), "jane@example.com").Return(patient, nil)
		mockDB.On("AddPatientEmail", context.Background(), caregiver.ID.Hex(), "jane@example.com").Return(nil)

		handler := User{DB: mockDB}

		body, _ := json.Marshal(patientLinkRequest{PatientEmail: "jane@example.com"})
		req := httptest.NewRequest("POST", "/caregiver/"+caregiver.ID.Hex()+"/patients", bytes.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"caregiver_id": caregiver.ID.Hex()})
		w := httptest.NewRecorder()

		handler.AddPatientHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refuses to link through a non-caregiver account", func(t *testing.T) {
		patientAccount := testUser(models.RolePatient, "someone@example.com")

		mockDB := mocks.NewUserDatabase(t)
		mockDB.On("GetUserByID", context.Background(), patientAccount.ID.Hex()).Return(patientAccount, nil)

		handler := User{DB: mockDB}

		body, _ := json.Marshal(patientLinkRequest{PatientEmail: "jane@example.com"})
		req := httptest.NewRequest("POST", "/caregiver/"+patientAccount.ID.Hex()+"/patients", bytes.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"caregiver_id": patientAccount.ID.Hex()})
		w := httptest.NewRecorder()

		handler.AddPatientHandler(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown patient email is a 404", func(t *testing.T) {
		caregiver := testUser(models.RoleCaregiver, "carer@example.com")

		mockDB := mocks.NewUserDatabase(t)
		mockDB.On("GetUserByID", context.Background(), caregiver.ID.Hex()).Return(caregiver, nil)
		mockDB.On("GetUserByEmail", context.Background(), "ghost@example.com").Return(nil, assert.AnError)

		handler := User{DB: mockDB}

		body, _ := json.Marshal(patientLinkRequest{PatientEmail: "ghost@example.com"})
		req := httptest.NewRequest("POST", "/caregiver/"+caregiver.ID.Hex()+"/patients", bytes.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"caregiver_id": caregiver.ID.Hex()})
		w := httptest.NewRecorder()

		handler.AddPatientHandler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
