package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/akshitarai30/MediCareAssistant/config"
	"github.com/akshitarai30/MediCareAssistant/databases"
	"github.com/akshitarai30/MediCareAssistant/models"
)

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// UserCreateHandler creates a user
func (u User) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var details models.UserDetails
	err := json.NewDecoder(r.Body).Decode(&details)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	details.Email = strings.TrimSpace(strings.ToLower(details.Email))
	if details.Email == "" || details.Password == "" {
		config.ErrorStatus("email and password required", http.StatusBadRequest, w, fmt.Errorf("missing credentials"))
		return
	}

	if details.Role == "" {
		details.Role = models.RolePatient
	}
	if details.Role != models.RolePatient && details.Role != models.RoleCaregiver {
		config.ErrorStatus("role must be patient or caregiver", http.StatusBadRequest, w, fmt.Errorf("unknown role %q", details.Role))
		return
	}

	// check if the user already exists
	existingUser, _ := u.DB.GetUserByEmail(context.Background(), details.Email)
	if existingUser != nil {
		config.ErrorStatus("email already exists", http.StatusConflict, w, fmt.Errorf("duplicate email"))
		return
	}

	// hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(details.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}
	details.Password = string(hashedPassword)

	now := primitive.NewDateTimeFromTime(nowFunc())
	details.CreatedAt = now
	details.UpdatedAt = now

	user := models.User{
		ID:      primitive.NewObjectID(),
		Details: details,
	}

	// insert the user
	err = u.DB.CreateUser(context.Background(), &user)
	if err != nil {
		config.ErrorStatus("failed to insert user", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// UserCheckEmailHandler checks if an email exists using POST
func (u User) UserCheckEmailHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var details models.UserDetails
	err := json.NewDecoder(r.Body).Decode(&details)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	// check if the user already exists
	existingUser, _ := u.DB.GetUserByEmail(context.Background(), strings.TrimSpace(strings.ToLower(details.Email)))
	if existingUser != nil {
		config.ErrorStatus("email already exists", http.StatusConflict, w, fmt.Errorf("duplicate email"))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// UserLoginHandler handles login via email/password and returns a JWT
func (u User) UserLoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email and password required"})
		return
	}

	user, err := u.DB.GetUserByEmail(r.Context(), email)
	if err != nil || user == nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Details.Password), []byte(req.Password)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Details.Email,
		"role":  user.Details.Role,
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	var resp loginResponse
	resp.Token = signed
	resp.User.ID = user.ID.Hex()
	resp.User.Email = user.Details.Email
	resp.User.Role = user.Details.Role

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// UserHandler returns a user by ID
func (u User) UserHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	userID := vars["user_id"]

	user, err := u.DB.GetUserByID(context.Background(), userID)
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	// never leak the password hash
	user.Details.Password = ""

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type patientLinkRequest struct {
	PatientEmail string `json:"patientEmail"`
}

// GetPatientsHandler returns the patients linked to a caregiver
func (u User) GetPatientsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	caregiverID := vars["caregiver_id"]

	caregiver, err := u.DB.GetUserByID(context.Background(), caregiverID)
	if err != nil {
		config.ErrorStatus("failed to get caregiver by ID", http.StatusNotFound, w, err)
		return
	}
	if caregiver.Details.Role != models.RoleCaregiver {
		config.ErrorStatus("user is not a caregiver", http.StatusForbidden, w, fmt.Errorf("role is %q", caregiver.Details.Role))
		return
	}

	patients := []models.User{}
	if len(caregiver.Details.PatientEmails) > 0 {
		patients, err = u.DB.GetUsersByEmails(context.Background(), caregiver.Details.PatientEmails)
		if err != nil {
			config.ErrorStatus("failed to get linked patients", http.StatusInternalServerError, w, err)
			return
		}
	}

	for i := range patients {
		patients[i].Details.Password = ""
	}

	b, err := json.Marshal(map[string]interface{}{"patients": patients})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AddPatientHandler links a patient to a caregiver by email
func (u User) AddPatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	caregiverID := vars["caregiver_id"]

	var req patientLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	patientEmail := strings.TrimSpace(strings.ToLower(req.PatientEmail))
	if patientEmail == "" {
		config.ErrorStatus("patientEmail is required", http.StatusBadRequest, w, fmt.Errorf("missing patientEmail"))
		return
	}

	caregiver, err := u.DB.GetUserByID(context.Background(), caregiverID)
	if err != nil {
		config.ErrorStatus("failed to get caregiver by ID", http.StatusNotFound, w, err)
		return
	}
	if caregiver.Details.Role != models.RoleCaregiver {
		config.ErrorStatus("user is not a caregiver", http.StatusForbidden, w, fmt.Errorf("role is %q", caregiver.Details.Role))
		return
	}

	patient, err := u.DB.GetUserByEmail(context.Background(), patientEmail)
	if err != nil || patient == nil {
		config.ErrorStatus("no patient found with that email", http.StatusNotFound, w, fmt.Errorf("unknown patient email"))
		return
	}
	if patient.Details.Role != models.RolePatient {
		config.ErrorStatus("linked user is not a patient", http.StatusBadRequest, w, fmt.Errorf("role is %q", patient.Details.Role))
		return
	}

	if err := u.DB.AddPatientEmail(context.Background(), caregiverID, patientEmail); err != nil {
		config.ErrorStatus("failed to link patient", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Patient linked successfully"})
}

// RemovePatientHandler unlinks a patient from a caregiver
func (u User) RemovePatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	caregiverID := vars["caregiver_id"]

	var req patientLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	patientEmail := strings.TrimSpace(strings.ToLower(req.PatientEmail))
	if patientEmail == "" {
		config.ErrorStatus("patientEmail is required", http.StatusBadRequest, w, fmt.Errorf("missing patientEmail"))
		return
	}

	if err := u.DB.RemovePatientEmail(context.Background(), caregiverID, patientEmail); err != nil {
		config.ErrorStatus("failed to unlink patient", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Patient unlinked successfully"})
}
