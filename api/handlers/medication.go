package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/api/scheduler"
	"github.com/akshitarai30/MediCareAssistant/databases"
	"github.com/akshitarai30/MediCareAssistant/models"
)

// Medication represents the medication handler
type Medication struct {
	DB     databases.MedicationDatabase
	Engine *scheduler.Engine
}

// GetMedicationsHandler handles GET requests for medications
func (h Medication) GetMedicationsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Get query parameters
	userID := r.URL.Query().Get("user_id")
	limitStr := r.URL.Query().Get("limit")
	pageStr := r.URL.Query().Get("page")

	// Validate required parameters
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	// Set default values for optional parameters
	limit := int64(20)
	page := int64(0)

	// Parse limit parameter
	if limitStr != "" {
		if parsedLimit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	// Parse page parameter
	if pageStr != "" {
		if parsedPage, err := strconv.ParseInt(pageStr, 10, 64); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}

	// Get medications from database
	ctx := context.Background()
	response, err := h.DB.GetMedicationsByUserID(ctx, userID, limit, page)
	if err != nil {
		zap.S().With(err).Error("failed to get medications")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Return response
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		zap.S().With(err).Error("failed to encode medications response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// GetMedicationByIDHandler handles GET requests for a single medication
func (h Medication) GetMedicationByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Get ID from URL parameters
	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		http.Error(w, "medication ID is required", http.StatusBadRequest)
		return
	}

	// Get medication from database
	ctx := context.Background()
	medication, err := h.DB.GetMedicationByID(ctx, id)
	if err != nil {
		zap.S().With(err).Error("failed to get medication by ID")
		http.Error(w, "Medication not found", http.StatusNotFound)
		return
	}

	// Return response
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(medication); err != nil {
		zap.S().With(err).Error("failed to encode medication response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// CreateMedicationHandler handles POST requests to create a new medication.
// New medications always start Upcoming with the next dose computed from the
// timing list, regardless of what the request body claims.
func (h Medication) CreateMedicationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Read request body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Parse request body
	var medication models.Medication
	if err := json.Unmarshal(body, &medication); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	// Validate required fields
	if medication.Medication.UserID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}

	if medication.Medication.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := scheduler.ValidateTimings(medication.Medication.Timings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if medication.ID.IsZero() {
		medication.ID = primitive.NewObjectID()
	}
	now := primitive.NewDateTimeFromTime(nowFunc())
	medication.Medication.CreatedAt = now
	medication.Medication.UpdatedAt = now
	medication.Medication.Status = models.StatusUpcoming

	next, nextTime, err := scheduler.NextDose(medication.Medication.Timings, nowFunc())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if next != nil {
		dt := primitive.NewDateTimeFromTime(*next)
		medication.Medication.NextDoseDate = &dt
		medication.Medication.NextDoseTime = &nextTime
	} else {
		// no timings yet, nothing to schedule
		medication.Medication.NextDoseDate = nil
		medication.Medication.NextDoseTime = nil
	}

	// Create medication in database
	ctx := context.Background()
	err = h.DB.CreateMedication(ctx, &medication)
	if err != nil {
		zap.S().With(err).Error("failed to create medication")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if h.Engine != nil {
		h.Engine.Track(medication)
	}

	// Return created medication
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(medication); err != nil {
		zap.S().With(err).Error("failed to encode created medication response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// UpdateMedicationHandler handles PUT requests to update an existing
// medication. Edits to the timing list recompute the next dose and restart
// the countdown.
func (h Medication) UpdateMedicationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Get ID from URL parameters
	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		http.Error(w, "medication ID is required", http.StatusBadRequest)
		return
	}

	// Read request body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Parse request body
	var medication models.Medication
	if err := json.Unmarshal(body, &medication); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	// Validate required fields
	if medication.Medication.UserID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}

	if medication.Medication.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := scheduler.ValidateTimings(medication.Medication.Timings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	existing, err := h.DB.GetMedicationByID(ctx, id)
	if err != nil {
		zap.S().With(err).Error("failed to get medication for update")
		http.Error(w, "Medication not found", http.StatusNotFound)
		return
	}

	medication.ID = existing.ID
	medication.Medication.CreatedAt = existing.Medication.CreatedAt
	medication.Medication.UpdatedAt = primitive.NewDateTimeFromTime(nowFunc())
	medication.Medication.Status = models.StatusUpcoming

	next, nextTime, err := scheduler.NextDose(medication.Medication.Timings, nowFunc())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if next != nil {
		dt := primitive.NewDateTimeFromTime(*next)
		medication.Medication.NextDoseDate = &dt
		medication.Medication.NextDoseTime = &nextTime
	} else {
		medication.Medication.NextDoseDate = nil
		medication.Medication.NextDoseTime = nil
	}

	// Update medication in database
	err = h.DB.UpdateMedication(ctx, id, &medication)
	if err != nil {
		zap.S().With(err).Error("failed to update medication")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if h.Engine != nil {
		h.Engine.Track(medication)
	}

	// Return success response
	w.WriteHeader(http.StatusOK)
	response := map[string]string{"message": "Medication updated successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		zap.S().With(err).Error("failed to encode update response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

type medicationStatusRequest struct {
	Status string `json:"status"`
	UserID string `json:"userId"`
}

// UpdateMedicationStatusHandler handles PUT requests for dose status changes.
// The engine owns the transition rules: Taken reschedules the next dose,
// Snoozed pushes it out by the snooze delay, Missed records the miss and
// alerts caregivers. A status change performed by someone other than the
// medication's owner is a caregiver proxy action and suppresses the
// caregiver alert.
func (h Medication) UpdateMedicationStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		http.Error(w, "medication ID is required", http.StatusBadRequest)
		return
	}

	var req medicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx := context.Background()
	existing, err := h.DB.GetMedicationByID(ctx, id)
	if err != nil {
		zap.S().With(err).Error("failed to get medication for status change")
		http.Error(w, "Medication not found", http.StatusNotFound)
		return
	}

	actor := scheduler.Actor{
		UserID:         req.UserID,
		CaregiverProxy: req.UserID != "" && req.UserID != existing.Medication.UserID,
	}

	var updated *models.Medication
	switch req.Status {
	case models.StatusTaken:
		updated, err = h.Engine.MarkTaken(ctx, id, actor)
	case models.StatusSnoozed:
		updated, err = h.Engine.MarkSnoozed(ctx, id, actor)
	case models.StatusMissed:
		updated, err = h.Engine.MarkMissed(ctx, id, actor)
	default:
		http.Error(w, "status must be one of Taken, Snoozed, Missed", http.StatusBadRequest)
		return
	}
	if err != nil {
		zap.S().With(err).Error("failed to apply medication status change")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		zap.S().With(err).Error("failed to encode status change response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// DeleteMedicationHandler handles DELETE requests to delete a medication
func (h Medication) DeleteMedicationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Get ID from URL parameters
	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		http.Error(w, "medication ID is required", http.StatusBadRequest)
		return
	}

	// Delete medication from database
	ctx := context.Background()
	err := h.DB.DeleteMedication(ctx, id)
	if err != nil {
		zap.S().With(err).Error("failed to delete medication")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if h.Engine != nil {
		h.Engine.Untrack(id)
	}

	// Return success response
	w.WriteHeader(http.StatusOK)
	response := map[string]string{"message": "Medication deleted successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		zap.S().With(err).Error("failed to encode delete response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
