package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/databases"
)

// MedicationLog represents the medication history handler
type MedicationLog struct {
	DB databases.MedicationLogDatabase
}

// GetMedicationLogsByUserIDHandler handles GET requests for a user's dose
// history, most recent first
func (h MedicationLog) GetMedicationLogsByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	userID := vars["user_id"]

	if userID == "" {
		http.Error(w, "user ID is required", http.StatusBadRequest)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	pageStr := r.URL.Query().Get("page")

	limit := int64(50)
	page := int64(0)

	if limitStr != "" {
		if parsedLimit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if pageStr != "" {
		if parsedPage, err := strconv.ParseInt(pageStr, 10, 64); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}

	ctx := context.Background()
	response, err := h.DB.GetLogsByUserID(ctx, userID, limit, page)
	if err != nil {
		zap.S().With(err).Error("failed to get medication logs")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		zap.S().With(err).Error("failed to encode medication logs response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
