package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/config"
	"github.com/akshitarai30/MediCareAssistant/databases"
	"github.com/akshitarai30/MediCareAssistant/models"
)

const maxReportUploadBytes = 16 << 20 // 16 MB

// MedicalReport represents the medical report handler. Files are stored in
// Cloudinary; mongo keeps the metadata and the delivery URL.
type MedicalReport struct {
	DB databases.MedicalReportDatabase
}

// cloudinaryClient reads credentials from the CLOUDINARY_URL environment variable
func cloudinaryClient() (*cloudinary.Cloudinary, error) {
	return cloudinary.New()
}

// UploadMedicalReportHandler handles multipart POST requests to upload a
// medical report file
func (h MedicalReport) UploadMedicalReportHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := r.ParseMultipartForm(maxReportUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	userID := r.FormValue("userID")
	if userID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}
	title := r.FormValue("title")

	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("file is required", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	if title == "" {
		title = header.Filename
	}

	cld, err := cloudinaryClient()
	if err != nil {
		config.ErrorStatus("cloudinary is not configured", http.StatusInternalServerError, w, err)
		return
	}

	ctx := context.Background()
	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       "medical-reports",
		ResourceType: "auto",
	})
	if err != nil {
		config.ErrorStatus("failed to upload file", http.StatusInternalServerError, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(nowFunc())
	report := models.MedicalReport{
		ID: primitive.NewObjectID(),
		Report: models.MedicalReportDetails{
			Title:       title,
			FileName:    header.Filename,
			FileURL:     uploadResult.SecureURL,
			PublicID:    uploadResult.PublicID,
			ContentType: header.Header.Get("Content-Type"),
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	if err := h.DB.CreateMedicalReport(ctx, &report); err != nil {
		zap.S().With(err).Error("failed to create medical report")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		zap.S().With(err).Error("failed to encode medical report response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// GetMedicalReportsByUserIDHandler handles GET requests for a user's reports
func (h MedicalReport) GetMedicalReportsByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	userID := vars["user_id"]

	if userID == "" {
		http.Error(w, "user ID is required", http.StatusBadRequest)
		return
	}

	limit := int64(20)
	page := int64(0)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsedPage, err := strconv.ParseInt(pageStr, 10, 64); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}

	ctx := context.Background()
	response, err := h.DB.GetMedicalReportsByUserID(ctx, userID, limit, page)
	if err != nil {
		zap.S().With(err).Error("failed to get medical reports")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		zap.S().With(err).Error("failed to encode medical reports response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// GetMedicalReportByIDHandler handles GET requests for a single report
func (h MedicalReport) GetMedicalReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		http.Error(w, "report ID is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	report, err := h.DB.GetMedicalReportByID(ctx, id)
	if err != nil {
		zap.S().With(err).Error("failed to get medical report by ID")
		http.Error(w, "Medical report not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		zap.S().With(err).Error("failed to encode medical report response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// DeleteMedicalReportHandler removes the stored file and its metadata
func (h MedicalReport) DeleteMedicalReportHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		http.Error(w, "report ID is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	report, err := h.DB.GetMedicalReportByID(ctx, id)
	if err != nil {
		zap.S().With(err).Error("failed to get medical report for delete")
		http.Error(w, "Medical report not found", http.StatusNotFound)
		return
	}

	if report.Report.PublicID != "" {
		cld, err := cloudinaryClient()
		if err == nil {
			// a failed remote destroy leaves an orphaned asset, not a broken record
			if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: report.Report.PublicID}); err != nil {
				zap.S().Warnw("failed to destroy cloudinary asset",
					"publicID", report.Report.PublicID, "error", err)
			}
		}
	}

	if err := h.DB.DeleteMedicalReport(ctx, id); err != nil {
		zap.S().With(err).Error("failed to delete medical report")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Medical report deleted successfully"})
}

// GenerateSignature generates a signature for direct-to-Cloudinary uploads
func (h MedicalReport) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	uploadPreset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	// Create the signature
	sig := hmac.New(sha1.New, []byte(apiSecret))
	sig.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + uploadPreset))
	signature := hex.EncodeToString(sig.Sum(nil))

	// Respond with the timestamp and signature
	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
