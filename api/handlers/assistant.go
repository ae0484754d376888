package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/api/scheduler"
	"github.com/akshitarai30/MediCareAssistant/config"
	"github.com/akshitarai30/MediCareAssistant/databases"
	"github.com/akshitarai30/MediCareAssistant/models"
)

const dietDisclaimer = "This is general wellness information, not medical advice. Please consult a medical professional for any health concerns."

const prescriptionPrompt = `You are an AI assistant that generates a medication dashboard from a scanned prescription.
The dashboard should be returned as a JSON string with the following structure:

{
  "medications": [
    {
      "name": "Medication Name",
      "dosage": "Dosage",
      "timings": ["HH:mm", "HH:mm"],
      "status": "Upcoming"
    }
  ]
}

Here is the prescription text: %s
Ensure that the JSON is valid and can be parsed without errors.`

// Assistant proxies prescription parsing and diet questions to the local AI
// service configured via AI_SERVICE_URL (an Ollama-compatible generate endpoint).
// Parsed prescriptions are persisted as medications for the requesting user.
type Assistant struct {
	Config config.Config
	DB     databases.MedicationDatabase
	Engine *scheduler.Engine
	Client *http.Client
}

// NewAssistant creates an assistant handler with a bounded request timeout
func NewAssistant(conf config.Config, db databases.MedicationDatabase, engine *scheduler.Engine) Assistant {
	return Assistant{
		Config: conf,
		DB:     db,
		Engine: engine,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type parsePrescriptionRequest struct {
	PrescriptionText string `json:"prescriptionText"`
	UserID           string `json:"userId"`
}

type parsedMedication struct {
	Name    string   `json:"name"`
	Dosage  string   `json:"dosage"`
	Timings []string `json:"timings"`
	Status  string   `json:"status"`
}

type parsedDashboard struct {
	Medications []parsedMedication `json:"medications"`
}

type parsePrescriptionResponse struct {
	Medications []models.Medication `json:"medications"`
}

// ParsePrescriptionHandler turns free-form prescription text into structured
// medication entries and saves them for the requesting user. The AI output
// must parse as strict JSON; anything else is a hard failure, never a silent
// guess.
func (a Assistant) ParsePrescriptionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req parsePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(req.PrescriptionText) == "" {
		config.ErrorStatus("prescriptionText is required", http.StatusBadRequest, w, fmt.Errorf("empty prescription text"))
		return
	}
	if req.UserID == "" {
		config.ErrorStatus("userId is required", http.StatusBadRequest, w, fmt.Errorf("empty user id"))
		return
	}

	raw, err := a.generate(fmt.Sprintf(prescriptionPrompt, req.PrescriptionText), "json")
	if err != nil {
		config.ErrorStatus("ai service request failed", http.StatusBadGateway, w, err)
		return
	}

	var parsed parsedDashboard
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		zap.S().Errorw("ai service returned unparseable dashboard", "output", raw, "error", err)
		config.ErrorStatus("ai service returned invalid JSON", http.StatusBadGateway, w, err)
		return
	}

	ctx := context.Background()
	saved := make([]models.Medication, 0, len(parsed.Medications))
	for _, entry := range parsed.Medications {
		// drop entries the engine could never schedule
		if entry.Name == "" {
			continue
		}
		if err := scheduler.ValidateTimings(entry.Timings); err != nil {
			zap.S().Warnw("dropping parsed medication with invalid timings",
				"name", entry.Name, "error", err)
			continue
		}

		now := primitive.NewDateTimeFromTime(nowFunc())
		medication := models.Medication{
			ID: primitive.NewObjectID(),
			Medication: models.MedicationDetails{
				Name:      entry.Name,
				Dosage:    entry.Dosage,
				Timings:   entry.Timings,
				Status:    models.StatusUpcoming,
				UserID:    req.UserID,
				CreatedAt: now,
				UpdatedAt: now,
			},
		}

		next, nextTime, err := scheduler.NextDose(entry.Timings, nowFunc())
		if err != nil {
			config.ErrorStatus("failed to schedule parsed medication", http.StatusInternalServerError, w, err)
			return
		}
		if next != nil {
			dt := primitive.NewDateTimeFromTime(*next)
			medication.Medication.NextDoseDate = &dt
			medication.Medication.NextDoseTime = &nextTime
		}

		if err := a.DB.CreateMedication(ctx, &medication); err != nil {
			config.ErrorStatus("failed to save parsed medication", http.StatusInternalServerError, w, err)
			return
		}
		if a.Engine != nil {
			a.Engine.Track(medication)
		}
		saved = append(saved, medication)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(parsePrescriptionResponse{Medications: saved}); err != nil {
		config.ErrorStatus("failed to encode response", http.StatusInternalServerError, w, err)
		return
	}
}

type dietAdviceRequest struct {
	Question string `json:"question"`
}

type dietAdviceResponse struct {
	Advice     string `json:"advice"`
	Disclaimer string `json:"disclaimer"`
}

// DietAdviceHandler answers general diet and wellness questions. Every answer
// carries the medical disclaimer.
func (a Assistant) DietAdviceHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req dietAdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		config.ErrorStatus("question is required", http.StatusBadRequest, w, fmt.Errorf("empty question"))
		return
	}

	prompt := fmt.Sprintf(
		"You are a friendly health assistant for elderly patients. Answer the following diet question in plain, encouraging language. Do not prescribe medication or diagnose. Question: %s",
		req.Question,
	)
	advice, err := a.generate(prompt, "")
	if err != nil {
		config.ErrorStatus("ai service request failed", http.StatusBadGateway, w, err)
		return
	}

	resp := dietAdviceResponse{
		Advice:     strings.TrimSpace(advice),
		Disclaimer: dietDisclaimer,
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		config.ErrorStatus("failed to encode response", http.StatusInternalServerError, w, err)
		return
	}
}

// generate calls the AI service's generate endpoint and returns the raw model
// output
func (a Assistant) generate(prompt, format string) (string, error) {
	if a.Config.AIServiceURL == "" {
		return "", fmt.Errorf("AI_SERVICE_URL is not set")
	}

	body, err := json.Marshal(generateRequest{
		Model:  "llama3",
		Prompt: prompt,
		Stream: false,
		Format: format,
	})
	if err != nil {
		return "", err
	}

	resp, err := a.Client.Post(
		strings.TrimRight(a.Config.AIServiceURL, "/")+"/api/generate",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai service returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Response, nil
}
