package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/databases"
	"github.com/akshitarai30/MediCareAssistant/models"
	templates "github.com/akshitarai30/MediCareAssistant/templates/html"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// AlertHub stores connected users (userId -> *websocket.Conn) and delivers
// dose alerts. Dose-due alerts go to the patient's socket with a speak flag so
// the client reads them aloud once; missed-dose alerts fan out to every linked
// caregiver, falling back to email for caregivers without an open socket.
type AlertHub struct {
	UDB     databases.UserDatabase
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

// NewAlertHub creates an alert hub backed by the given user database
func NewAlertHub(udb databases.UserDatabase) *AlertHub {
	return &AlertHub{
		UDB:     udb,
		clients: make(map[string]*websocket.Conn),
	}
}

// HandleAlertsWebSocket registers a client socket for dose alerts
func (h *AlertHub) HandleAlertsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		conn.Close()
		return
	}

	// Register client
	h.mutex.Lock()
	h.clients[userID] = conn
	h.mutex.Unlock()
	zap.S().Infow("user connected to /ws/alerts", "userId", userID)

	// Handle disconnect
	conn.SetCloseHandler(func(code int, text string) error {
		h.mutex.Lock()
		delete(h.clients, userID)
		h.mutex.Unlock()
		zap.S().Infow("user disconnected from /ws/alerts", "userId", userID)
		return nil
	})

	// Keep connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			break
		}
	}
}

// NotifyDoseDue sends the dose-due alert to the medication owner's socket
func (h *AlertHub) NotifyDoseDue(med models.Medication) {
	doseTime := ""
	if med.Medication.NextDoseTime != nil {
		doseTime = *med.Medication.NextDoseTime
	}
	h.sendToUser(med.Medication.UserID, "dose_due", map[string]interface{}{
		"medicationId": med.ID.Hex(),
		"name":         med.Medication.Name,
		"dosage":       med.Medication.Dosage,
		"doseTime":     doseTime,
		"message":      fmt.Sprintf("Time to take your medicine: %s, %s", med.Medication.Name, med.Medication.Dosage),
		"speak":        true,
	})
}

// NotifyCaregivers tells every caregiver linked to the medication's owner that
// a dose was missed. Caregivers without an open socket get an email instead.
func (h *AlertHub) NotifyCaregivers(ctx context.Context, med models.Medication) {
	patient, err := h.UDB.GetUserByID(ctx, med.Medication.UserID)
	if err != nil {
		zap.S().Errorw("failed to load patient for caregiver alert",
			"userId", med.Medication.UserID, "error", err)
		return
	}

	caregivers, err := h.UDB.GetCaregiversForPatient(ctx, patient.Details.Email)
	if err != nil {
		zap.S().Errorw("failed to load caregivers for patient",
			"patientEmail", patient.Details.Email, "error", err)
		return
	}

	doseTime := ""
	if med.Medication.NextDoseTime != nil {
		doseTime = *med.Medication.NextDoseTime
	}

	for _, caregiver := range caregivers {
		delivered := h.sendToUser(caregiver.ID.Hex(), "dose_missed", map[string]interface{}{
			"medicationId": med.ID.Hex(),
			"patientName":  patient.Details.Username,
			"name":         med.Medication.Name,
			"dosage":       med.Medication.Dosage,
			"doseTime":     doseTime,
			"message":      fmt.Sprintf("%s missed a dose of %s", patient.Details.Username, med.Medication.Name),
		})
		if !delivered {
			if err := sendMissedDoseEmail(caregiver.Details.Email, caregiver.Details.Username,
				patient.Details.Username, med.Medication.Name, med.Medication.Dosage, doseTime); err != nil {
				zap.S().Errorw("failed to email caregiver",
					"caregiverEmail", caregiver.Details.Email, "error", err)
			}
		}
	}
}

// sendToUser writes one event to a user's socket. Returns false when the user
// has no open socket or the write fails.
func (h *AlertHub) sendToUser(userID, event string, data map[string]interface{}) bool {
	h.mutex.Lock()
	conn, exists := h.clients[userID]
	h.mutex.Unlock()

	if !exists {
		return false
	}

	err := conn.WriteJSON(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		zap.S().Errorw("error sending alert to user", "userId", userID, "error", err)
		h.mutex.Lock()
		delete(h.clients, userID)
		h.mutex.Unlock()
		conn.Close()
		return false
	}
	return true
}

// sendMissedDoseEmail sends the missed-dose caregiver email using SendGrid
func sendMissedDoseEmail(toEmail, toName, patientName, medicationName, dosage, doseTime string) error {
	from := mail.NewEmail("MediCare Assistant", "no-reply@medicare-assistant.app")
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("Missed dose: %s", medicationName)
	plainText := fmt.Sprintf("%s missed a dose of %s (%s) scheduled for %s.",
		patientName, medicationName, dosage, doseTime)
	htmlContent := templates.RenderMissedDoseEmail(patientName, medicationName, dosage, doseTime)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("missed-dose email sent", "to", toEmail, "medication", medicationName)
	return nil
}
