package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/api"
	"github.com/akshitarai30/MediCareAssistant/api/scheduler"
	"github.com/akshitarai30/MediCareAssistant/config"
	"github.com/akshitarai30/MediCareAssistant/databases"
	"github.com/akshitarai30/MediCareAssistant/models"
)

// nowFunc is overridable in tests
var nowFunc = time.Now

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Engine    *scheduler.Engine
	Scheduler *scheduler.Scheduler
	Hub       *AlertHub
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	medDB := databases.NewMedicationDatabase(a.dbHelper)
	logDB := databases.NewMedicationLogDatabase(a.dbHelper)
	userDB := databases.NewUserDatabase(a.dbHelper)
	reportDB := databases.NewMedicalReportDatabase(a.dbHelper)

	a.Hub = NewAlertHub(userDB)
	a.Engine = scheduler.NewEngine(medDB, logDB, a.Hub)
	a.Scheduler = scheduler.NewScheduler(a.Engine, medDB)

	u := User{DB: userDB}
	med := Medication{DB: medDB, Engine: a.Engine}
	logs := MedicationLog{DB: logDB}
	report := MedicalReport{DB: reportDB}
	assistant := NewAssistant(a.Config, medDB, a.Engine)

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	apiCreate.Handle("/user/check-user", http.HandlerFunc(u.UserCheckEmailHandler)).Methods("POST")
	apiCreate.Handle("/user/login", http.HandlerFunc(u.UserLoginHandler)).Methods("POST")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")

	apiCreate.Handle("/caregiver/{caregiver_id}/patients", api.Middleware(http.HandlerFunc(u.GetPatientsHandler))).Methods("GET")
	apiCreate.Handle("/caregiver/{caregiver_id}/patients", api.Middleware(http.HandlerFunc(u.AddPatientHandler))).Methods("POST")
	apiCreate.Handle("/caregiver/{caregiver_id}/patients", api.Middleware(http.HandlerFunc(u.RemovePatientHandler))).Methods("DELETE")

	apiCreate.Handle("/medication", api.Middleware(http.HandlerFunc(med.CreateMedicationHandler))).Methods("POST")
	apiCreate.Handle("/medication/{id}", api.Middleware(http.HandlerFunc(med.GetMedicationByIDHandler))).Methods("GET")
	apiCreate.Handle("/medication/{id}", api.Middleware(http.HandlerFunc(med.UpdateMedicationHandler))).Methods("PUT")
	apiCreate.Handle("/medication/{id}", api.Middleware(http.HandlerFunc(med.DeleteMedicationHandler))).Methods("DELETE")
	apiCreate.Handle("/medication/{id}/status", api.Middleware(http.HandlerFunc(med.UpdateMedicationStatusHandler))).Methods("PUT")
	apiCreate.Handle("/medications", api.Middleware(http.HandlerFunc(med.GetMedicationsHandler))).Methods("GET")

	apiCreate.Handle("/medication-logs/user/{user_id}", api.Middleware(http.HandlerFunc(logs.GetMedicationLogsByUserIDHandler))).Methods("GET")

	apiCreate.Handle("/medical-report", api.Middleware(http.HandlerFunc(report.UploadMedicalReportHandler))).Methods("POST")
	apiCreate.Handle("/medical-report/{id}", api.Middleware(http.HandlerFunc(report.GetMedicalReportByIDHandler))).Methods("GET")
	apiCreate.Handle("/medical-report/{id}", api.Middleware(http.HandlerFunc(report.DeleteMedicalReportHandler))).Methods("DELETE")
	apiCreate.Handle("/medical-reports/user/{user_id}", api.Middleware(http.HandlerFunc(report.GetMedicalReportsByUserIDHandler))).Methods("GET")
	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(report.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/assistant/parse-prescription", api.Middleware(http.HandlerFunc(assistant.ParsePrescriptionHandler))).Methods("POST")
	apiCreate.Handle("/assistant/diet-advice", api.Middleware(http.HandlerFunc(assistant.DietAdviceHandler))).Methods("POST")

	// websocket clients register by userId query param inside the handler
	r.HandleFunc("/ws/alerts", a.Hub.HandleAlertsWebSocket)

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("medicare-assistant has connected to the database")

	// initialize api router
	a.initializeRoutes()

	// resume dose monitors and start the overdue sweep
	a.Scheduler.Start()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
