package databases

// go generate: mockery --name MedicationLogDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akshitarai30/MediCareAssistant/models"
)

const medicationLogName = "medicationlogs"

// MedicationLogDatabase defines the interface for medication log database
// operations. Logs are an append-only audit trail; there is no update or delete.
type MedicationLogDatabase interface {
	CreateLog(ctx context.Context, log *models.MedicationLog) error
	GetLogsByUserID(ctx context.Context, userID string, limit, page int64) (*models.MedicationLogResponse, error)
}

// medicationLogDatabase implements MedicationLogDatabase
type medicationLogDatabase struct {
	db DatabaseHelper
}

// NewMedicationLogDatabase creates a new medication log database instance
func NewMedicationLogDatabase(db DatabaseHelper) MedicationLogDatabase {
	return &medicationLogDatabase{
		db: db,
	}
}

// CreateLog appends a new log entry
func (m *medicationLogDatabase) CreateLog(ctx context.Context, log *models.MedicationLog) error {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	if log.Log.Timestamp == 0 {
		log.Log.Timestamp = primitive.NewDateTimeFromTime(time.Now())
	}

	_, err := m.db.Collection(medicationLogName).InsertOne(ctx, log)
	return err
}

// GetLogsByUserID retrieves log entries for a specific user with pagination,
// newest first
func (m *medicationLogDatabase) GetLogsByUserID(ctx context.Context, userID string, limit, page int64) (*models.MedicationLogResponse, error) {
	filter := bson.M{"log.userID": userID}

	skip := page * limit

	pipeline := []bson.M{
		{"$match": filter},
		{"$project": bson.M{
			"_id":            1,
			"userID":         "$log.userID",
			"medicationID":   "$log.medicationID",
			"medicationName": "$log.medicationName",
			"status":         "$log.status",
			"timestamp":      "$log.timestamp",
		}},
		{"$sort": bson.M{"timestamp": -1}},
		{"$skip": skip},
		{"$limit": limit},
	}

	cursor, err := m.db.Collection(medicationLogName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.MedicationLogWithDetails
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	totalCount, err := m.db.Collection(medicationLogName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (totalCount + limit - 1) / limit

	response := &models.MedicationLogResponse{
		Logs: logs,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			Limit:        limit,
		},
	}

	return response, nil
}
