package databases

// go generate: mockery --name MedicationDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akshitarai30/MediCareAssistant/models"
)

const medicationName = "medications"

// MedicationDatabase defines the interface for medication database operations
type MedicationDatabase interface {
	GetMedicationsByUserID(ctx context.Context, userID string, limit, page int64) (*models.MedicationResponse, error)
	GetMedicationByID(ctx context.Context, id string) (*models.Medication, error)
	GetActiveMedications(ctx context.Context) ([]models.Medication, error)
	CreateMedication(ctx context.Context, medication *models.Medication) error
	UpdateMedication(ctx context.Context, id string, medication *models.Medication) error
	UpdateMedicationSchedule(ctx context.Context, id, status string, nextDoseDate *time.Time, nextDoseTime *string) error
	DeleteMedication(ctx context.Context, id string) error
}

// medicationDatabase implements MedicationDatabase
type medicationDatabase struct {
	db DatabaseHelper
}

// NewMedicationDatabase creates a new medication database instance
func NewMedicationDatabase(db DatabaseHelper) MedicationDatabase {
	return &medicationDatabase{
		db: db,
	}
}

// GetMedicationsByUserID retrieves medications for a specific user with pagination
func (m *medicationDatabase) GetMedicationsByUserID(ctx context.Context, userID string, limit, page int64) (*models.MedicationResponse, error) {
	filter := bson.M{"medication.userID": userID}

	skip := page * limit

	pipeline := []bson.M{
		{"$match": filter},
		{"$project": bson.M{
			"_id":          1,
			"name":         "$medication.name",
			"dosage":       "$medication.dosage",
			"timings":      "$medication.timings",
			"status":       "$medication.status",
			"nextDoseTime": "$medication.nextDoseTime",
			"nextDoseDate": "$medication.nextDoseDate",
			"endDate":      "$medication.endDate",
			"userID":       "$medication.userID",
			"createdAt":    "$medication.createdAt",
			"updatedAt":    "$medication.updatedAt",
		}},
		{"$sort": bson.M{"createdAt": -1}}, // Sort by creation date, newest first
		{"$skip": skip},
		{"$limit": limit},
	}

	cursor, err := m.db.Collection(medicationName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var medications []models.MedicationWithDetails
	if err := cursor.All(ctx, &medications); err != nil {
		return nil, err
	}

	totalCount, err := m.db.Collection(medicationName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (totalCount + limit - 1) / limit

	response := &models.MedicationResponse{
		Medications: medications,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			Limit:        limit,
		},
	}

	return response, nil
}

// GetMedicationByID retrieves a single medication by ID
func (m *medicationDatabase) GetMedicationByID(ctx context.Context, id string) (*models.Medication, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": objectID}

	var medication models.Medication
	err = m.db.Collection(medicationName).FindOne(ctx, filter).Decode(&medication)
	if err != nil {
		return nil, err
	}

	return &medication, nil
}

// GetActiveMedications retrieves all medications that still have a scheduled next
// dose. Used by the scheduler to resume monitors and sweep overdue doses.
func (m *medicationDatabase) GetActiveMedications(ctx context.Context) ([]models.Medication, error) {
	filter := bson.M{
		"medication.status":       models.StatusUpcoming,
		"medication.nextDoseDate": bson.M{"$ne": nil},
	}

	cursor, err := m.db.Collection(medicationName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var medications []models.Medication
	if err := cursor.All(ctx, &medications); err != nil {
		return nil, err
	}

	return medications, nil
}

// CreateMedication creates a new medication
func (m *medicationDatabase) CreateMedication(ctx context.Context, medication *models.Medication) error {
	if medication.Medication.CreatedAt == 0 {
		medication.Medication.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	}
	if medication.Medication.UpdatedAt == 0 {
		medication.Medication.UpdatedAt = medication.Medication.CreatedAt
	}

	if medication.ID.IsZero() {
		medication.ID = primitive.NewObjectID()
	}

	_, err := m.db.Collection(medicationName).InsertOne(ctx, medication)
	return err
}

// UpdateMedication updates an existing medication
func (m *medicationDatabase) UpdateMedication(ctx context.Context, id string, medication *models.Medication) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": objectID}

	medication.Medication.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	update := bson.M{
		"$set": bson.M{
			"medication": medication.Medication,
		},
	}

	_, err = m.db.Collection(medicationName).UpdateOne(ctx, filter, update)
	return err
}

// UpdateMedicationSchedule updates only the status and next-dose fields of a
// medication. A nil nextDoseDate clears the schedule (completed prescription).
func (m *medicationDatabase) UpdateMedicationSchedule(ctx context.Context, id, status string, nextDoseDate *time.Time, nextDoseTime *string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	var doseDate *primitive.DateTime
	if nextDoseDate != nil {
		dt := primitive.NewDateTimeFromTime(*nextDoseDate)
		doseDate = &dt
	}

	update := bson.M{
		"$set": bson.M{
			"medication.status":       status,
			"medication.nextDoseDate": doseDate,
			"medication.nextDoseTime": nextDoseTime,
			"medication.updatedAt":    primitive.NewDateTimeFromTime(time.Now()),
		},
	}

	_, err = m.db.Collection(medicationName).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

// DeleteMedication deletes a medication by ID
func (m *medicationDatabase) DeleteMedication(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = m.db.Collection(medicationName).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
