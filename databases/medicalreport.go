package databases

// go generate: mockery --name MedicalReportDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akshitarai30/MediCareAssistant/models"
)

const medicalReportName = "medicalreports"

// MedicalReportDatabase defines the interface for medical report database operations
type MedicalReportDatabase interface {
	GetMedicalReportsByUserID(ctx context.Context, userID string, limit, page int64) (*models.MedicalReportResponse, error)
	GetMedicalReportByID(ctx context.Context, id string) (*models.MedicalReport, error)
	CreateMedicalReport(ctx context.Context, medicalReport *models.MedicalReport) error
	DeleteMedicalReport(ctx context.Context, id string) error
}

// medicalReportDatabase implements MedicalReportDatabase
type medicalReportDatabase struct {
	db DatabaseHelper
}

// NewMedicalReportDatabase creates a new medical report database instance
func NewMedicalReportDatabase(db DatabaseHelper) MedicalReportDatabase {
	return &medicalReportDatabase{
		db: db,
	}
}

// GetMedicalReportsByUserID retrieves medical reports for a specific user with pagination
func (m *medicalReportDatabase) GetMedicalReportsByUserID(ctx context.Context, userID string, limit, page int64) (*models.MedicalReportResponse, error) {
	filter := bson.M{"report.userID": userID}

	skip := page * limit

	opts := options.Find().
		SetSort(bson.M{"report.createdAt": -1}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := m.db.Collection(medicalReportName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.MedicalReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	totalCount, err := m.db.Collection(medicalReportName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (totalCount + limit - 1) / limit

	response := &models.MedicalReportResponse{
		MedicalReports: reports,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			Limit:        limit,
		},
	}

	return response, nil
}

// GetMedicalReportByID retrieves a single medical report by ID
func (m *medicalReportDatabase) GetMedicalReportByID(ctx context.Context, id string) (*models.MedicalReport, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var report models.MedicalReport
	err = m.db.Collection(medicalReportName).FindOne(ctx, bson.M{"_id": objectID}).Decode(&report)
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// CreateMedicalReport creates a new medical report
func (m *medicalReportDatabase) CreateMedicalReport(ctx context.Context, medicalReport *models.MedicalReport) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	medicalReport.Report.CreatedAt = now
	medicalReport.Report.UpdatedAt = now

	if medicalReport.ID.IsZero() {
		medicalReport.ID = primitive.NewObjectID()
	}

	_, err := m.db.Collection(medicalReportName).InsertOne(ctx, medicalReport)
	return err
}

// DeleteMedicalReport deletes a medical report by ID
func (m *medicalReportDatabase) DeleteMedicalReport(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = m.db.Collection(medicalReportName).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
