package databases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akshitarai30/MediCareAssistant/databases"
	"github.com/akshitarai30/MediCareAssistant/databases/mocks"
	"github.com/akshitarai30/MediCareAssistant/models"
)

func TestConstructorsResolveCollectionsLazily(t *testing.T) {
	// no Collection expectation is registered, so a constructor that resolves
	// its collection up front would fail the mock
	dbHelper := &mocks.DatabaseHelper{}

	assert.NotEmpty(t, databases.NewMedicationDatabase(dbHelper))
	assert.NotEmpty(t, databases.NewMedicationLogDatabase(dbHelper))
	assert.NotEmpty(t, databases.NewUserDatabase(dbHelper))
	assert.NotEmpty(t, databases.NewMedicalReportDatabase(dbHelper))

	dbHelper.AssertNotCalled(t, "Collection", mock.Anything)
}

func TestCreateMedicationKeepsCallerTimestamps(t *testing.T) {
	collectionHelper := &mocks.CollectionHelper{}
	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "medications").Return(collectionHelper)
	collectionHelper.On("InsertOne", context.Background(), mock.Anything).
		Return(primitive.NewObjectID(), nil)

	medDB := databases.NewMedicationDatabase(dbHelper)

	created := primitive.NewDateTimeFromTime(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	med := &models.Medication{
		Medication: models.MedicationDetails{
			Name:      "Aspirin",
			Dosage:    "75mg",
			Timings:   []string{"08:00"},
			Status:    models.StatusUpcoming,
			UserID:    "user-1",
			CreatedAt: created,
			UpdatedAt: created,
		},
	}

	err := medDB.CreateMedication(context.Background(), med)

	assert.NoError(t, err)
	assert.Equal(t, created, med.Medication.CreatedAt)
	assert.Equal(t, created, med.Medication.UpdatedAt)
	assert.False(t, med.ID.IsZero())
}

func TestCreateMedicationStampsMissingTimestamps(t *testing.T) {
	collectionHelper := &mocks.CollectionHelper{}
	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "medications").Return(collectionHelper)
	collectionHelper.On("InsertOne", context.Background(), mock.Anything).
		Return(primitive.NewObjectID(), nil)

	medDB := databases.NewMedicationDatabase(dbHelper)

	med := &models.Medication{
		Medication: models.MedicationDetails{
			Name:   "Aspirin",
			Dosage: "75mg",
			Status: models.StatusUpcoming,
			UserID: "user-1",
		},
	}

	err := medDB.CreateMedication(context.Background(), med)

	assert.NoError(t, err)
	assert.NotZero(t, med.Medication.CreatedAt)
	assert.Equal(t, med.Medication.CreatedAt, med.Medication.UpdatedAt)
}

func TestGetUserByEmail(t *testing.T) {
	srHelper := &mocks.SingleResultHelper{}
	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.User)
		arg.Details.Email = "pat@example.com"
	})

	collectionHelper := &mocks.CollectionHelper{}
	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "users").Return(collectionHelper)
	collectionHelper.On("FindOne", context.Background(), mock.Anything).Return(srHelper)

	userDB := databases.NewUserDatabase(dbHelper)

	user, err := userDB.GetUserByEmail(context.Background(), "pat@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "pat@example.com", user.Details.Email)
}
