package databases

// go generate: mockery --name UserDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akshitarai30/MediCareAssistant/models"
)

const userName = "users"

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByEmails(ctx context.Context, emails []string) ([]models.User, error)
	GetCaregiversForPatient(ctx context.Context, patientEmail string) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	AddPatientEmail(ctx context.Context, caregiverID, patientEmail string) error
	RemovePatientEmail(ctx context.Context, caregiverID, patientEmail string) error
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

// GetUserByID retrieves a single user by ID
func (u *userDatabase) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = u.db.Collection(userName).FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail retrieves a single user by email address
func (u *userDatabase) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.db.Collection(userName).FindOne(ctx, bson.M{"user.email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUsersByEmails retrieves all users whose email is in the given list
func (u *userDatabase) GetUsersByEmails(ctx context.Context, emails []string) ([]models.User, error) {
	if len(emails) == 0 {
		return []models.User{}, nil
	}

	cursor, err := u.db.Collection(userName).Find(ctx, bson.M{"user.email": bson.M{"$in": emails}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetCaregiversForPatient retrieves all caregiver accounts linked to the given
// patient email
func (u *userDatabase) GetCaregiversForPatient(ctx context.Context, patientEmail string) ([]models.User, error) {
	filter := bson.M{
		"user.role":          models.RoleCaregiver,
		"user.patientEmails": patientEmail,
	}

	cursor, err := u.db.Collection(userName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var caregivers []models.User
	if err := cursor.All(ctx, &caregivers); err != nil {
		return nil, err
	}

	return caregivers, nil
}

// CreateUser creates a new user
func (u *userDatabase) CreateUser(ctx context.Context, user *models.User) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	user.Details.CreatedAt = now
	user.Details.UpdatedAt = now

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	_, err := u.db.Collection(userName).InsertOne(ctx, user)
	return err
}

// AddPatientEmail links a patient to a caregiver account
func (u *userDatabase) AddPatientEmail(ctx context.Context, caregiverID, patientEmail string) error {
	objectID, err := primitive.ObjectIDFromHex(caregiverID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$addToSet": bson.M{"user.patientEmails": patientEmail},
		"$set":      bson.M{"user.updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	}

	_, err = u.db.Collection(userName).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

// RemovePatientEmail unlinks a patient from a caregiver account
func (u *userDatabase) RemovePatientEmail(ctx context.Context, caregiverID, patientEmail string) error {
	objectID, err := primitive.ObjectIDFromHex(caregiverID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$pull": bson.M{"user.patientEmails": patientEmail},
		"$set":  bson.M{"user.updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	}

	_, err = u.db.Collection(userName).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}
