package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RolePatient   = "patient"
	RoleCaregiver = "caregiver"
)

// User holds the structure for the user collection in mongo
type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details UserDetails        `json:"user" bson:"user"`
	Version int32              `json:"__v" bson:"__v"`
}

// UserDetails holds the structure for the inner user structure
type UserDetails struct {
	Username      string             `json:"username" bson:"username"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"password" bson:"password"`
	Role          string             `json:"role" bson:"role"`
	PatientEmails []string           `json:"patientEmails" bson:"patientEmails"`
	CreatedAt     primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt     primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
