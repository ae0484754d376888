package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicationLog holds the structure for the medicationlogs collection in mongo.
// Logs are append-only; one document is written per status transition and never
// mutated afterwards.
type MedicationLog struct {
	ID      primitive.ObjectID   `json:"_id" bson:"_id"`
	Log     MedicationLogDetails `json:"log" bson:"log"`
	Version int32                `json:"__v" bson:"__v"`
}

// MedicationLogDetails holds the structure for the inner log structure
type MedicationLogDetails struct {
	UserID         string             `json:"userID" bson:"userID"`
	MedicationID   string             `json:"medicationID" bson:"medicationID"`
	MedicationName string             `json:"medicationName" bson:"medicationName"`
	Status         string             `json:"status" bson:"status"`
	Timestamp      primitive.DateTime `json:"timestamp" bson:"timestamp"`
}

// MedicationLogResponse represents the API response structure
type MedicationLogResponse struct {
	Logs       []MedicationLogWithDetails `json:"logs"`
	Pagination Pagination                 `json:"pagination"`
}

// MedicationLogWithDetails includes additional details for the response
type MedicationLogWithDetails struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	UserID         string             `json:"userID" bson:"userID"`
	MedicationID   string             `json:"medicationID" bson:"medicationID"`
	MedicationName string             `json:"medicationName" bson:"medicationName"`
	Status         string             `json:"status" bson:"status"`
	Timestamp      primitive.DateTime `json:"timestamp" bson:"timestamp"`
}
