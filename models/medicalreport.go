package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicalReport holds the structure for the medical report collection in mongo
type MedicalReport struct {
	ID      primitive.ObjectID   `json:"_id" bson:"_id"`
	Report  MedicalReportDetails `json:"report" bson:"report"`
	Version int32                `json:"__v" bson:"__v"`
}

// MedicalReportDetails holds the structure for the inner medical report structure
type MedicalReportDetails struct {
	Title       string             `json:"title" bson:"title"`
	FileName    string             `json:"fileName" bson:"fileName"`
	FileURL     string             `json:"fileURL" bson:"fileURL"`
	PublicID    string             `json:"publicID" bson:"publicID"`
	ContentType string             `json:"contentType" bson:"contentType"`
	UserID      string             `json:"userID" bson:"userID"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// MedicalReportResponse represents the API response structure
type MedicalReportResponse struct {
	MedicalReports []MedicalReport `json:"medicalReports"`
	Pagination     Pagination      `json:"pagination"`
}
