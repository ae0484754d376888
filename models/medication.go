package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medication status values. Completed prescriptions keep StatusTaken with both
// next-dose fields cleared.
const (
	StatusUpcoming = "Upcoming"
	StatusTaken    = "Taken"
	StatusSnoozed  = "Snoozed"
	StatusMissed   = "Missed"
)

// Medication holds the structure for the medication collection in mongo
type Medication struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Medication MedicationDetails  `json:"medication" bson:"medication"`
	Version    int32              `json:"__v" bson:"__v"`
}

// MedicationDetails holds the structure for the inner medication structure.
// NextDoseTime and NextDoseDate are either both set or both nil; NextDoseTime is
// always the HH:mm rendering of NextDoseDate.
type MedicationDetails struct {
	Name         string              `json:"name" bson:"name"`
	Dosage       string              `json:"dosage" bson:"dosage"`
	Timings      []string            `json:"timings" bson:"timings"`
	Status       string              `json:"status" bson:"status"`
	NextDoseTime *string             `json:"nextDoseTime" bson:"nextDoseTime"`
	NextDoseDate *primitive.DateTime `json:"nextDoseDate" bson:"nextDoseDate"`
	EndDate      *primitive.DateTime `json:"endDate,omitempty" bson:"endDate,omitempty"`
	UserID       string              `json:"userID" bson:"userID"`
	CreatedAt    primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// MedicationResponse represents the API response structure
type MedicationResponse struct {
	Medications []MedicationWithDetails `json:"medications"`
	Pagination  Pagination              `json:"pagination"`
}

// MedicationWithDetails includes additional details for the response
type MedicationWithDetails struct {
	ID           primitive.ObjectID  `json:"_id" bson:"_id"`
	Name         string              `json:"name" bson:"name"`
	Dosage       string              `json:"dosage" bson:"dosage"`
	Timings      []string            `json:"timings" bson:"timings"`
	Status       string              `json:"status" bson:"status"`
	NextDoseTime *string             `json:"nextDoseTime" bson:"nextDoseTime"`
	NextDoseDate *primitive.DateTime `json:"nextDoseDate" bson:"nextDoseDate"`
	EndDate      *primitive.DateTime `json:"endDate,omitempty" bson:"endDate,omitempty"`
	UserID       string              `json:"userID" bson:"userID"`
	CreatedAt    primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// ValidStatus reports whether s is one of the known medication status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusTaken, StatusSnoozed, StatusMissed:
		return true
	}
	return false
}
