package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const StatusCompleted = "completed"

// UserHabitEntry is one user's completion record for one habit on one day.
type UserHabitEntry struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"   json:"_id"`
	HabitID primitive.ObjectID `bson:"habitId"         json:"habitId"`
	UserID  primitive.ObjectID `bson:"userId"          json:"userId"`
	Date    time.Time          `bson:"date"            json:"date"`
	Status  string             `bson:"status"          json:"status"`
	Notes   string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// GroupHabitEntry records which members confirmed a group habit on one day.
// Notes are keyed by member id.
type GroupHabitEntry struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	HabitID   primitive.ObjectID   `bson:"habitId"       json:"habitId"`
	GroupID   primitive.ObjectID   `bson:"groupId"       json:"groupId"`
	Date      time.Time            `bson:"date"          json:"date"`
	CheckedBy []primitive.ObjectID `bson:"checkedBy"     json:"checkedBy"`
	Notes     map[string]string    `bson:"notes"         json:"notes"`
}
