package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssigneeUser  = "user"
	AssigneeGroup = "group"
)

// AssignedTo points a habit at either a single user or a group.
type AssignedTo struct {
	Type string             `bson:"type" json:"type"` // "user" | "group"
	ID   primitive.ObjectID `bson:"id"   json:"id"`
}

type Habit struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title      string             `bson:"title"         json:"title"`
	CreatedBy  primitive.ObjectID `bson:"createdBy"     json:"createdBy"`
	AssignedTo AssignedTo         `bson:"assignedTo"    json:"assignedTo"`
	Schedule   any                `bson:"schedule"      json:"schedule"`
	CreatedAt  time.Time          `bson:"createdAt"     json:"createdAt"`
}

// MostLogged is the habit a user logged most often.
type MostLogged struct {
	HabitID primitive.ObjectID `bson:"habitId" json:"habitId"`
	Title   string             `bson:"title"   json:"title"`
	Count   int                `bson:"count"   json:"count"`
}
