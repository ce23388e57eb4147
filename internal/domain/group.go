package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Group struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name"          json:"name"`
	Description string               `bson:"description"   json:"description"`
	OwnerID     primitive.ObjectID   `bson:"ownerId"       json:"ownerId"`
	MemberIDs   []primitive.ObjectID `bson:"memberIds"     json:"memberIds"` // owner included unless overridden
	CreatedAt   time.Time            `bson:"createdAt"     json:"createdAt"`
}

// MemberCompletion is one row of a group's daily completion summary.
type MemberCompletion struct {
	User
	CompletedGroupHabits int `json:"completedGroupHabits"`
	TotalGroupHabits     int `json:"totalGroupHabits"`
}
