package queue

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routing keys on the habits exchange.
const (
	KeyUserRegistered   = "user.registered"
	KeyGroupCreated     = "group.created"
	KeyHabitCreated     = "habit.created"
	KeyUserEntryLogged  = "entry.user.logged"
	KeyGroupEntryLogged = "entry.group.logged"
)

type UserRegistered struct {
	UserID   primitive.ObjectID `json:"userId"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}

type GroupCreated struct {
	GroupID   primitive.ObjectID   `json:"groupId"`
	Name      string               `json:"name"`
	OwnerID   primitive.ObjectID   `json:"ownerId"`
	MemberIDs []primitive.ObjectID `json:"memberIds"`
}

type HabitCreated struct {
	HabitID      primitive.ObjectID `json:"habitId"`
	Title        string             `json:"title"`
	CreatedBy    primitive.ObjectID `json:"createdBy"`
	AssigneeType string             `json:"assigneeType"`
	AssigneeID   primitive.ObjectID `json:"assigneeId"`
}

type UserEntryLogged struct {
	EntryID primitive.ObjectID `json:"entryId"`
	HabitID primitive.ObjectID `json:"habitId"`
	UserID  primitive.ObjectID `json:"userId"`
	Date    time.Time          `json:"date"`
	Status  string             `json:"status"`
}

type GroupEntryLogged struct {
	EntryID   primitive.ObjectID   `json:"entryId"`
	HabitID   primitive.ObjectID   `json:"habitId"`
	GroupID   primitive.ObjectID   `json:"groupId"`
	Date      time.Time            `json:"date"`
	CheckedBy []primitive.ObjectID `json:"checkedBy"`
}
