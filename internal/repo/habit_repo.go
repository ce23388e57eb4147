package repo

import (
	"context"
	"time"

	"github.com/tazhibayda/habits-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateHabit always overwrites createdAt with server time.
func (s *Store) CreateHabit(ctx context.Context, h *domain.Habit) (err error) {
	sp, ctx := startSpan(ctx, "habits.insert")
	defer func() { finish(sp, err) }()

	h.ID = primitive.NilObjectID
	h.CreatedAt = time.Now().UTC()
	res, err := s.habits.InsertOne(ctx, h)
	if err != nil {
		return err
	}
	h.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// HabitsForUser returns habits the user created or that are assigned to the user directly.
func (s *Store) HabitsForUser(ctx context.Context, userID primitive.ObjectID) (_ []domain.Habit, err error) {
	sp, ctx := startSpan(ctx, "habits.for_user")
	defer func() { finish(sp, err) }()

	filter := bson.M{"$or": bson.A{
		bson.M{"createdBy": userID},
		bson.M{"assignedTo.type": domain.AssigneeUser, "assignedTo.id": userID},
	}}
	return findAll[domain.Habit](ctx, s.habits, filter, byCreatedAt())
}

func (s *Store) HabitsForGroup(ctx context.Context, groupID primitive.ObjectID) (_ []domain.Habit, err error) {
	sp, ctx := startSpan(ctx, "habits.for_group")
	defer func() { finish(sp, err) }()

	filter := bson.M{"assignedTo.type": domain.AssigneeGroup, "assignedTo.id": groupID}
	return findAll[domain.Habit](ctx, s.habits, filter, byCreatedAt())
}

// MostLoggedHabit ranks the user's entries by habit. Equal counts go to the
// habit created first; entries whose habit document is gone still count but
// lose ties and come back with an empty title. ErrNotFound when the user has
// logged nothing.
func (s *Store) MostLoggedHabit(ctx context.Context, userID primitive.ObjectID) (_ *domain.MostLogged, err error) {
	sp, ctx := startSpan(ctx, "userHabitEntries.most_logged")
	defer func() { finish(sp, err) }()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$habitId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colHabits},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "habit"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$habit"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "known", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$habit._id", false}}}, 1, 0,
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "count", Value: -1},
			{Key: "known", Value: -1},
			{Key: "habit.createdAt", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "habitId", Value: "$_id"},
			{Key: "title", Value: "$habit.title"},
			{Key: "count", Value: 1},
		}}},
	}

	cur, err := s.userEntries.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	var top domain.MostLogged
	if err := cur.Decode(&top); err != nil {
		return nil, err
	}
	return &top, nil
}
