package repo

import (
	"context"
	"time"

	"github.com/tazhibayda/habits-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// Entries are append-only. Repeated entries for the same habit and day are stored as-is.

func (s *Store) CreateUserEntry(ctx context.Context, e *domain.UserHabitEntry) (err error) {
	sp, ctx := startSpan(ctx, "userHabitEntries.insert", tracer.Tag("user_id", e.UserID.Hex()))
	defer func() { finish(sp, err) }()

	e.ID = primitive.NilObjectID
	res, err := s.userEntries.InsertOne(ctx, e)
	if err != nil {
		return err
	}
	e.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) CreateGroupEntry(ctx context.Context, e *domain.GroupHabitEntry) (err error) {
	sp, ctx := startSpan(ctx, "groupHabitEntries.insert", tracer.Tag("group_id", e.GroupID.Hex()))
	defer func() { finish(sp, err) }()

	if e.CheckedBy == nil {
		e.CheckedBy = []primitive.ObjectID{}
	}
	if e.Notes == nil {
		e.Notes = map[string]string{}
	}
	e.ID = primitive.NilObjectID
	res, err := s.groupEntries.InsertOne(ctx, e)
	if err != nil {
		return err
	}
	e.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func dayFilter(field string, id primitive.ObjectID, day time.Time) bson.M {
	start, end := domain.DayBounds(day)
	return bson.M{
		field:  id,
		"date": bson.M{"$gte": start, "$lte": end},
	}
}

func byDate() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) UserEntriesOn(ctx context.Context, userID primitive.ObjectID, day time.Time) (_ []domain.UserHabitEntry, err error) {
	sp, ctx := startSpan(ctx, "userHabitEntries.on_day")
	defer func() { finish(sp, err) }()

	return findAll[domain.UserHabitEntry](ctx, s.userEntries, dayFilter("userId", userID, day), byDate())
}

func (s *Store) GroupEntriesOn(ctx context.Context, groupID primitive.ObjectID, day time.Time) (_ []domain.GroupHabitEntry, err error) {
	sp, ctx := startSpan(ctx, "groupHabitEntries.on_day")
	defer func() { finish(sp, err) }()

	return findAll[domain.GroupHabitEntry](ctx, s.groupEntries, dayFilter("groupId", groupID, day), byDate())
}
