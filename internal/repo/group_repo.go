package repo

import (
	"context"
	"errors"
	"time"

	"github.com/tazhibayda/habits-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateGroup defaults memberIds to [ownerId] when none were given.
func (s *Store) CreateGroup(ctx context.Context, g *domain.Group) (err error) {
	sp, ctx := startSpan(ctx, "groups.insert")
	defer func() { finish(sp, err) }()

	if g.MemberIDs == nil {
		g.MemberIDs = []primitive.ObjectID{g.OwnerID}
	}
	g.ID = primitive.NilObjectID
	g.CreatedAt = time.Now().UTC()
	res, err := s.groups.InsertOne(ctx, g)
	if IsDup(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	g.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindGroupByID(ctx context.Context, id primitive.ObjectID) (_ *domain.Group, err error) {
	sp, ctx := startSpan(ctx, "groups.find_by_id")
	defer func() { finish(sp, err) }()

	var g domain.Group
	err = s.groups.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GroupsForUser lists groups whose member set contains userID.
func (s *Store) GroupsForUser(ctx context.Context, userID primitive.ObjectID) (_ []domain.Group, err error) {
	sp, ctx := startSpan(ctx, "groups.for_user")
	defer func() { finish(sp, err) }()

	return findAll[domain.Group](ctx, s.groups, bson.M{"memberIds": userID}, byCreatedAt())
}
