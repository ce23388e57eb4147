package repo

import (
	"context"
	"errors"
	"time"

	"github.com/tazhibayda/habits-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateUser stamps createdAt and inserts; a taken email or username yields ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (err error) {
	sp, ctx := startSpan(ctx, "users.insert")
	defer func() { finish(sp, err) }()

	u.ID = primitive.NilObjectID
	u.CreatedAt = time.Now().UTC()
	res, err := s.users.InsertOne(ctx, u)
	if IsDup(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindUserByEmail returns the full record, password hash included, for credential checks.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (_ *domain.User, err error) {
	sp, ctx := startSpan(ctx, "users.find_by_email")
	defer func() { finish(sp, err) }()

	var u domain.User
	err = s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (_ *domain.User, err error) {
	sp, ctx := startSpan(ctx, "users.find_by_id")
	defer func() { finish(sp, err) }()

	var u domain.User
	err = s.users.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(withoutPassword)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUsersByIDs loads users in the order of ids; unknown ids are skipped.
func (s *Store) FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (_ []domain.User, err error) {
	sp, ctx := startSpan(ctx, "users.find_many")
	defer func() { finish(sp, err) }()

	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	found, err := findAll[domain.User](ctx, s.users,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(withoutPassword),
	)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]domain.User, 0, len(found))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
			delete(byID, id)
		}
	}
	return out, nil
}

func (s *Store) UserCreatedAt(ctx context.Context, id primitive.ObjectID) (_ time.Time, err error) {
	sp, ctx := startSpan(ctx, "users.created_at")
	defer func() { finish(sp, err) }()

	var doc struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	err = s.users.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.D{{Key: "createdAt", Value: 1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return doc.CreatedAt, nil
}
