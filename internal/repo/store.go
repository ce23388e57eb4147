package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

var (
	ErrDuplicate    = errors.New("duplicate key")
	ErrNotFound     = errors.New("not found")
	ErrNotConnected = errors.New("store not connected")
)

const (
	colUsers        = "users"
	colGroups       = "groups"
	colHabits       = "habits"
	colUserEntries  = "userHabitEntries"
	colGroupEntries = "groupHabitEntries"
)

type Store struct {
	Client *mongo.Client
	DB     *mongo.Database

	users        *mongo.Collection
	groups       *mongo.Collection
	habits       *mongo.Collection
	userEntries  *mongo.Collection
	groupEntries *mongo.Collection
}

// NewStore connects and pings; the caller must not serve traffic until it returns nil.
func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		// free-form fields (habit schedule) decode as maps, which JSON-encode cleanly
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := cli.Database(dbname)
	return &Store{
		Client:       cli,
		DB:           db,
		users:        db.Collection(colUsers),
		groups:       db.Collection(colGroups),
		habits:       db.Collection(colHabits),
		userEntries:  db.Collection(colUserEntries),
		groupEntries: db.Collection(colGroupEntries),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

// EnsureIndexes creates the unique indexes that back 409 responses, plus lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	if _, err := s.groups.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_name"),
		},
		{
			Keys:    bson.D{{Key: "memberIds", Value: 1}},
			Options: options.Index().SetName("members"),
		},
	}); err != nil {
		return fmt.Errorf("groups indexes: %w", err)
	}

	if _, err := s.habits.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index().SetName("created_by"),
		},
		{
			Keys:    bson.D{{Key: "assignedTo.type", Value: 1}, {Key: "assignedTo.id", Value: 1}},
			Options: options.Index().SetName("assigned_to"),
		},
	}); err != nil {
		return fmt.Errorf("habits indexes: %w", err)
	}

	if _, err := s.userEntries.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("user_date"),
		},
	}); err != nil {
		return fmt.Errorf("userHabitEntries indexes: %w", err)
	}

	_, err := s.groupEntries.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("group_date"),
		},
	})
	if err != nil {
		return fmt.Errorf("groupHabitEntries indexes: %w", err)
	}
	return nil
}

func IsDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}

func startSpan(ctx context.Context, op string, opts ...tracer.StartSpanOption) (ddtrace.Span, context.Context) {
	opts = append(opts, tracer.SpanType("mongodb"), tracer.ServiceName("habits-mongo"))
	return tracer.StartSpanFromContext(ctx, "mongo."+op, opts...)
}

func finish(sp ddtrace.Span, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	sp.Finish(tracer.WithError(err))
}

// findAll decodes every match; the result is never nil so it encodes as [].
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}

func byCreatedAt() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}

var withoutPassword = bson.D{{Key: "password", Value: 0}}
