// Package mongostore implements store.Store on MongoDB. A user is a single
// document whose exercise log is an embedded array.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/store"
)

// CollectionName is the collection holding user documents.
const CollectionName = "users"

// userDocument is the BSON shape of a user.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Log      []store.Exercise   `bson:"log"`
}

func (d *userDocument) toUser() *store.User {
	log := make([]store.Exercise, 0, len(d.Log))
	for _, e := range d.Log {
		e.Date = e.Date.UTC()
		log = append(log, e)
	}
	return &store.User{ID: d.ID.Hex(), Username: d.Username, Log: log}
}

// Store is the MongoDB-backed store.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// New returns a Store using database on client, creating the unique username index if needed.
// The Store owns client and disconnects it on Close.
func New(ctx context.Context, client *mongo.Client, database string) (*Store, error) {
	users := client.Database(database).Collection(CollectionName)

	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := users.Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return nil, apperror.NewMigrationError("failed to create username index", err)
	}
	return &Store{client: client, users: users}, nil
}

func (s *Store) findOne(ctx context.Context, filter bson.D) (*store.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toUser(), nil
}

// FindUserByUsername returns the user with the given username, or nil.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*store.User, error) {
	user, err := s.findOne(ctx, bson.D{{Key: "username", Value: username}})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to find user by username", err)
	}
	return user, nil
}

// InsertUser creates a user document with an empty log.
func (s *Store) InsertUser(ctx context.Context, username string) (*store.User, error) {
	doc := userDocument{ID: primitive.NewObjectID(), Username: username, Log: []store.Exercise{}}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.NewDuplicateKeyError(fmt.Sprintf("username '%s' already exists", username), err)
		}
		return nil, apperror.NewDatabaseError("failed to insert user", err)
	}
	return doc.toUser(), nil
}

// ListUsers returns every user's id and username in natural order. The log is projected away.
func (s *Store) ListUsers(ctx context.Context) ([]store.UserSummary, error) {
	cursor, err := s.users.Find(ctx, bson.D{}, options.Find().SetProjection(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode users", err)
	}
	users := make([]store.UserSummary, 0, len(docs))
	for _, d := range docs {
		users = append(users, store.UserSummary{ID: d.ID.Hex(), Username: d.Username})
	}
	return users, nil
}

// FindUserByID returns the user with the given id, or nil when the id is unknown or not an ObjectID.
func (s *Store) FindUserByID(ctx context.Context, id string) (*store.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	user, err := s.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to find user by id", err)
	}
	return user, nil
}

// AppendExercise pushes onto the embedded log; a single-document update is atomic in MongoDB.
func (s *Store) AppendExercise(ctx context.Context, user *store.User, exercise store.Exercise) (*store.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, apperror.NewUserNotFoundError(user.ID)
	}
	var doc userDocument
	err = s.users.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "log", Value: exercise}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewUserNotFoundError(user.ID)
		}
		return nil, apperror.NewDatabaseError("failed to append exercise", err)
	}
	return doc.toUser(), nil
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return apperror.NewDatabaseError("failed to ping MongoDB", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
