package student

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultDBName is the default database used by MongoStore.
	DefaultDBName = "studentfees"

	// DefaultCollectionName is the default collection holding student records.
	DefaultCollectionName = "students"
)

// MongoStore implements Store over a MongoDB collection.
//
// Design notes:
//   - The mongo client is owned by the caller; this store must NOT disconnect it.
//   - Email uniqueness is enforced by a unique index; duplicate-key errors are
//     mapped to ConflictError so callers never see driver internals.
//   - Every mutation is a single-document update and relies on MongoDB's
//     per-document atomicity (no application-level locking).
type MongoStore struct {
	coll *mongo.Collection
}

// MongoOption configures the store.
type MongoOption func(*mongoConfig)

type mongoConfig struct {
	dbName   string
	collName string
}

// WithDatabase sets the database name (default DefaultDBName).
func WithDatabase(name string) MongoOption {
	return func(c *mongoConfig) {
		if strings.TrimSpace(name) != "" {
			c.dbName = name
		}
	}
}

// WithCollection sets the collection name (default DefaultCollectionName).
func WithCollection(name string) MongoOption {
	return func(c *mongoConfig) {
		if strings.TrimSpace(name) != "" {
			c.collName = name
		}
	}
}

// NewMongoStore constructs a MongoStore and ensures the unique email index.
func NewMongoStore(ctx context.Context, client *mongo.Client, opts ...MongoOption) (*MongoStore, error) {
	if client == nil {
		return nil, OpError{Op: "student.NewMongoStore", Kind: ErrInvalidInput, Msg: "nil mongo client"}
	}

	cfg := mongoConfig{dbName: DefaultDBName, collName: DefaultCollectionName}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	st := &MongoStore{coll: client.Database(cfg.dbName).Collection(cfg.collName)}

	_, err := st.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, OpError{Op: "student.NewMongoStore", Kind: err, Msg: "ensure email index"}
	}

	return st, nil
}

// Create inserts a new record with FeesPaid=false.
func (s *MongoStore) Create(ctx context.Context, in CreateInput) (Student, error) {
	const op = "student.Create"

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	rec := Student{
		ID:           primitive.NewObjectID(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		FeesPaid:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Student{}, ConflictError{Op: op, Field: "email"}
		}
		return Student{}, OpError{Op: op, Kind: err}
	}
	return rec, nil
}

// GetByEmail resolves a record by its exact stored email.
func (s *MongoStore) GetByEmail(ctx context.Context, email string) (Student, error) {
	const op = "student.GetByEmail"

	var rec Student
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Student{}, NotFoundError{Op: op, Resource: "student"}
		}
		return Student{}, OpError{Op: op, Kind: err}
	}
	return rec, nil
}

// GetByID resolves a record by id.
func (s *MongoStore) GetByID(ctx context.Context, id string) (Student, error) {
	const op = "student.GetByID"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Student{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "malformed id"}
	}

	var rec Student
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Student{}, NotFoundError{Op: op, Resource: "student"}
		}
		return Student{}, OpError{Op: op, Kind: err}
	}
	return rec, nil
}

// List returns every record, oldest first.
func (s *MongoStore) List(ctx context.Context) ([]Student, error) {
	const op = "student.List"

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, OpError{Op: op, Kind: err}
	}
	defer func() { _ = cur.Close(ctx) }()

	var recs []Student
	if err := cur.All(ctx, &recs); err != nil {
		return nil, OpError{Op: op, Kind: err}
	}
	return recs, nil
}

// SetRefreshToken overwrites the session slot on the record.
func (s *MongoStore) SetRefreshToken(ctx context.Context, id, token string, now time.Time) error {
	const op = "student.SetRefreshToken"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "malformed id"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"refreshToken": token, "updatedAt": now},
	})
	if err != nil {
		return OpError{Op: op, Kind: err}
	}
	if res.MatchedCount == 0 {
		return NotFoundError{Op: op, Resource: "student"}
	}
	return nil
}

// UpdateProfile sets fullname/email and returns the updated record.
func (s *MongoStore) UpdateProfile(ctx context.Context, in UpdateProfileInput) (Student, error) {
	const op = "student.UpdateProfile"

	oid, err := primitive.ObjectIDFromHex(in.ID)
	if err != nil {
		return Student{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "malformed id"}
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec Student
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"fullname": in.FullName, "email": in.Email, "updatedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Student{}, NotFoundError{Op: op, Resource: "student"}
		}
		if mongo.IsDuplicateKeyError(err) {
			return Student{}, ConflictError{Op: op, Field: "email"}
		}
		return Student{}, OpError{Op: op, Kind: err}
	}
	return rec, nil
}

// SetFeesPaid marks fees as paid. Idempotent: re-running leaves the flag true.
func (s *MongoStore) SetFeesPaid(ctx context.Context, id string, now time.Time) (Student, error) {
	const op = "student.SetFeesPaid"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Student{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "malformed id"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec Student
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"fees_status": true, "updatedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Student{}, NotFoundError{Op: op, Resource: "student"}
		}
		return Student{}, OpError{Op: op, Kind: err}
	}
	return rec, nil
}
