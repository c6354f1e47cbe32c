package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	"github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Username     string             `bson:"username"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type noteRefDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	Important bool               `bson:"important"`
}

type profileDocument struct {
	User  userDocument      `bson:",inline"`
	Notes []noteRefDocument `bson:"notes"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           domain.ID(d.ID.Hex()),
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

type MongoRepository struct {
	users *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{users: database.Collection(db.UsersTable)}
}

// EnsureIndexes creates the unique username index. It is idempotent.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	_, err := r.users.InsertOne(ctx, doc)
	if err := db.HandleMongoError(err, nil, "create user", db.UsersTable, start); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return domain.User{}, ErrUsernameAlreadyExists
		}
		return domain.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, "find user by username")
}

func (r *MongoRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	oid, err := db.ObjectID(string(id))
	if err != nil {
		return domain.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid}, "find user by id")
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M, operation string) (domain.User, error) {
	start := time.Now()
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if err := db.HandleMongoError(err, ErrUserNotFound, operation, db.UsersTable, start); err != nil {
		return domain.User{}, err
	}
	return doc.toDomain(), nil
}

// List joins each user with the notes that reference it, so a deleted note
// can never appear in a user's list.
func (r *MongoRepository) List(ctx context.Context) ([]domain.Profile, error) {
	start := time.Now()
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: db.NotesTable},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "user"},
			{Key: "as", Value: "notes"},
		}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err := db.HandleMongoError(err, nil, "list users", db.UsersTable, start); err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []profileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(docs))
	for _, d := range docs {
		p := domain.Profile{User: d.User.toDomain(), Notes: make([]domain.NoteRef, 0, len(d.Notes))}
		for _, n := range d.Notes {
			p.Notes = append(p.Notes, domain.NoteRef{ID: n.ID.Hex(), Content: n.Content, Important: n.Important})
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := r.users.CountDocuments(ctx, bson.D{})
	if err := db.HandleMongoError(err, nil, "count users", db.UsersTable, start); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	start := time.Now()
	_, err := r.users.DeleteMany(ctx, bson.D{})
	return db.HandleMongoError(err, nil, "delete users", db.UsersTable, start)
}
