package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	"github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	Important bool               `bson:"important"`
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type ownerDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Name     string             `bson:"name"`
}

type noteWithOwnerDocument struct {
	Note  noteDocument   `bson:",inline"`
	Owner *ownerDocument `bson:"owner"`
}

func (d noteDocument) toDomain() domain.Note {
	return domain.Note{
		ID:        domain.ID(d.ID.Hex()),
		Content:   d.Content,
		Important: d.Important,
		Owner:     userdomain.ID(d.User.Hex()),
		CreatedAt: d.CreatedAt,
	}
}

type MongoRepository struct {
	notes *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{notes: database.Collection(db.NotesTable)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.notes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("user_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create notes index: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, note domain.Note) (domain.Note, error) {
	owner, err := db.ObjectID(string(note.Owner))
	if err != nil {
		return domain.Note{}, ErrOwnerMissing
	}

	start := time.Now()
	doc := noteDocument{
		ID:        primitive.NewObjectID(),
		Content:   note.Content,
		Important: note.Important,
		User:      owner,
		CreatedAt: note.CreatedAt,
	}

	_, err = r.notes.InsertOne(ctx, doc)
	if err := db.HandleMongoError(err, nil, "create note", db.NotesTable, start); err != nil {
		return domain.Note{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id domain.ID) (domain.Note, error) {
	oid, err := db.ObjectID(string(id))
	if err != nil {
		return domain.Note{}, err
	}

	start := time.Now()
	var doc noteDocument
	err = r.notes.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err := db.HandleMongoError(err, ErrNoteNotFound, "find note", db.NotesTable, start); err != nil {
		return domain.Note{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoRepository) List(ctx context.Context) ([]domain.WithOwner, error) {
	start := time.Now()
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: db.UsersTable},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "owner.passwordHash", Value: 0}}}},
	}

	cursor, err := r.notes.Aggregate(ctx, pipeline)
	if err := db.HandleMongoError(err, nil, "list notes", db.NotesTable, start); err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []noteWithOwnerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}

	notes := make([]domain.WithOwner, 0, len(docs))
	for _, d := range docs {
		item := domain.WithOwner{Note: d.Note.toDomain()}
		item.OwnerSummary.ID = item.Owner
		if d.Owner != nil {
			item.OwnerSummary.Username = d.Owner.Username
			item.OwnerSummary.Name = d.Owner.Name
		}
		notes = append(notes, item)
	}
	return notes, nil
}

func (r *MongoRepository) UpdateOwned(ctx context.Context, note domain.Note) (domain.Note, error) {
	oid, err := db.ObjectID(string(note.ID))
	if err != nil {
		return domain.Note{}, err
	}
	owner, err := db.ObjectID(string(note.Owner))
	if err != nil {
		return domain.Note{}, ErrNoteNotFound
	}

	start := time.Now()
	var doc noteDocument
	err = r.notes.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "user": owner},
		bson.M{"$set": bson.M{"content": note.Content, "important": note.Important}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err := db.HandleMongoError(err, ErrNoteNotFound, "update note", db.NotesTable, start); err != nil {
		return domain.Note{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoRepository) DeleteOwned(ctx context.Context, id domain.ID, owner userdomain.ID) error {
	oid, err := db.ObjectID(string(id))
	if err != nil {
		return err
	}
	ownerID, err := db.ObjectID(string(owner))
	if err != nil {
		return ErrNoteNotFound
	}

	start := time.Now()
	res, err := r.notes.DeleteOne(ctx, bson.M{"_id": oid, "user": ownerID})
	if err := db.HandleMongoError(err, nil, "delete note", db.NotesTable, start); err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := r.notes.CountDocuments(ctx, bson.D{})
	if err := db.HandleMongoError(err, nil, "count notes", db.NotesTable, start); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	start := time.Now()
	_, err := r.notes.DeleteMany(ctx, bson.D{})
	return db.HandleMongoError(err, nil, "delete notes", db.NotesTable, start)
}
