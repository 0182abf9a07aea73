package files

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrNotFound = errors.New("files: not found")

// Record is the stored metadata for an uploaded file. Path is the
// storage-relative location, never exposed directly to clients.
type Record struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Filename    string        `bson:"filename" json:"filename"`
	Size        int64         `bson:"size" json:"size"`
	MIMEType    string        `bson:"mime_type" json:"mime_type"`
	Extension   string        `bson:"extension" json:"extension"`
	Path        string        `bson:"path" json:"-"`
	URL         string        `bson:"-" json:"url"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Tags        []string      `bson:"tags,omitempty" json:"tags,omitempty"`
	UploaderID  string        `bson:"uploader_id" json:"uploader_id"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}

type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection("files")}
}

func (r *Repository) Create(ctx context.Context, rec *Record) (string, error) {
	rec.CreatedAt = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(bson.ObjectID)
	rec.ID = id
	return id.Hex(), nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Record, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var rec Record
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List returns file records, optionally filtered by a filename substring.
func (r *Repository) List(ctx context.Context, search string, skip, limit int) ([]Record, error) {
	query := bson.M{}
	if search != "" {
		query["filename"] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
	}

	cursor, err := r.col.Find(ctx, query,
		options.Find().
			SetSkip(int64(skip)).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	records := []Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) Count(ctx context.Context, search string) (int64, error) {
	query := bson.M{}
	if search != "" {
		query["filename"] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
	}
	return r.col.CountDocuments(ctx, query)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
