package articles

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrNotFound is returned when an article does not exist.
var ErrNotFound = errors.New("articles: not found")

// Article is the stored document.
// Indexes: slug (unique), category_id, author_id, created_at, and a text
// index on title and content for search.
type Article struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string        `bson:"title" json:"title"`
	Slug       string        `bson:"slug" json:"slug"`
	Content    string        `bson:"content" json:"content"`
	Excerpt    string        `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	CategoryID string        `bson:"category_id" json:"category_id"`
	AuthorID   string        `bson:"author_id" json:"author_id"`
	Published  bool          `bson:"published" json:"published"`
	Tags       []string      `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updated_at"`
}

// Filter narrows article listings.
type Filter struct {
	CategoryID string
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.CategoryID != "" {
		q["category_id"] = f.CategoryID
	}
	return q
}

// Repository persists articles in the document store.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection("articles")}
}

func (r *Repository) Create(ctx context.Context, a *Article) (string, error) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(bson.ObjectID)
	a.ID = id
	return id.Hex(), nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Article, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var a Article
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (*Article, error) {
	var a Article
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) List(ctx context.Context, filter Filter, skip, limit int) ([]Article, error) {
	cursor, err := r.col.Find(ctx, filter.query(),
		options.Find().
			SetSkip(int64(skip)).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	articles := []Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *Repository) Count(ctx context.Context, filter Filter) (int64, error) {
	return r.col.CountDocuments(ctx, filter.query())
}

// Search matches articles by title or content through the text index.
func (r *Repository) Search(ctx context.Context, term string, skip, limit int) ([]Article, error) {
	cursor, err := r.col.Find(ctx, bson.M{"$text": bson.M{"$search": term}},
		options.Find().SetSkip(int64(skip)).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}

	articles := []Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Update applies the given field set to an article.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	fields["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
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

// SetPublished flips the published flag.
func (r *Repository) SetPublished(ctx context.Context, id string, published bool) error {
	return r.Update(ctx, id, map[string]any{"published": published})
}
