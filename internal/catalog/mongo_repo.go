package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// bookDoc is the stored shape of a record. The collection keeps the legacy
// field names; _id is the store-generated identifier.
type bookDoc struct {
	ID      bson.ObjectID `bson:"_id,omitempty"`
	Name    string        `bson:"BookName"`
	Author  string        `bson:"BookAuthor"`
	Edition string        `bson:"BookEdition"`
	Pages   string        `bson:"BookPages"`
	Year    string        `bson:"BookYear"`
}

func (d bookDoc) book() Book {
	return Book{
		ID:      d.ID.Hex(),
		Title:   d.Name,
		Author:  d.Author,
		Edition: d.Edition,
		Pages:   d.Pages,
		Year:    d.Year,
	}
}

// MongoRepo stores books in a MongoDB collection. The driver owns the
// connection pool; the repo holds no other state.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo creates a repository over the given collection.
func NewMongoRepo(coll *mongo.Collection) *MongoRepo {
	return &MongoRepo{coll: coll}
}

// parseID converts an incoming identifier into its native ObjectID form.
// Malformed input is a validation error, not a store error.
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: malformed book id %q", ErrInvalid, id)
	}
	return oid, nil
}

func (r *MongoRepo) All(ctx context.Context) ([]Book, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	var docs []bookDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	out := make([]Book, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.book())
	}
	return out, nil
}

func (r *MongoRepo) Distinct(ctx context.Context, field string) ([]string, error) {
	var vals []string
	if err := r.coll.Distinct(ctx, field, bson.D{}).Decode(&vals); err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	return vals, nil
}

func (r *MongoRepo) Exists(ctx context.Context, match map[string]string) (bool, error) {
	filter := make(bson.M, len(match))
	for k, v := range match {
		filter[k] = v
	}
	err := r.coll.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return true, nil
}

func (r *MongoRepo) Insert(ctx context.Context, b Book) (string, error) {
	doc := bookDoc{
		Name:    b.Title,
		Author:  b.Author,
		Edition: b.Edition,
		Pages:   b.Pages,
		Year:    b.Year,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert book: %w", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert book: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *MongoRepo) Update(ctx context.Context, id string, set map[string]string) (UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	fields := make(bson.M, len(set))
	for k, v := range set {
		fields[k] = v
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update book %s: %w", id, err)
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete book %s: %w", id, err)
	}
	return res.DeletedCount, nil
}
