package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/writingpad/writingpad/internal/writing"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Documents are
// keyed by ObjectID _id, which Mongo indexes already.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, title, contents string) (*writing.Writing, error) {
	w := &writing.Writing{
		ID:       primitive.NewObjectID(),
		Title:    title,
		Contents: contents,
		Date:     writing.Now(),
	}
	if _, err := m.col.InsertOne(ctx, w); err != nil {
		return nil, fmt.Errorf("insert writing: %w", err)
	}
	return w, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*writing.Writing, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var w writing.Writing
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find writing %s: %w", id, err)
	}
	return &w, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*writing.Writing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list writings: %w", err)
	}
	defer cur.Close(ctx)
	out := []*writing.Writing{}
	for cur.Next(ctx) {
		var w writing.Writing
		if err := cur.Decode(&w); err != nil {
			return nil, fmt.Errorf("decode writing: %w", err)
		}
		out = append(out, &w)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list writings: %w", err)
	}
	return out, nil
}

// Update sets title and contents only; date and _id are left untouched.
func (m *MongoRepo) Update(ctx context.Context, id, title, contents string) (*writing.Writing, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{"$set": bson.M{"title": title, "contents": contents}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var w writing.Writing
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, set, opts).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update writing %s: %w", id, err)
	}
	return &w, nil
}

// Delete removes the writing if present. A zero DeletedCount is not an error.
func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return nil
	}
	if _, err := m.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete writing %s: %w", id, err)
	}
	return nil
}
