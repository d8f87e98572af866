package repository

import (
	"Campus/internal/models"
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"strings"
)

const countersCollection = "counters"

// MongoRepository stores one entity type per collection with the entity ID
// as the document _id.
type MongoRepository[T any, ID comparable, PT models.Model[T, ID]] struct {
	coll *mongo.Collection
	ids  IDAllocator[ID]
	keys []UniqueKey[T]
}

func NewMongoRepository[T any, ID comparable, PT models.Model[T, ID]](db *mongo.Database, collection string, ids IDAllocator[ID], keys ...UniqueKey[T]) *MongoRepository[T, ID, PT] {
	return &MongoRepository[T, ID, PT]{
		coll: db.Collection(collection),
		ids:  ids,
		keys: keys,
	}
}

// EnsureIndexes creates a unique index for every unique key, ignoring empty
// values.
func (r *MongoRepository[T, ID, PT]) EnsureIndexes(ctx context.Context) error {
	if len(r.keys) == 0 {
		return nil
	}
	indexes := make([]mongo.IndexModel, 0, len(r.keys))
	for _, key := range r.keys {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: key.Field, Value: 1}},
			Options: options.Index().
				SetName("uniq_" + key.Field).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{key.Field: bson.M{"$gt": ""}}),
		})
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("can't create indexes on %s: %w", r.coll.Name(), err)
	}
	return nil
}

// MongoCounter allocates uint ids from a per-collection counter document.
type MongoCounter struct {
	counters *mongo.Collection
	name     string
}

func MongoSequence(db *mongo.Database, name string) *MongoCounter {
	return &MongoCounter{counters: db.Collection(countersCollection), name: name}
}

func (c *MongoCounter) Next(ctx context.Context) (uint, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := c.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": c.name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("can't increment %s sequence: %w", c.name, err)
	}
	return uint(counter.Seq), nil
}

// Reserve raises the counter to id so Next never returns it.
func (c *MongoCounter) Reserve(ctx context.Context, id uint) error {
	_, err := c.counters.UpdateOne(
		ctx,
		bson.M{"_id": c.name},
		bson.M{"$max": bson.M{"seq": int64(id)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("can't raise %s sequence: %w", c.name, err)
	}
	return nil
}

func (r *MongoRepository[T, ID, PT]) Create(ctx context.Context, entity *T) error {
	id := PT(entity).GetID()
	supplied := !isZero(id)
	if !supplied {
		next, err := r.ids.Next(ctx)
		if err != nil {
			return err
		}
		PT(entity).SetID(next)
	}
	stampCreate(entity)
	_, err := r.coll.InsertOne(ctx, entity)
	if mongo.IsDuplicateKeyError(err) {
		if !supplied {
			PT(entity).SetID(id)
		}
		return r.duplicate(err)
	}
	if err != nil {
		return fmt.Errorf("can't insert into %s: %w", r.coll.Name(), err)
	}
	if supplied {
		return r.ids.Reserve(ctx, id)
	}
	return nil
}

// duplicate tells an _id clash apart from a unique key clash.
func (r *MongoRepository[T, ID, PT]) duplicate(err error) error {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, writeErr := range we.WriteErrors {
			if strings.Contains(writeErr.Message, "index: _id_ ") {
				return ErrDuplicateID
			}
			for _, key := range r.keys {
				if strings.Contains(writeErr.Message, "uniq_"+key.Field) {
					return duplicateKey(key.Field)
				}
			}
		}
	}
	return ErrDuplicateKey
}

func (r *MongoRepository[T, ID, PT]) FindByID(ctx context.Context, id ID) (*T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

// FindOne returns the first document matching filter, or nil when there is
// none.
func (r *MongoRepository[T, ID, PT]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var entity T
	err := r.coll.FindOne(ctx, filter).Decode(&entity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("can't find in %s: %w", r.coll.Name(), err)
	}
	return &entity, nil
}

func (r *MongoRepository[T, ID, PT]) FindAll(ctx context.Context) ([]T, error) {
	return r.FindMany(ctx, bson.M{})
}

func (r *MongoRepository[T, ID, PT]) FindMany(ctx context.Context, filter bson.M) ([]T, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("can't list %s: %w", r.coll.Name(), err)
	}
	entities := make([]T, 0)
	if err = cur.All(ctx, &entities); err != nil {
		return nil, fmt.Errorf("can't decode %s: %w", r.coll.Name(), err)
	}
	return entities, nil
}

// Update replaces every field but _id and created_at.
func (r *MongoRepository[T, ID, PT]) Update(ctx context.Context, entity *T) error {
	id := PT(entity).GetID()
	if isZero(id) {
		return ErrMissingID
	}
	stampCreate(entity)
	raw, err := bson.Marshal(entity)
	if err != nil {
		return fmt.Errorf("can't encode %s: %w", r.coll.Name(), err)
	}
	var fields bson.M
	if err = bson.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("can't encode %s: %w", r.coll.Name(), err)
	}
	delete(fields, "_id")
	delete(fields, "created_at")

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if mongo.IsDuplicateKeyError(err) {
		return r.duplicate(err)
	}
	if err != nil {
		return fmt.Errorf("can't update %s: %w", r.coll.Name(), err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T, ID, PT]) Delete(ctx context.Context, entity *T) error {
	id := PT(entity).GetID()
	if isZero(id) {
		return ErrMissingID
	}
	return r.DeleteByID(ctx, id)
}

func (r *MongoRepository[T, ID, PT]) DeleteByID(ctx context.Context, id ID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("can't delete from %s: %w", r.coll.Name(), err)
	}
	return nil
}
