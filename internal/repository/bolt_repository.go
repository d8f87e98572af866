package repository

import (
	"Campus/internal/models"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"github.com/boltdb/bolt"
	"github.com/google/uuid"
)

// IDCodec maps identifiers to bolt keys and allocates new ones inside a
// write transaction.
type IDCodec[ID comparable] interface {
	Key(id ID) []byte
	Next(bucket *bolt.Bucket) (ID, error)
	// Reserve records a caller-supplied id so Next never hands it out.
	Reserve(bucket *bolt.Bucket, id ID) error
}

// UintCodec encodes ids as 8-byte big-endian keys so cursor order matches
// numeric order. New ids come from the bucket sequence.
type UintCodec struct{}

func (UintCodec) Key(id uint) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func (UintCodec) Next(bucket *bolt.Bucket) (uint, error) {
	seq, err := bucket.NextSequence()
	return uint(seq), err
}

func (UintCodec) Reserve(bucket *bolt.Bucket, id uint) error {
	if uint64(id) > bucket.Sequence() {
		return bucket.SetSequence(uint64(id))
	}
	return nil
}

type UUIDCodec struct{}

func (UUIDCodec) Key(id uuid.UUID) []byte {
	return id[:]
}

func (UUIDCodec) Next(*bolt.Bucket) (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (UUIDCodec) Reserve(*bolt.Bucket, uuid.UUID) error {
	return nil
}

// BoltRepository stores one entity type as JSON documents in its own bucket.
type BoltRepository[T any, ID comparable, PT models.Model[T, ID]] struct {
	db     *bolt.DB
	bucket []byte
	codec  IDCodec[ID]
	keys   []UniqueKey[T]
}

func NewBoltRepository[T any, ID comparable, PT models.Model[T, ID]](db *bolt.DB, bucket string, codec IDCodec[ID], keys ...UniqueKey[T]) (*BoltRepository[T, ID, PT], error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket %q: %w", bucket, err)
	}
	return &BoltRepository[T, ID, PT]{db: db, bucket: []byte(bucket), codec: codec, keys: keys}, nil
}

func (r *BoltRepository[T, ID, PT]) Create(_ context.Context, entity *T) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		id := PT(entity).GetID()
		if !isZero(id) && b.Get(r.codec.Key(id)) != nil {
			return ErrDuplicateID
		}
		if err := r.checkKeys(b, id, entity); err != nil {
			return err
		}
		if isZero(id) {
			next, err := r.codec.Next(b)
			if err != nil {
				return fmt.Errorf("failed to allocate id: %w", err)
			}
			id = next
		} else if err := r.codec.Reserve(b, id); err != nil {
			return err
		}
		PT(entity).SetID(id)
		stampCreate(entity)
		return r.put(b, id, entity)
	})
}

func (r *BoltRepository[T, ID, PT]) FindByID(_ context.Context, id ID) (*T, error) {
	var entity *T
	err := r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(r.bucket).Get(r.codec.Key(id))
		if data == nil {
			return nil
		}
		entity = new(T)
		return json.Unmarshal(data, entity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.bucket, err)
	}
	return entity, nil
}

func (r *BoltRepository[T, ID, PT]) FindAll(ctx context.Context) ([]T, error) {
	return r.Where(ctx, func(*T) bool { return true })
}

// Where scans the bucket in key order and returns the entities accepted by
// match.
func (r *BoltRepository[T, ID, PT]) Where(_ context.Context, match func(*T) bool) ([]T, error) {
	entities := make([]T, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).ForEach(func(_, v []byte) error {
			var entity T
			if err := json.Unmarshal(v, &entity); err != nil {
				return err
			}
			if match(&entity) {
				entities = append(entities, entity)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.bucket, err)
	}
	return entities, nil
}

func (r *BoltRepository[T, ID, PT]) Update(_ context.Context, entity *T) error {
	id := PT(entity).GetID()
	if isZero(id) {
		return ErrMissingID
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		data := b.Get(r.codec.Key(id))
		if data == nil {
			return ErrNotFound
		}
		var stored T
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		if err := r.checkKeys(b, id, entity); err != nil {
			return err
		}
		stampUpdate(entity, &stored)
		return r.put(b, id, entity)
	})
}

func (r *BoltRepository[T, ID, PT]) Delete(ctx context.Context, entity *T) error {
	id := PT(entity).GetID()
	if isZero(id) {
		return ErrMissingID
	}
	return r.DeleteByID(ctx, id)
}

func (r *BoltRepository[T, ID, PT]) DeleteByID(_ context.Context, id ID) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Delete(r.codec.Key(id))
	})
}

func (r *BoltRepository[T, ID, PT]) put(b *bolt.Bucket, id ID, entity *T) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", r.bucket, err)
	}
	return b.Put(r.codec.Key(id), data)
}

// checkKeys scans the bucket for another record holding one of entity's
// unique keys. It runs inside the write transaction.
func (r *BoltRepository[T, ID, PT]) checkKeys(b *bolt.Bucket, id ID, entity *T) error {
	if len(r.keys) == 0 {
		return nil
	}
	var own []byte
	if !isZero(id) {
		own = r.codec.Key(id)
	}
	return b.ForEach(func(k, v []byte) error {
		if own != nil && bytes.Equal(k, own) {
			return nil
		}
		var stored T
		if err := json.Unmarshal(v, &stored); err != nil {
			return err
		}
		if field, taken := conflicting(r.keys, entity, &stored); taken {
			return duplicateKey(field)
		}
		return nil
	})
}
