package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/editfolio/editfolio-backend/pkg/logger"
	"github.com/editfolio/editfolio-backend/pkg/metrics"
)

// MongoStore is the MongoDB-backed document store. Documents keep their
// opaque id in _id; every other field is schemaless. Writes publish a change
// signal through the notifier, which drives realtime subscriptions.
type MongoStore struct {
	db       *mongo.Database
	notifier Notifier
}

func NewMongoStore(db *mongo.Database, notifier Notifier) *MongoStore {
	if notifier == nil {
		notifier = NewLocalNotifier()
	}
	return &MongoStore{db: db, notifier: notifier}
}

func (s *MongoStore) Upsert(ctx context.Context, collection, id string, fields Fields) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts)
	if err != nil {
		return "", err
	}
	metrics.StoreOps.WithLabelValues(collection, "upsert").Inc()
	s.notifier.Publish(collection)
	return id, nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	metrics.StoreOps.WithLabelValues(collection, "delete").Inc()
	s.notifier.Publish(collection)
	return nil
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]Document, error) {
	// creation order; documents written before createdAt stamping existed
	// sort first, which is acceptable
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, documentFromBSON(raw))
	}
	return out, cur.Err()
}

func (s *MongoStore) GetOnce(ctx context.Context, collection, id string) (Fields, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return documentFromBSON(raw).Fields, nil
}

func (s *MongoStore) Subscribe(collection string, fn SnapshotFunc) (func(), error) {
	deliver := func() {
		docs, err := s.List(context.Background(), collection)
		if err != nil {
			logger.Errorf("snapshot read failed for %s: %v", collection, err)
			return
		}
		metrics.SnapshotsDelivered.WithLabelValues(collection).Inc()
		fn(docs)
	}

	cancelSignal := s.notifier.Subscribe(collection, deliver)
	metrics.ActiveListeners.Inc()

	// initial snapshot, matching listener semantics of the memory store
	deliver()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			cancelSignal()
			metrics.ActiveListeners.Dec()
		})
	}
	return cancel, nil
}

func documentFromBSON(raw bson.M) Document {
	doc := Document{Fields: Fields{}}
	for k, v := range raw {
		if k == "_id" {
			if id, ok := v.(string); ok {
				doc.ID = id
			}
			continue
		}
		doc.Fields[k] = v
	}
	return doc
}
