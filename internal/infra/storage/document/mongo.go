package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDocument struct {
	Name      string    `bson:"_id"`
	Version   int64     `bson:"version"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore хранит документы в коллекции MongoDB, _id - имя документа.
// Put выполняет compare-and-swap фильтром по версии.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore создает хранилище поверх коллекции
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// ConnectMongo подключается к MongoDB и проверяет соединение
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: ConnectMongo - connect: %v", ErrRead, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ConnectMongo - ping: %v", ErrRead, err)
	}
	return client, nil
}

// Get читает документ
func (s *MongoStore) Get(ctx context.Context, name string) ([]byte, int64, error) {
	if err := validateName(name); err != nil {
		return nil, 0, err
	}

	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: Get - find %s: %v", ErrRead, name, err)
	}

	return []byte(doc.Payload), doc.Version, nil
}

// Put вставляет документ (expectedVersion == 0) или обновляет его при совпадении версии
func (s *MongoStore) Put(ctx context.Context, name string, payload []byte, expectedVersion int64) (int64, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}

	next := expectedVersion + 1
	now := time.Now().UTC()

	if expectedVersion == 0 {
		_, err := s.coll.InsertOne(ctx, mongoDocument{
			Name:      name,
			Version:   next,
			Payload:   string(payload),
			UpdatedAt: now,
		})
		if mongo.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("%w: Put - %s already exists", ErrVersionConflict, name)
		}
		if err != nil {
			return 0, fmt.Errorf("%w: Put - insert %s: %v", ErrWrite, name, err)
		}
		return next, nil
	}

	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": name, "version": expectedVersion},
		bson.M{"$set": bson.M{
			"version":    next,
			"payload":    string(payload),
			"updated_at": now,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("%w: Put - update %s: %v", ErrWrite, name, err)
	}
	if result.MatchedCount == 0 {
		return 0, fmt.Errorf("%w: Put - %s: expected version %d", ErrVersionConflict, name, expectedVersion)
	}

	return next, nil
}
