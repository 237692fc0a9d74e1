// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/danielhkuo/quickly-meet/models"
)

const (
	DefaultMongoDatabase = "quickly_meet"
	pollCollection       = "polls"
)

// pollDocument is one poll with its votes embedded, so deleting the
// document removes the votes in the same write.
type pollDocument struct {
	ID          string         `bson:"_id"`
	Title       string         `bson:"title"`
	Description string         `bson:"description"`
	Dates       []string       `bson:"dates"`
	Votes       []voteDocument `bson:"votes"`
	CreatedAt   time.Time      `bson:"createdAt"`
}

type voteDocument struct {
	Voter         string   `bson:"voter"`
	SelectedDates []string `bson:"selectedDates"`
}

// MongoStore keeps polls in a MongoDB collection
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// OpenMongo connects, pings the primary and ensures the createdAt index
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}

	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connection failed: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	s := NewMongoStore(client, client.Database(database))
	_, err = s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return s, nil
}

func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{client: client, collection: db.Collection(pollCollection)}
}

func (s *MongoStore) CreatePoll(ctx context.Context, title, description string, dates []string) (string, error) {
	if err := validatePoll(title, dates); err != nil {
		return "", err
	}

	doc := pollDocument{
		Title:       title,
		Description: description,
		Dates:       append([]string{}, dates...),
		Votes:       []voteDocument{},
		CreatedAt:   now().Truncate(time.Millisecond),
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := newPollID()
		if err != nil {
			return "", err
		}
		doc.ID = id

		_, err = s.collection.InsertOne(ctx, doc)
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return "", storeError("create poll", err)
		}
		return id, nil
	}

	return "", storeError("create poll", errors.New("could not allocate a unique poll id"))
}

func (s *MongoStore) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	var doc pollDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, storeError("get poll", err)
	}
	return mapPollDocument(doc), nil
}

func (s *MongoStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("list polls", err)
	}
	defer cursor.Close(ctx)

	polls := make([]models.Poll, 0)
	for cursor.Next(ctx) {
		var doc pollDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeError("decode poll", err)
		}
		polls = append(polls, mapPollDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, storeError("list polls", err)
	}
	return polls, nil
}

func (s *MongoStore) DeletePoll(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete poll", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) AppendVote(ctx context.Context, id, voter string, selectedDates []string) error {
	if err := validateVote(voter, selectedDates); err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{
			"votes": voteDocument{
				Voter:         voter,
				SelectedDates: append([]string{}, selectedDates...),
			},
		},
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return storeError("append vote", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func mapPollDocument(doc pollDocument) models.Poll {
	votes := make([]models.Vote, 0, len(doc.Votes))
	for _, v := range doc.Votes {
		votes = append(votes, models.Vote{
			Voter:         v.Voter,
			SelectedDates: nonNil(v.SelectedDates),
		})
	}

	return models.Poll{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		Dates:       nonNil(doc.Dates),
		CreatedAt:   doc.CreatedAt.UTC(),
		Votes:       votes,
	}
}
