// Package mongo provides a MongoDB-backed animal registry store.
package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/graziososalvare/rescuehub/internal/animal"
	"github.com/graziososalvare/rescuehub/internal/services/registry/storage"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// defaultCollection is the AAC outcomes collection name.
const defaultCollection = "animals"

// pingTimeout caps the connection check when opening the store.
const pingTimeout = 10 * time.Second

// Config defines the MongoDB connection inputs.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Database   string
	AuthSource string
	Collection string
}

// URI builds the connection string. The auth source falls back to the
// database name, matching how the AAC deployment authenticates.
func (c Config) URI() string {
	authSource := strings.TrimSpace(c.AuthSource)
	if authSource == "" {
		authSource = c.Database
	}
	var b strings.Builder
	b.WriteString("mongodb://")
	if strings.TrimSpace(c.Username) != "" {
		fmt.Fprintf(&b, "%s:%s@", c.Username, c.Password)
	}
	fmt.Fprintf(&b, "%s:%d/?authSource=%s", c.Host, c.Port, authSource)
	return b.String()
}

// Store persists animal records in a MongoDB collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Open connects to MongoDB, pings the primary, and returns a configured
// store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("mongo host is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("mongo port is required")
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return nil, fmt.Errorf("mongo database is required")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI()))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	collectionName := strings.TrimSpace(cfg.Collection)
	if collectionName == "" {
		collectionName = defaultCollection
	}
	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(collectionName),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Insert stores one record.
func (s *Store) Insert(ctx context.Context, record animal.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.collection == nil {
		return fmt.Errorf("storage is not configured")
	}
	if record.IsZero() {
		return storage.ErrEmptyDocument
	}
	if _, err := s.collection.InsertOne(ctx, record.Normalized()); err != nil {
		return fmt.Errorf("insert animal: %w", err)
	}
	return nil
}

// InsertMany stores a batch of records and returns the inserted count.
func (s *Store) InsertMany(ctx context.Context, records []animal.Record) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.collection == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if len(records) == 0 {
		return 0, nil
	}
	documents := make([]any, 0, len(records))
	for _, record := range records {
		if record.IsZero() {
			return 0, storage.ErrEmptyDocument
		}
		documents = append(documents, record.Normalized())
	}
	result, err := s.collection.InsertMany(ctx, documents)
	if err != nil {
		return 0, fmt.Errorf("insert animals: %w", err)
	}
	return int64(len(result.InsertedIDs)), nil
}

// Find returns the records matching the query, shaped by opts.
func (s *Store) Find(ctx context.Context, query storage.Query, opts storage.FindOptions) ([]animal.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.collection == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	findOpts := options.Find()
	if projection := Projection(opts.Fields); projection != nil {
		findOpts.SetProjection(projection)
	}
	if opts.SortBy != "" {
		direction := 1
		if opts.SortDesc {
			direction = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortBy, Value: direction}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := s.collection.Find(ctx, Filter(query), findOpts)
	if err != nil {
		return nil, fmt.Errorf("find animals: %w", err)
	}
	defer cursor.Close(ctx)

	var documents []bson.M
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decode animals: %w", err)
	}

	records := make([]animal.Record, 0, len(documents))
	for _, doc := range documents {
		records = append(records, animal.FromDocument(doc))
	}
	return records, nil
}

// UpdateMany applies the set document to every matching record.
func (s *Store) UpdateMany(ctx context.Context, query storage.Query, set map[string]any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.collection == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if query.IsZero() {
		return 0, storage.ErrEmptyQuery
	}
	if len(set) == 0 {
		return 0, storage.ErrEmptyUpdate
	}
	result, err := s.collection.UpdateMany(ctx, Filter(query), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return 0, fmt.Errorf("update animals: %w", err)
	}
	return result.ModifiedCount, nil
}

// DeleteMany removes every matching record.
func (s *Store) DeleteMany(ctx context.Context, query storage.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.collection == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if query.IsZero() {
		return 0, storage.ErrEmptyQuery
	}
	result, err := s.collection.DeleteMany(ctx, Filter(query))
	if err != nil {
		return 0, fmt.Errorf("delete animals: %w", err)
	}
	return result.DeletedCount, nil
}

// Filter translates a storage query into a MongoDB filter document.
func Filter(query storage.Query) bson.M {
	filter := bson.M{}
	for field, value := range query.Eq {
		filter[field] = value
	}
	for field, values := range query.In {
		filter[field] = bson.M{"$in": values}
	}
	for field, bounds := range query.Range {
		rangeDoc := bson.M{}
		if bounds.Min != nil {
			rangeDoc["$gte"] = *bounds.Min
		}
		if bounds.Max != nil {
			rangeDoc["$lte"] = *bounds.Max
		}
		if len(rangeDoc) > 0 {
			filter[field] = rangeDoc
		}
	}
	return filter
}

// Projection translates a field list into a MongoDB projection document.
// The _id is always fetched; record decoding strips it.
func Projection(fields []string) bson.M {
	if len(fields) == 0 {
		return nil
	}
	projection := bson.M{"_id": 1}
	for _, field := range fields {
		if strings.TrimSpace(field) == "" || field == "_id" {
			continue
		}
		projection[field] = 1
	}
	return projection
}
