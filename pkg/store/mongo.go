// Package store persists parsed interaction networks as named documents.
//
// The server loads graphs by name from the store so viewers can open a
// network without shipping the raw source text. Only the parsed source graph
// is stored; settled layouts are not persisted, since they are cheap to
// recompute and deterministic for a given graph and thresholds.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/errors"
)

// GraphDocument is the stored form of a named network.
type GraphDocument struct {
	Name      string        `bson:"name" json:"name"`
	Graph     *bionet.Graph `bson:"graph" json:"graph"`
	NodeCount int           `bson:"node_count" json:"node_count"`
	EdgeCount int           `bson:"edge_count" json:"edge_count"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// GraphStore is the interface for named-graph persistence.
type GraphStore interface {
	// Save upserts a graph under a name.
	Save(ctx context.Context, name string, g *bionet.Graph) error

	// Load retrieves a graph by name.
	Load(ctx context.Context, name string) (*bionet.Graph, error)

	// List returns stored document summaries (graphs omitted).
	List(ctx context.Context) ([]GraphDocument, error)

	// Delete removes a named graph.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MongoStore persists graph documents in a MongoDB collection keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string `toml:"uri"`        // e.g. mongodb://localhost:27017
	Database   string `toml:"database"`   // defaults to "bionet"
	Collection string `toml:"collection"` // defaults to "graphs"
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "bionet"
	}
	if cfg.Collection == "" {
		cfg.Collection = "graphs"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb %s: %w", cfg.URI, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts a graph document under the given name.
func (s *MongoStore) Save(ctx context.Context, name string, g *bionet.Graph) error {
	doc := GraphDocument{
		Name:      name,
		Graph:     g,
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		UpdatedAt: time.Now(),
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": name},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save graph %q: %w", name, err)
	}
	return nil
}

// Load retrieves a graph by name.
func (s *MongoStore) Load(ctx context.Context, name string) (*bionet.Graph, error) {
	var doc GraphDocument
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load graph %q: %w", name, err)
	}
	return doc.Graph, nil
}

// List returns summaries of all stored graphs, most recently updated first.
func (s *MongoStore) List(ctx context.Context) ([]GraphDocument, error) {
	opts := options.Find().
		SetProjection(bson.M{"graph": 0}).
		SetSort(bson.M{"updated_at": -1})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []GraphDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode graph list: %w", err)
	}
	return docs, nil
}

// Delete removes a named graph.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete graph %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "graph %q not found", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements GraphStore.
var _ GraphStore = (*MongoStore)(nil)
