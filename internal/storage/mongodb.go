package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dixra/hpp_smart_pricing/configs"
	"github.com/dixra/hpp_smart_pricing/internal/pricing"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contextOptionsCollection = "context_options"

var mongoClient *mongo.Client
var mongoDB *mongo.Database

// InitMongoDB initializes MongoDB connection
func InitMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(configs.MONGO_URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	mongoClient = client
	mongoDB = client.Database(configs.MONGO_DB_NAME)

	log.Println("✅ Connected to MongoDB successfully!")
	return nil
}

// GetMongoDB returns the MongoDB database instance, nil when not connected
func GetMongoDB() *mongo.Database {
	return mongoDB
}

// CloseMongoDB closes MongoDB connection
func CloseMongoDB() {
	if mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
		log.Println("MongoDB connection closed")
	}
}

// ContextOptionDocument is one suggestion list in the context_options collection,
// e.g. {kind: "seasons", values: ["Low Season", ...]}
type ContextOptionDocument struct {
	Kind   string   `bson:"kind" json:"kind"`
	Values []string `bson:"values" json:"values"`
}

// MongoOptionsSource reads market-context suggestion lists from MongoDB
type MongoOptionsSource struct {
	db *mongo.Database
}

// NewMongoOptionsSource creates a source backed by db
func NewMongoOptionsSource(db *mongo.Database) *MongoOptionsSource {
	return &MongoOptionsSource{db: db}
}

// LoadContextOptions reads every list document. Kinds that are absent are left empty.
func (s *MongoOptionsSource) LoadContextOptions(ctx context.Context) (pricing.ContextOptions, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := s.db.Collection(contextOptionsCollection).Find(ctx, bson.M{})
	if err != nil {
		return pricing.ContextOptions{}, fmt.Errorf("failed to query %s: %w", contextOptionsCollection, err)
	}
	defer cursor.Close(ctx)

	var docs []ContextOptionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return pricing.ContextOptions{}, fmt.Errorf("failed to decode %s: %w", contextOptionsCollection, err)
	}

	return optionsFromDocuments(docs), nil
}

func optionsFromDocuments(docs []ContextOptionDocument) pricing.ContextOptions {
	var opts pricing.ContextOptions
	for _, doc := range docs {
		switch doc.Kind {
		case "business_types":
			opts.BusinessTypes = doc.Values
		case "audience_types":
			opts.AudienceTypes = doc.Values
		case "seasons":
			opts.Seasons = doc.Values
		case "qualities":
			opts.Qualities = doc.Values
		default:
			log.Printf("⚠️  Unknown context option kind: %s", doc.Kind)
		}
	}
	return opts
}
