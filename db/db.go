package db

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client             *mongo.Client
	BookingsCollection *mongo.Collection
	ContentCollection  *mongo.Collection
	VersionsCollection *mongo.Collection
)

// ErrNotConfigured is returned by Ensure when MONGODB_URI was absent or the
// initial connection failed. Handlers surface it as a blocking
// "not configured" message instead of crashing the write path.
var ErrNotConfigured = errors.New("database not configured")

// Init connects to MongoDB and wires the collection handles. A missing
// MONGODB_URI is not fatal: the service still serves the catalog and the
// chat fallback, and every write reports ErrNotConfigured.
func Init() error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Println("MONGODB_URI not set; running with persistence disabled")
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Printf("Failed to connect to MongoDB: %v", err)
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Printf("MongoDB ping failed: %v", err)
		return err
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "velourdb"
	}

	Client = client
	BookingsCollection = Client.Database(dbName).Collection("bookings")
	ContentCollection = Client.Database(dbName).Collection("sitecontent")
	VersionsCollection = Client.Database(dbName).Collection("contentversions")
	return nil
}

// Ensure reports whether the store is usable.
func Ensure() error {
	if Client == nil {
		return ErrNotConfigured
	}
	return nil
}

// Close disconnects the client on shutdown.
func Close(ctx context.Context) {
	if Client != nil {
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}
}
