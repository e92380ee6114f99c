package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"velour/db"
	"velour/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetContent reads the singleton document, falling back to the defaults when
// nothing has been saved yet.
func GetContent(ctx context.Context) (models.SiteContent, error) {
	if err := db.Ensure(); err != nil {
		return DefaultContent(), nil
	}
	var doc models.SiteContent
	err := db.ContentCollection.FindOne(ctx, bson.M{}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return DefaultContent(), nil
	}
	if err != nil {
		return models.SiteContent{}, err
	}
	return doc, nil
}

// SaveContent overwrites the singleton and appends a "save" version in one
// atomic step. Partial application is a correctness violation, so both writes
// go through dualWrite.
func SaveContent(ctx context.Context, draft models.SiteContent) (*models.SiteContentVersion, error) {
	if err := db.Ensure(); err != nil {
		return nil, err
	}
	ver := NewVersion(draft, models.VersionActionSave, "")
	if err := dualWrite(ctx, draft, ver); err != nil {
		return nil, err
	}
	return &ver, nil
}

// RestoreContent overwrites the singleton with a historical snapshot and
// appends a "restore" version referencing the source. The source version is
// never mutated or deleted.
func RestoreContent(ctx context.Context, versionID string) (*models.SiteContentVersion, error) {
	if err := db.Ensure(); err != nil {
		return nil, err
	}

	var source models.SiteContentVersion
	if err := db.VersionsCollection.FindOne(ctx, bson.M{"id": versionID}).Decode(&source); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("version %s not found", versionID)
		}
		return nil, err
	}

	ver := NewVersion(source.Content, models.VersionActionRestore, source.ID)
	if err := dualWrite(ctx, source.Content, ver); err != nil {
		return nil, err
	}
	return &ver, nil
}

// ListVersions returns snapshots newest first, capped for display.
func ListVersions(ctx context.Context) ([]models.SiteContentVersion, error) {
	if err := db.Ensure(); err != nil {
		return nil, err
	}
	cur, err := db.VersionsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(VersionDisplayLimit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	versions := []models.SiteContentVersion{}
	if err := cur.All(ctx, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// dualWrite applies content overwrite + version append atomically. It tries
// a multi-document transaction first; standalone mongod deployments reject
// those, so it falls back to version-first writes with a compensating delete
// when the content write fails.
func dualWrite(ctx context.Context, doc models.SiteContent, ver models.SiteContentVersion) error {
	replaceOpts := options.Replace().SetUpsert(true)

	sess, err := db.Client.StartSession()
	if err == nil {
		defer sess.EndSession(ctx)
		_, txErr := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			if _, err := db.ContentCollection.ReplaceOne(sc, bson.M{}, doc, replaceOpts); err != nil {
				return nil, err
			}
			if _, err := db.VersionsCollection.InsertOne(sc, ver); err != nil {
				return nil, err
			}
			return nil, nil
		})
		if txErr == nil {
			return nil
		}
		if !transactionsUnsupported(txErr) {
			return txErr
		}
		log.Printf("content: transactions unsupported, using compensating write: %v", txErr)
	}

	if _, err := db.VersionsCollection.InsertOne(ctx, ver); err != nil {
		return err
	}
	if _, err := db.ContentCollection.ReplaceOne(ctx, bson.M{}, doc, replaceOpts); err != nil {
		// Undo the version append so history never records a write that
		// did not land.
		if _, delErr := db.VersionsCollection.DeleteOne(ctx, bson.M{"id": ver.ID}); delErr != nil {
			log.Printf("content: compensating delete of version %s failed: %v", ver.ID, delErr)
		}
		return err
	}
	return nil
}

func transactionsUnsupported(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers") ||
		strings.Contains(msg, "IllegalOperation")
}

// Snapshot feeds the live content subscription.
func Snapshot(ctx context.Context) ([]byte, error) {
	doc, err := GetContent(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{"topic": "content", "content": doc})
}

// VersionsSnapshot feeds the live version-history subscription.
func VersionsSnapshot(ctx context.Context) ([]byte, error) {
	versions, err := ListVersions(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{"topic": "versions", "versions": versions})
}
