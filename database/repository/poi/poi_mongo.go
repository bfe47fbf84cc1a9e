package poiRepo

import (
	"context"
	"fmt"
	"time"

	"placewise/config"
	"placewise/database"
	"placewise/models"
	"placewise/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPOIRepo implements POIRepository using MongoDB.
type MongoPOIRepo struct {
	coll *mongo.Collection
}

// NewMongoPOIRepo creates a POIRepository bound to the configured collection.
func NewMongoPOIRepo() POIRepository {
	coll := database.Database().Collection(config.AppConfig.POICollection)
	repo := &MongoPOIRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		// Index creation is best effort; queries still work without them.
		utils.GetLogger().Sugar().Warnf("poi repo: ensure indexes: %v", err)
	}
	return repo
}

func (r *MongoPOIRepo) GetByID(ctx context.Context, id string) (*models.POICandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var poi models.POICandidate
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&poi); err != nil {
		return nil, fmt.Errorf("failed to fetch poi %s: %w", id, err)
	}
	return &poi, nil
}

func (r *MongoPOIRepo) GetByIDs(ctx context.Context, ids []string) ([]models.POICandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pois by ids: %w", err)
	}
	defer cursor.Close(ctx)
	return decodeCandidates(ctx, cursor)
}

func (r *MongoPOIRepo) FetchCandidates(ctx context.Context, collection string, limit int) ([]models.POICandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{}
	if collection != "" {
		filter["collection"] = collection
	}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poi candidates: %w", err)
	}
	defer cursor.Close(ctx)
	return decodeCandidates(ctx, cursor)
}

func (r *MongoPOIRepo) TextSearch(ctx context.Context, collection, query string, limit int) ([]models.POICandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{"$text": bson.M{"$search": query}}
	if collection != "" {
		filter["collection"] = collection
	}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("text search failed: %w", err)
	}
	defer cursor.Close(ctx)
	return decodeCandidates(ctx, cursor)
}

func (r *MongoPOIRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.coll.Database().Client().Ping(ctx, nil)
}

func decodeCandidates(ctx context.Context, cursor *mongo.Cursor) ([]models.POICandidate, error) {
	var pois []models.POICandidate
	for cursor.Next(ctx) {
		var p models.POICandidate
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode poi: %w", err)
		}
		pois = append(pois, p)
	}
	return pois, cursor.Err()
}
