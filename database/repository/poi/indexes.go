package poiRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ensureIndexes creates indexes for frequently used query paths.
func (r *MongoPOIRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collectionIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "collection", Value: 1}},
	}
	geoIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	}
	textIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "qaContent", Value: "text"},
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{collectionIdx, geoIdx, textIdx})
	return err
}
