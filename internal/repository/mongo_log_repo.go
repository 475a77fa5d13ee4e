package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/asset-service/internal/models"
)

type mongoLogRepo struct {
	coll *mongo.Collection
}

func NewMongoLogRepository(coll *mongo.Collection) LogRepository {
	ix := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "asset_id", Value: 1}, {Key: "timestamp", Value: 1}},
		Options: options.Index().SetName("owner_asset_ts_idx"),
	}
	_, _ = coll.Indexes().CreateOne(context.Background(), ix)
	return &mongoLogRepo{coll: coll}
}

func (r *mongoLogRepo) Insert(ctx context.Context, l *models.AssetLog) error {
	_, err := r.coll.InsertOne(ctx, l)
	return err
}

func (r *mongoLogRepo) ListByAssetID(ctx context.Context, ownerID, assetID string) ([]*models.AssetLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"asset_id": assetID, "owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.AssetLog{}
	for cur.Next(ctx) {
		var l models.AssetLog
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, cur.Err()
}
