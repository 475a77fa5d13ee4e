package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/asset-service/internal/models"
)

type mongoInfoRepo struct {
	coll *mongo.Collection
}

func NewMongoInfoRepository(coll *mongo.Collection) InfoRepository {
	ix := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "asset_id", Value: 1}},
		Options: options.Index().SetName("owner_asset_idx"),
	}
	_, _ = coll.Indexes().CreateOne(context.Background(), ix)
	return &mongoInfoRepo{coll: coll}
}

func (r *mongoInfoRepo) Insert(ctx context.Context, i *models.AssetInfo) error {
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, i)
	return err
}

func (r *mongoInfoRepo) GetByID(ctx context.Context, ownerID, id string) (*models.AssetInfo, error) {
	var i models.AssetInfo
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&i)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// FirstByAssetID returns the oldest matching record. Duplicates per asset are
// not prevented, so readers take the first by creation time.
func (r *mongoInfoRepo) FirstByAssetID(ctx context.Context, ownerID, assetID string) (*models.AssetInfo, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	var i models.AssetInfo
	err := r.coll.FindOne(ctx, bson.M{"asset_id": assetID, "owner_id": ownerID}, opts).Decode(&i)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *mongoInfoRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.AssetInfo, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.AssetInfo{}
	for cur.Next(ctx) {
		var i models.AssetInfo
		if err := cur.Decode(&i); err != nil {
			return nil, err
		}
		out = append(out, &i)
	}
	return out, cur.Err()
}

func (r *mongoInfoRepo) Update(ctx context.Context, i *models.AssetInfo) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": i.ID, "owner_id": i.OwnerID}, i)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
