package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/asset-service/internal/models"
)

type mongoAssetRepo struct {
	coll *mongo.Collection
}

func NewMongoAssetRepository(coll *mongo.Collection) AssetRepository {
	ix := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("owner_created_idx")},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "category", Value: 1}},
			Options: options.Index().SetName("owner_category_idx")},
	}
	_, _ = coll.Indexes().CreateMany(context.Background(), ix)
	return &mongoAssetRepo{coll: coll}
}

func (r *mongoAssetRepo) Insert(ctx context.Context, a *models.Asset) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *mongoAssetRepo) List(ctx context.Context, ownerID string, f AssetFilter) ([]*models.Asset, error) {
	filter := bson.M{"owner_id": ownerID}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}
	// Creation-time ascending, oldest first. Stable within a deployment.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Asset{}
	for cur.Next(ctx) {
		var a models.Asset
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}

func (r *mongoAssetRepo) GetByID(ctx context.Context, ownerID, id string) (*models.Asset, error) {
	var a models.Asset
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *mongoAssetRepo) Update(ctx context.Context, a *models.Asset) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID, "owner_id": a.OwnerID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoAssetRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
