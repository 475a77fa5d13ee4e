package repository

import (
	"context"
	"errors"

	"github.com/fathima-sithara/asset-service/internal/models"
)

var ErrNotFound = errors.New("not found")

// AssetFilter narrows List results. Category is an exact match, Search a
// case-insensitive substring match against name or description. Both
// compose with AND.
type AssetFilter struct {
	Category string
	Search   string
}

// AssetRepository is the persistence port for the asset directory. Every
// read and write is scoped to an owner; a record under a different owner is
// indistinguishable from a missing one.
type AssetRepository interface {
	Insert(ctx context.Context, a *models.Asset) error
	List(ctx context.Context, ownerID string, f AssetFilter) ([]*models.Asset, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Asset, error)
	Update(ctx context.Context, a *models.Asset) error
	Delete(ctx context.Context, ownerID, id string) error
}

// InfoRepository is the persistence port for asset metadata records.
type InfoRepository interface {
	Insert(ctx context.Context, i *models.AssetInfo) error
	GetByID(ctx context.Context, ownerID, id string) (*models.AssetInfo, error)
	FirstByAssetID(ctx context.Context, ownerID, assetID string) (*models.AssetInfo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.AssetInfo, error)
	Update(ctx context.Context, i *models.AssetInfo) error
}

// LogRepository is the persistence port for the append-only activity log.
type LogRepository interface {
	Insert(ctx context.Context, l *models.AssetLog) error
	ListByAssetID(ctx context.Context, ownerID, assetID string) ([]*models.AssetLog, error)
}
