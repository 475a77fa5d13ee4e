package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fathima-sithara/asset-service/internal/models"
	"github.com/fathima-sithara/asset-service/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoStorage    = errors.New("object storage not configured")
	ErrNoImage      = errors.New("asset has no image")
)

// ObjectStore is the external collaborator holding image bytes.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Cache holds presigned URLs for their TTL. Optional.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
}

// AssetService owns the canonical asset collection. All operations are
// scoped to the authenticated owner supplied by the caller; records under
// another owner report not-found rather than forbidden.
type AssetService struct {
	assets     repository.AssetRepository
	infos      repository.InfoRepository
	store      ObjectStore
	cache      Cache
	activity   *Activity
	presignTTL time.Duration
	log        *zap.SugaredLogger
}

func NewAssetService(
	assets repository.AssetRepository,
	infos repository.InfoRepository,
	store ObjectStore,
	cache Cache,
	activity *Activity,
	presignTTL time.Duration,
	log *zap.SugaredLogger,
) *AssetService {
	return &AssetService{
		assets:     assets,
		infos:      infos,
		store:      store,
		cache:      cache,
		activity:   activity,
		presignTTL: presignTTL,
		log:        log,
	}
}

type CreateAssetInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

// AssetPatch is a partial update. Nil fields keep their prior values.
type AssetPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
}

type ListFilter struct {
	Category string
	Search   string
	Status   string
}

// List returns the owner's assets in creation-time ascending order. When
// Status is given, assets are classified against their info record: an asset
// with no info record counts as active.
func (s *AssetService) List(ctx context.Context, ownerID string, f ListFilter) ([]*models.Asset, error) {
	if f.Status != "" && !models.Status(f.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, f.Status)
	}
	assets, err := s.assets.List(ctx, ownerID, repository.AssetFilter{Category: f.Category, Search: f.Search})
	if err != nil {
		return nil, err
	}
	if f.Status == "" {
		return assets, nil
	}
	statusByAsset, err := s.statusIndex(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := []*models.Asset{}
	for _, a := range assets {
		st, ok := statusByAsset[a.ID]
		if !ok {
			st = models.StatusActive
		}
		if st == models.Status(f.Status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *AssetService) statusIndex(ctx context.Context, ownerID string) (map[string]models.Status, error) {
	infos, err := s.infos.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]models.Status, len(infos))
	for _, in := range infos {
		// first record wins when duplicates exist for an asset
		if _, ok := idx[in.AssetID]; !ok {
			idx[in.AssetID] = in.Status
		}
	}
	return idx, nil
}

func (s *AssetService) Get(ctx context.Context, ownerID, id string) (*models.Asset, error) {
	a, err := s.assets.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, a.ID, models.ActionViewed, ownerID, "")
	return a, nil
}

func (s *AssetService) Create(ctx context.Context, ownerID string, in CreateAssetInput) (*models.Asset, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrInvalidInput)
	}
	now := time.Now().UTC()
	a := &models.Asset{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Category:    category,
		ImageURL:    in.ImageURL,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.assets.Insert(ctx, a); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, a.ID, models.ActionCreated, ownerID, "asset created")
	return a, nil
}

func (s *AssetService) Update(ctx context.Context, ownerID, id string, patch AssetPatch) (*models.Asset, error) {
	a, err := s.assets.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		a.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Category != nil {
		if strings.TrimSpace(*patch.Category) == "" {
			return nil, fmt.Errorf("%w: category must not be empty", ErrInvalidInput)
		}
		a.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.ImageURL != nil {
		a.ImageURL = *patch.ImageURL
	}
	a.UpdatedAt = time.Now().UTC()
	if err := s.assets.Update(ctx, a); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, a.ID, models.ActionUpdated, ownerID, "asset updated")
	return a, nil
}

func (s *AssetService) Delete(ctx context.Context, ownerID, id string) error {
	a, err := s.assets.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	if a.ImageURL != "" && s.store != nil {
		// best effort; an orphaned object is acceptable
		if err := s.store.Delete(ctx, a.ImageURL); err != nil {
			s.log.Warnw("image object delete failed", "key", a.ImageURL, "error", err)
		}
		if err := s.store.Delete(ctx, thumbKey(a.ImageURL)); err != nil {
			s.log.Warnw("thumbnail object delete failed", "key", thumbKey(a.ImageURL), "error", err)
		}
	}
	s.activity.Record(ctx, id, models.ActionDeleted, ownerID, "asset deleted")
	return nil
}

// AttachImage uploads image bytes under a key scoped by the asset id and
// stores that key on the record. Image payloads also get a thumbnail.
func (s *AssetService) AttachImage(ctx context.Context, ownerID, assetID, filename, contentType string, data []byte) (*models.Asset, error) {
	a, err := s.assets.GetByID(ctx, ownerID, assetID)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrNoStorage
	}
	key := fmt.Sprintf("assets/%s/%s", assetID, filename)
	if err := s.store.Upload(ctx, key, contentType, data); err != nil {
		return nil, err
	}
	if strings.HasPrefix(contentType, "image/") {
		if thumb, err := generateThumbnail(data); err == nil {
			if err := s.store.Upload(ctx, thumbKey(key), "image/jpeg", thumb); err != nil {
				s.log.Warnw("thumbnail upload failed", "key", thumbKey(key), "error", err)
			}
		}
	}
	a.ImageURL = key
	a.UpdatedAt = time.Now().UTC()
	if err := s.assets.Update(ctx, a); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, a.ID, models.ActionUpdated, ownerID, "image uploaded")
	return a, nil
}

// ImageURL exchanges the stored object key for a short-lived presigned URL.
func (s *AssetService) ImageURL(ctx context.Context, ownerID, assetID string) (string, error) {
	a, err := s.assets.GetByID(ctx, ownerID, assetID)
	if err != nil {
		return "", err
	}
	if a.ImageURL == "" {
		return "", ErrNoImage
	}
	if s.store == nil {
		return "", ErrNoStorage
	}
	if s.cache != nil {
		if url, err := s.cache.Get(ctx, a.ImageURL); err == nil && url != "" {
			return url, nil
		}
	}
	url, err := s.store.PresignURL(ctx, a.ImageURL, s.presignTTL)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, a.ImageURL, url, s.presignTTL); err != nil {
			s.log.Warnw("signed url cache write failed", "key", a.ImageURL, "error", err)
		}
	}
	return url, nil
}

func thumbKey(key string) string {
	return key + "_thumb.jpg"
}

func generateThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
