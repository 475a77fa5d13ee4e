package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/fathima-sithara/asset-service/internal/models"
)

// In-memory implementations of the persistence ports, used by tests and
// local development. Insertion order is the creation order, which keeps List
// and log ordering stable without a real index.

type MemoryAssetRepo struct {
	mu     sync.RWMutex
	assets []*models.Asset
}

func NewMemoryAssetRepository() *MemoryAssetRepo {
	return &MemoryAssetRepo{}
}

func (r *MemoryAssetRepo) Insert(_ context.Context, a *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.assets = append(r.assets, &cp)
	return nil
}

func (r *MemoryAssetRepo) List(_ context.Context, ownerID string, f AssetFilter) ([]*models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(f.Search)
	out := []*models.Asset{}
	for _, a := range r.assets {
		if a.OwnerID != ownerID {
			continue
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Name), search) &&
			!strings.Contains(strings.ToLower(a.Description), search) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryAssetRepo) GetByID(_ context.Context, ownerID, id string) (*models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.assets {
		if a.ID == id && a.OwnerID == ownerID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryAssetRepo) Update(_ context.Context, a *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.assets {
		if cur.ID == a.ID && cur.OwnerID == a.OwnerID {
			cp := *a
			r.assets[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryAssetRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.assets {
		if a.ID == id && a.OwnerID == ownerID {
			r.assets = append(r.assets[:i], r.assets[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type MemoryInfoRepo struct {
	mu    sync.RWMutex
	infos []*models.AssetInfo
}

func NewMemoryInfoRepository() *MemoryInfoRepo {
	return &MemoryInfoRepo{}
}

func (r *MemoryInfoRepo) Insert(_ context.Context, i *models.AssetInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *i
	r.infos = append(r.infos, &cp)
	return nil
}

func (r *MemoryInfoRepo) GetByID(_ context.Context, ownerID, id string) (*models.AssetInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, in := range r.infos {
		if in.ID == id && in.OwnerID == ownerID {
			cp := *in
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryInfoRepo) FirstByAssetID(_ context.Context, ownerID, assetID string) (*models.AssetInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, in := range r.infos {
		if in.AssetID == assetID && in.OwnerID == ownerID {
			cp := *in
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryInfoRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.AssetInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.AssetInfo{}
	for _, in := range r.infos {
		if in.OwnerID == ownerID {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryInfoRepo) Update(_ context.Context, i *models.AssetInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, cur := range r.infos {
		if cur.ID == i.ID && cur.OwnerID == i.OwnerID {
			cp := *i
			r.infos[idx] = &cp
			return nil
		}
	}
	return ErrNotFound
}

type MemoryLogRepo struct {
	mu   sync.RWMutex
	logs []*models.AssetLog
}

func NewMemoryLogRepository() *MemoryLogRepo {
	return &MemoryLogRepo{}
}

func (r *MemoryLogRepo) Insert(_ context.Context, l *models.AssetLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.logs = append(r.logs, &cp)
	return nil
}

func (r *MemoryLogRepo) ListByAssetID(_ context.Context, ownerID, assetID string) ([]*models.AssetLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.AssetLog{}
	for _, l := range r.logs {
		if l.AssetID == assetID && l.OwnerID == ownerID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}
