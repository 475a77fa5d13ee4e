package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fathima-sithara/asset-service/internal/models"
	"github.com/fathima-sithara/asset-service/internal/repository"
)

// InfoService owns the auxiliary metadata records and the activity log. It
// never touches the asset directory; the shared asset id is the only link,
// so a dangling asset_id is legal.
type InfoService struct {
	infos repository.InfoRepository
	logs  repository.LogRepository
	log   *zap.SugaredLogger
}

func NewInfoService(infos repository.InfoRepository, logs repository.LogRepository, log *zap.SugaredLogger) *InfoService {
	return &InfoService{infos: infos, logs: logs, log: log}
}

type InfoInput struct {
	Tags   []string      `json:"tags"`
	Status models.Status `json:"status"`
	Notes  string        `json:"notes"`
}

// InfoPatch is a partial update. Nil fields keep their prior values.
type InfoPatch struct {
	Tags   *[]string      `json:"tags"`
	Status *models.Status `json:"status"`
	Notes  *string        `json:"notes"`
}

// UpsertInfo creates the metadata record for an asset, or overwrites the
// first existing one. Status defaults to active.
func (s *InfoService) UpsertInfo(ctx context.Context, ownerID, assetID string, in InfoInput) (*models.AssetInfo, error) {
	if strings.TrimSpace(assetID) == "" {
		return nil, fmt.Errorf("%w: asset id is required", ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = models.StatusActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()

	existing, err := s.infos.FirstByAssetID(ctx, ownerID, assetID)
	switch {
	case err == nil:
		existing.Tags = tags
		existing.Status = status
		existing.Notes = in.Notes
		existing.UpdatedAt = now
		if err := s.infos.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.AppendLog(ctx, assetID, models.ActionUpdated, ownerID, "info updated")
		return existing, nil
	case err == repository.ErrNotFound:
		info := &models.AssetInfo{
			ID:        uuid.NewString(),
			AssetID:   assetID,
			Tags:      tags,
			Status:    status,
			Notes:     in.Notes,
			OwnerID:   ownerID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.infos.Insert(ctx, info); err != nil {
			return nil, err
		}
		s.AppendLog(ctx, assetID, models.ActionUpdated, ownerID, "info created")
		return info, nil
	default:
		return nil, err
	}
}

// GetInfo returns the first matching record when duplicates exist.
func (s *InfoService) GetInfo(ctx context.Context, ownerID, assetID string) (*models.AssetInfo, error) {
	return s.infos.FirstByAssetID(ctx, ownerID, assetID)
}

func (s *InfoService) UpdateInfo(ctx context.Context, ownerID, id string, patch InfoPatch) (*models.AssetInfo, error) {
	info, err := s.infos.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Tags != nil {
		info.Tags = *patch.Tags
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
		}
		info.Status = *patch.Status
	}
	if patch.Notes != nil {
		info.Notes = *patch.Notes
	}
	info.UpdatedAt = time.Now().UTC()
	if err := s.infos.Update(ctx, info); err != nil {
		return nil, err
	}
	s.AppendLog(ctx, info.AssetID, models.ActionUpdated, ownerID, "info updated")
	return info, nil
}

// AppendLog is a best-effort write: a failure is warn-logged and swallowed
// so it never fails the operation that triggered it.
func (s *InfoService) AppendLog(ctx context.Context, assetID string, action models.Action, ownerID, details string) {
	entry := &models.AssetLog{
		ID:        uuid.NewString(),
		AssetID:   assetID,
		Action:    action,
		Timestamp: time.Now().UTC(),
		OwnerID:   ownerID,
		Details:   details,
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		s.log.Warnw("activity log write failed", "asset_id", assetID, "action", action, "error", err)
	}
}

// ListLogs returns the asset's activity in insertion order, scoped to the
// calling owner.
func (s *InfoService) ListLogs(ctx context.Context, ownerID, assetID string) ([]*models.AssetLog, error) {
	return s.logs.ListByAssetID(ctx, ownerID, assetID)
}
