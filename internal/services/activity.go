package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fathima-sithara/asset-service/internal/events"
	"github.com/fathima-sithara/asset-service/internal/models"
	"github.com/fathima-sithara/asset-service/internal/repository"
)

// Activity records asset operations into the append-only log and mirrors
// them onto the event bus. Everything here is best effort: a failed write is
// warn-logged and never surfaces to the caller.
type Activity struct {
	logs repository.LogRepository
	pub  *events.Publisher
	log  *zap.SugaredLogger
}

func NewActivity(logs repository.LogRepository, pub *events.Publisher, log *zap.SugaredLogger) *Activity {
	return &Activity{logs: logs, pub: pub, log: log}
}

func (a *Activity) Record(ctx context.Context, assetID string, action models.Action, ownerID, details string) {
	if a == nil {
		return
	}
	now := time.Now().UTC()
	entry := &models.AssetLog{
		ID:        uuid.NewString(),
		AssetID:   assetID,
		Action:    action,
		Timestamp: now,
		OwnerID:   ownerID,
		Details:   details,
	}
	if err := a.logs.Insert(ctx, entry); err != nil {
		a.log.Warnw("activity log write failed", "asset_id", assetID, "action", action, "error", err)
	}
	ev := events.AssetEvent{AssetID: assetID, Action: action, OwnerID: ownerID, Details: details, Timestamp: now}
	if err := a.pub.Publish(ctx, ev); err != nil {
		a.log.Warnw("asset event publish failed", "asset_id", assetID, "action", action, "error", err)
	}
}
