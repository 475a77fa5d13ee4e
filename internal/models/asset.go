package models

import "time"

// Asset is the canonical directory record. ImageURL holds the S3 object key,
// not a fetchable URL; a presigned link is derived on demand.
type Asset struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	ImageURL    string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	OwnerID     string    `bson:"owner_id" json:"ownerId"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}

// AssetInfo carries auxiliary metadata for an asset. There is no foreign key
// back to Asset; a dangling asset_id is tolerated by readers.
type AssetInfo struct {
	ID        string    `bson:"_id" json:"id"`
	AssetID   string    `bson:"asset_id" json:"assetId"`
	Tags      []string  `bson:"tags" json:"tags"`
	Status    Status    `bson:"status" json:"status"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionViewed  Action = "viewed"
)

// AssetLog is an append-only activity record. Entries are never updated or
// deleted after insertion.
type AssetLog struct {
	ID        string    `bson:"_id" json:"id"`
	AssetID   string    `bson:"asset_id" json:"assetId"`
	Action    Action    `bson:"action" json:"action"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	Details   string    `bson:"details,omitempty" json:"details,omitempty"`
}
