package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/zestdev/zest/contenthash"
)

// Version is an immutable snapshot of an app's script set, keyed by
// (AppID, Hash). The hash is the content address of the zipped source bundle
// in object storage; the stored bundle never changes after creation. Only the
// IsPublished flag is mutable.
type Version struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AppID uuid.UUID `json:"appId" gorm:"primarykey;not null;type:uuid;"`
	App   App       `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnDelete:CASCADE;"`
	Hash  string    `json:"hash" gorm:"primarykey;type:text;not null;"`

	IsPublished bool      `json:"isPublished" gorm:"default:false;not null;"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;"`
}

func (m Version) TableName() string {
	return "versions"
}

// VersionString returns the short, URL-safe identifier derived from the full
// hash.
func (m Version) VersionString() string {
	return contenthash.VersionFromHash(m.Hash)
}
